package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/capstone-design/sportsqa/internal/domain"
	logpkg "github.com/capstone-design/sportsqa/internal/logger"
	answeruc "github.com/capstone-design/sportsqa/internal/usecase/answer"
	healthuc "github.com/capstone-design/sportsqa/internal/usecase/health"
)

const (
	maxBodyBytes = 64 << 10

	// MalformedRequestMessage is returned with 400 for undecodable bodies.
	MalformedRequestMessage = "요청 형식이 올바르지 않습니다."
	// NoIndexMessage is returned by GET / when the web client is absent.
	NoIndexMessage = "Hello! 웹페이지 파일(index.html)이 없습니다."
)

// Answerer runs the question pipeline.
type Answerer interface {
	Answer(ctx context.Context, req answeruc.Request) domain.Answer
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server holds the HTTP handlers.
type Server struct {
	answers   Answerer
	health    HealthChecker
	staticDir string
	logger    *zap.Logger
}

// NewServer creates an HTTP server. health can be nil.
func NewServer(answers Answerer, health HealthChecker, staticDir string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		answers:   answers,
		health:    health,
		staticDir: staticDir,
		logger:    logger,
	}
}

// askRequest accepts both field spellings used by the bundled clients.
type askRequest struct {
	Question  *string `json:"question"`
	Query     *string `json:"query"`
	UseOpenAI *bool   `json:"use_openai"`
	UseLLM    *bool   `json:"use_llm"`
}

func (r askRequest) question() string {
	switch {
	case r.Question != nil && *r.Question != "":
		return *r.Question
	case r.Query != nil:
		return *r.Query
	default:
		return ""
	}
}

func (r askRequest) useGeneration() *bool {
	if r.UseOpenAI != nil {
		return r.UseOpenAI
	}
	return r.UseLLM
}

type askResponse struct {
	Answer          string          `json:"answer"`
	Source          domain.Source   `json:"source,omitempty"`
	Domains         []domain.Domain `json:"domains,omitempty"`
	GenerationError string          `json:"generation_error,omitempty"`
}

type healthResponse struct {
	Status    healthuc.Status                 `json:"status"`
	Documents int                             `json:"documents"`
	Checks    map[string]healthuc.CheckResult `json:"checks"`
}

// decodeSingle reads exactly one JSON value; trailing whitespace is allowed.
func decodeSingle(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// Ask handles POST /ask and POST /query.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	log := logpkg.FromContext(r.Context(), s.logger)

	var req askRequest
	if err := decodeSingle(http.MaxBytesReader(w, r.Body, maxBodyBytes), &req); err != nil {
		log.Info("Malformed ask request", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, askResponse{Answer: MalformedRequestMessage})
		return
	}

	ans := s.answers.Answer(r.Context(), answeruc.Request{
		Question:      req.question(),
		UseGeneration: req.useGeneration(),
	})

	writeJSON(w, http.StatusOK, askResponse{
		Answer:          ans.Text,
		Source:          ans.Source,
		Domains:         ans.Domains,
		GenerationError: ans.Failure,
	})
}

// Index handles GET /.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	if s.staticDir != "" {
		indexPath := filepath.Join(s.staticDir, "index.html")
		if fileExists(indexPath) {
			http.ServeFile(w, r, indexPath)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": NoIndexMessage})
}

// Static returns the /static/* file handler, or nil when the directory is absent.
func (s *Server) Static() http.Handler {
	if s.staticDir == "" {
		return nil
	}
	if info, err := os.Stat(s.staticDir); err != nil || !info.IsDir() {
		return nil
	}
	return http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir)))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, healthResponse{Status: healthuc.Healthy, Checks: map[string]healthuc.CheckResult{}})
		return
	}

	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:    report.Status,
		Documents: report.Documents,
		Checks:    report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
