// Package knowledge reads the knowledge directory tree into an immutable
// knowledge.Base at startup.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/capstone-design/sportsqa/internal/domain"
	domknow "github.com/capstone-design/sportsqa/internal/domain/knowledge"
	"github.com/capstone-design/sportsqa/internal/domain/node"
	"github.com/capstone-design/sportsqa/internal/metrics"
)

// Skip reasons reported in logs and metrics.
const (
	reasonMissingDir = "missing_dir"
	reasonRead       = "read_error"
	reasonDecode     = "decode_error"
)

// Loader builds the knowledge base from a filesystem. Each domain lives in a
// folder named after it; every *.json file under that folder, at any depth,
// becomes one document keyed by its path relative to the folder.
type Loader struct {
	fsys   fs.FS
	logger *zap.Logger
}

// NewLoader creates a loader over fsys (usually os.DirFS(root)).
func NewLoader(fsys fs.FS, logger *zap.Logger) *Loader {
	return &Loader{fsys: fsys, logger: logger}
}

// Load reads every domain concurrently. Missing folders and malformed files
// are logged and skipped; only context cancellation aborts loading.
func (l *Loader) Load(ctx context.Context, domains []domain.Domain) (*domknow.Base, error) {
	collections := make([]*domknow.Collection, len(domains))

	g, ctx := errgroup.WithContext(ctx)
	for i, d := range domains {
		g.Go(func() error {
			c, err := l.loadDomain(ctx, d)
			if err != nil {
				return err
			}
			collections[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load knowledge: %w", err)
	}

	byDomain := make(map[domain.Domain]*domknow.Collection, len(domains))
	for i, d := range domains {
		byDomain[d] = collections[i]
		metrics.KnowledgeDocuments.WithLabelValues(string(d)).Set(float64(collections[i].Len()))
		l.logger.Info("Knowledge domain loaded",
			zap.String("domain", string(d)),
			zap.Int("documents", collections[i].Len()),
		)
	}

	return domknow.NewBase(domains, byDomain), nil
}

func (l *Loader) loadDomain(ctx context.Context, d domain.Domain) (*domknow.Collection, error) {
	root := string(d)

	info, err := fs.Stat(l.fsys, root)
	if err != nil || !info.IsDir() {
		l.skip(d, root, reasonMissingDir, err)
		return domknow.NewCollection(nil), nil
	}

	var files []string
	err = fs.WalkDir(l.fsys, root, func(p string, entry fs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if walkErr != nil {
			l.skip(d, p, reasonRead, walkErr)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.IsDir() && strings.EqualFold(path.Ext(p), ".json") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(files)

	entries := make([]domknow.Entry, 0, len(files))
	for _, p := range files {
		doc, err := l.readDocument(p)
		if err != nil {
			reason := reasonRead
			if errors.Is(err, domain.ErrMalformedDocument) {
				reason = reasonDecode
			}
			l.skip(d, p, reason, err)
			continue
		}
		entries = append(entries, domknow.Entry{
			Key: strings.TrimPrefix(p, root+"/"),
			Doc: doc,
		})
	}

	return domknow.NewCollection(entries), nil
}

func (l *Loader) readDocument(p string) (node.Node, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return node.Node{}, fmt.Errorf("read %s: %w", p, err)
	}
	doc, err := node.Decode(data)
	if err != nil {
		return node.Node{}, fmt.Errorf("%w: %s: %w", domain.ErrMalformedDocument, p, err)
	}
	return doc, nil
}

func (l *Loader) skip(d domain.Domain, p, reason string, err error) {
	metrics.KnowledgeLoadErrorsTotal.WithLabelValues(string(d), reason).Inc()
	l.logger.Warn("Skipping knowledge path",
		zap.String("domain", string(d)),
		zap.String("path", p),
		zap.String("reason", reason),
		zap.Error(err),
	)
}
