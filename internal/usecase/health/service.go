package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckEmpty indicates a knowledge base without documents.
	CheckEmpty CheckResult = "empty"
	// CheckDisabled indicates an optional component that is switched off.
	CheckDisabled CheckResult = "disabled"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status    Status
	Documents int
	Checks    map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	knowledge  KnowledgeCounter
	cache      CachePinger
	generation GenerationChecker
	probe      bool
}

// New creates a Service. cache and generation can be nil.
// probe enables a live provider call for the generation check; otherwise
// only configuration is inspected.
func New(knowledge KnowledgeCounter, cache CachePinger, generation GenerationChecker, probe bool) *Service {
	return &Service{knowledge: knowledge, cache: cache, generation: generation, probe: probe}
}

// Check runs health checks against all components.
// An empty knowledge base or a disabled generator still answers questions,
// so they never degrade the status.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	var docs int

	if s.knowledge != nil {
		docs = s.knowledge.Total()
	}
	if docs > 0 {
		checks["knowledge"] = CheckOK
	} else {
		checks["knowledge"] = CheckEmpty
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	switch {
	case s.generation == nil || !s.generation.Enabled():
		checks["generation"] = CheckDisabled
	case !s.probe:
		checks["generation"] = CheckOK
	default:
		if err := s.generation.HealthCheck(ctx); err != nil {
			checks["generation"] = CheckError
		} else {
			checks["generation"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Documents: docs, Checks: checks}
}
