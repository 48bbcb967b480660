package health

import "context"

// CachePinger checks generation cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// GenerationChecker checks generation provider availability.
type GenerationChecker interface {
	Enabled() bool
	HealthCheck(ctx context.Context) error
}

// KnowledgeCounter reports how many documents were loaded.
type KnowledgeCounter interface {
	Total() int
}
