package answer

import (
	"context"

	"github.com/capstone-design/sportsqa/internal/domain"
	"github.com/capstone-design/sportsqa/internal/domain/knowledge"
)

// KnowledgeSource returns the per-domain document collection.
type KnowledgeSource interface {
	Collection(d domain.Domain) *knowledge.Collection
}

// Classifier routes a question to domains.
type Classifier interface {
	Classify(question string) []domain.Domain
}

// Retriever ranks a collection against a question.
type Retriever interface {
	Retrieve(coll *knowledge.Collection, query string) []domain.Hit
}

// Synthesizer formats hits into the local answer and appends failure notes
// within the same display budget.
type Synthesizer interface {
	Synthesize(question string, groups []domain.DomainHits) string
	Annotate(text, note string) string
}

// Generator rewrites the local answer via an external service.
type Generator interface {
	Generate(ctx context.Context, question, local string) (string, error)
}
