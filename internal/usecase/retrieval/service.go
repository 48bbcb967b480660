// Package retrieval ranks knowledge documents against a question by lexical
// overlap.
package retrieval

import (
	"sort"

	"github.com/capstone-design/sportsqa/internal/domain"
	"github.com/capstone-design/sportsqa/internal/domain/knowledge"
	"github.com/capstone-design/sportsqa/internal/domain/node"
)

// DefaultTopK is the number of hits returned per domain.
const DefaultTopK = 3

// Service retrieves the best matching documents of a collection.
type Service struct {
	topK   int
	expand bool
}

// New creates a retrieval service with DefaultTopK and synonym expansion on.
func New() *Service {
	return &Service{topK: DefaultTopK, expand: true}
}

// WithTopK sets the maximum number of hits. Non-positive values are ignored.
func (s *Service) WithTopK(k int) *Service {
	if k > 0 {
		s.topK = k
	}
	return s
}

// WithSynonyms toggles Korean→English query expansion.
func (s *Service) WithSynonyms(enabled bool) *Service {
	s.expand = enabled
	return s
}

// QueryTokens returns the tokens a query is scored with.
func (s *Service) QueryTokens(query string) []string {
	if s.expand {
		query = Expand(query)
	}
	return Tokenize(query)
}

// Retrieve scores every document in coll, drops zero scores, and returns at
// most TopK hits ordered by descending score. Ties keep collection order.
func (s *Service) Retrieve(coll *knowledge.Collection, query string) []domain.Hit {
	if coll.Len() == 0 {
		return nil
	}

	tokens := s.QueryTokens(query)
	if len(tokens) == 0 {
		return nil
	}

	var hits []domain.Hit
	coll.Each(func(e knowledge.Entry) bool {
		if score := Score(node.Flatten(e.Doc), tokens); score > 0 {
			hits = append(hits, domain.Hit{Score: score, Key: e.Key, Doc: e.Doc})
		}
		return true
	})

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > s.topK {
		hits = hits[:s.topK]
	}
	return hits
}
