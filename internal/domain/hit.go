package domain

import "github.com/capstone-design/sportsqa/internal/domain/node"

// Hit is a single scored retrieval result.
type Hit struct {
	Score int
	Key   string
	Doc   node.Node
}

// DomainHits groups the hits retrieved for one domain.
type DomainHits struct {
	Domain Domain
	Hits   []Hit
}

// HasHits reports whether any group carries at least one hit.
func HasHits(groups []DomainHits) bool {
	for _, g := range groups {
		if len(g.Hits) > 0 {
			return true
		}
	}
	return false
}
