package domain

import (
	"fmt"
	"strings"
)

// Domain is one of the fixed knowledge categories.
type Domain string

// Knowledge domains in classification precedence order.
const (
	Yacht      Domain = "yacht"
	Baseball   Domain = "baseball"
	Gymnastics Domain = "gymnastics"
)

var allDomains = []Domain{Yacht, Baseball, Gymnastics}

// AllDomains returns every domain in precedence order.
func AllDomains() []Domain {
	out := make([]Domain, len(allDomains))
	copy(out, allDomains)
	return out
}

// IsValid checks if the domain is one of the supported values.
func (d Domain) IsValid() bool {
	return d == Yacht || d == Baseball || d == Gymnastics
}

// Banner returns the section heading used in synthesized answers.
func (d Domain) Banner() string {
	return fmt.Sprintf("--- %s 관련 정보 ---", strings.ToUpper(string(d)))
}

// ParseDomain converts a name into a Domain.
func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
	}
	return d, nil
}
