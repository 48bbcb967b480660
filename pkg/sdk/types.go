package sportsqa

import "context"

// Domain names a knowledge area.
type Domain string

// Known domains, in classification precedence order.
const (
	DomainYacht      Domain = "yacht"
	DomainBaseball   Domain = "baseball"
	DomainGymnastics Domain = "gymnastics"
)

// Source tells where Answer.Text came from.
type Source string

// Answer sources.
const (
	SourceLocal     Source = "local"
	SourceGenerated Source = "generated"
)

// Answer is the result of one question.
type Answer struct {
	Text    string
	Source  Source
	Domains []Domain
	// GenerationError is the user-visible reason a requested generation was skipped.
	GenerationError string
}

// Prompt is what a Generator receives.
type Prompt struct {
	System string
	User   string
}

// Generator rewrites answers via an external text generation service.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, p Prompt) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, p Prompt) (string, error) {
	return f(ctx, p)
}
