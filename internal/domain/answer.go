package domain

// Source tells where the final answer text came from.
type Source string

const (
	// SourceLocal is the synthesized lexical answer.
	SourceLocal Source = "local"
	// SourceGenerated is text returned by the generation provider.
	SourceGenerated Source = "generated"
)

// Answer is the outcome of one question.
type Answer struct {
	Text    string
	Source  Source
	Domains []Domain
	// Failure is the user-visible generation failure reason, if any.
	Failure string
}
