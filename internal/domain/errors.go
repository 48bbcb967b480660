package domain

import "errors"

var (
	// ErrEmptyQuestion signals a blank question.
	ErrEmptyQuestion = errors.New("empty question")
	// ErrUnknownDomain signals a domain name outside the fixed set.
	ErrUnknownDomain = errors.New("unknown domain")
	// ErrMalformedDocument signals a knowledge file that is not valid JSON.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrGeneratorUnavailable signals that no generation provider is configured.
	ErrGeneratorUnavailable = errors.New("generator unavailable")
	// ErrCredentialMissing signals an absent generation credential.
	ErrCredentialMissing = errors.New("generation credential missing")
	// ErrGenerationFailed signals a failed remote generation call.
	ErrGenerationFailed = errors.New("generation failed")
)
