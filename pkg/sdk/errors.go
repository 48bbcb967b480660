package sportsqa

import "github.com/capstone-design/sportsqa/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrGeneratorUnavailable = domain.ErrGeneratorUnavailable
	ErrCredentialMissing    = domain.ErrCredentialMissing
	ErrGenerationFailed     = domain.ErrGenerationFailed
	ErrUnknownDomain        = domain.ErrUnknownDomain
)
