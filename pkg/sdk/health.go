package sportsqa

import (
	"context"

	healthuc "github.com/capstone-design/sportsqa/internal/usecase/health"
)

// HealthStatus represents the aggregated pipeline health.
type HealthStatus struct {
	Status    string            // "ok", "degraded"
	Documents int               // documents loaded at startup
	Checks    map[string]string // component → "ok"/"empty"/"disabled"/"error"
}

// Health reports knowledge and generation status. The generator is probed
// only if it implements HealthCheck(ctx) error.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:    string(report.Status),
		Documents: report.Documents,
		Checks:    checks,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
