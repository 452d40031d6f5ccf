// Package infra serves status and health endpoints.
package infra

import "time"

// Status describes the running proxy for the status endpoint.
type Status struct {
	Provider     string
	BaseURL      string
	DefaultModel string
	KeyPresent   bool
}

// Handlers holds the dependencies for infrastructure HTTP handlers.
type Handlers struct {
	Status    Status
	StartTime time.Time
}

// New creates a new instance of infrastructure handlers.
func New(status Status, startTime time.Time) *Handlers {
	return &Handlers{
		Status:    status,
		StartTime: startTime,
	}
}
