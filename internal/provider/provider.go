// Package provider defines the upstream chat completion client contract.
package provider

import (
	"context"
	"fmt"

	"github.com/mostudy/aiproxy/internal/types"
)

// Provider defines the interface an upstream chat completion service implements.
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// BaseURL returns the provider's API base URL
	BaseURL() string

	// ChatSend performs one non-streaming chat completion call.
	ChatSend(ctx context.Context, req *types.ChatRequest, opts *CallOptions) (*types.ChatCompletion, error)
}

// CallOptions carries per-call metadata that is not part of the request body.
type CallOptions struct {
	// RequestID for tracing, forwarded as X-Request-ID
	RequestID string

	// Referer is sent as HTTP-Referer for attribution
	Referer string
}

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream error: status %d", e.StatusCode)
}

