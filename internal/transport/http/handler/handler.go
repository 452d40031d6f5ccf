// Package handler composes the HTTP handlers served by the proxy.
package handler

import (
	"github.com/mostudy/aiproxy/internal/transport/http/handler/infra"
	"github.com/mostudy/aiproxy/internal/transport/http/handler/proxy"
)

// Repo composes all domain-specific handlers.
type Repo struct {
	Proxy *proxy.Handlers
	Infra *infra.Handlers
}

// NewRepo creates a new instance of the composed handler repository.
func NewRepo(proxyHandlers *proxy.Handlers, infraHandlers *infra.Handlers) *Repo {
	return &Repo{
		Proxy: proxyHandlers,
		Infra: infraHandlers,
	}
}
