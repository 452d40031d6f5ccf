// Package proxy implements the chat completion proxy function.
package proxy

import (
	"log/slog"

	"github.com/mostudy/aiproxy/internal/metrics"
	"github.com/mostudy/aiproxy/internal/provider"
	"github.com/mostudy/aiproxy/internal/tokenizer"
	"github.com/mostudy/aiproxy/internal/types"
)

// DefaultMaxBodyBytes caps the inbound request body.
const DefaultMaxBodyBytes int64 = 4 << 20

// Options configures the proxy handlers.
type Options struct {
	// APIKey authenticates upstream calls; empty means misconfigured
	APIKey string

	// Defaults for absent payload fields
	Defaults types.RequestDefaults

	// Referer attribution
	DefaultReferer string
	AllowedOrigins []string

	// MaxBodyBytes caps the request body; zero means DefaultMaxBodyBytes
	MaxBodyBytes int64

	// Logger receives invocation logs; nil discards them
	Logger *slog.Logger
}

// Handlers holds the dependencies for proxy handlers.
type Handlers struct {
	Provider  provider.Provider
	Tokenizer tokenizer.Tokenizer
	Metrics   *metrics.Collector

	opts     Options
	referers *refererPolicy
}

// New creates a new instance of proxy handlers.
// Tokenizer and Metrics are optional.
func New(prov provider.Provider, opts Options, tok tokenizer.Tokenizer, m *metrics.Collector) *Handlers {
	if opts.Defaults == (types.RequestDefaults{}) {
		opts.Defaults = types.RequestDefaults{Model: types.DefaultModel, Temperature: types.DefaultTemperature}
	}
	if opts.Defaults.Model == "" {
		opts.Defaults.Model = types.DefaultModel
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handlers{
		Provider:  prov,
		Tokenizer: tok,
		Metrics:   m,
		opts:      opts,
		referers:  newRefererPolicy(opts.DefaultReferer, opts.AllowedOrigins),
	}
}

func (h *Handlers) logger() *slog.Logger {
	if h.opts.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return h.opts.Logger
}
