package app

import (
	"log/slog"
	"net/http"

	"github.com/mostudy/aiproxy/internal/metrics"
	"github.com/mostudy/aiproxy/internal/transport/http/handler"
	"github.com/mostudy/aiproxy/internal/transport/http/middleware"
)

// ChatCompletionsPath is where the proxy function is served.
const ChatCompletionsPath = "/v1/chat/completions"

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	Logger         *slog.Logger
	Metrics        *metrics.Collector
	AllowedOrigins []string
}

// NewRouter creates and configures the HTTP router with all application routes.
// Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts *RouterOptions) http.Handler {
	if opts == nil {
		opts = &RouterOptions{}
	}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", repo.Infra.HealthCheck)
	mux.HandleFunc("GET /{$}", repo.Infra.RootStatus)

	// Every method reaches the function so non-POST callers get its JSON 405.
	mux.HandleFunc(ChatCompletionsPath, repo.Proxy.ChatCompletions)

	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics.Handler())
	}

	// Apply middleware chain (order: outer to inner)
	var h http.Handler = mux

	if opts.Logger != nil {
		h = middleware.RequestLogger(opts.Logger)(h)
	}

	// Request ID (always applied)
	h = middleware.RequestID(h)

	h = middleware.CORS(opts.AllowedOrigins)(h)

	return h
}
