package infra

import (
	"net/http"
	"time"

	"github.com/mostudy/aiproxy/internal/transport/http/handler/shared"
	"github.com/mostudy/aiproxy/internal/version"
)

// RootStatus returns JSON status and version information at /.
func (h *Handlers) RootStatus(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, map[string]any{
		"name":           "aiproxy",
		"version":        version.Version,
		"status":         "running",
		"api":            "/v1/chat/completions",
		"provider":       h.Status.Provider,
		"base_url":       h.Status.BaseURL,
		"default_model":  h.Status.DefaultModel,
		"api_key_loaded": h.Status.KeyPresent,
		"uptime_seconds": int64(time.Since(h.StartTime).Seconds()),
	}, http.StatusOK)
}

// HealthCheck reports liveness. A missing API key degrades the status but
// the process keeps serving so callers receive the configuration error.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "active"
	if !h.Status.KeyPresent {
		status = "degraded"
	}
	shared.WriteJSON(w, map[string]string{
		"status": status,
		"app":    "aiproxy",
	}, http.StatusOK)
}
