package infra

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		keyPresent bool
		wantStatus string
	}{
		{name: "key loaded", keyPresent: true, wantStatus: "active"},
		{name: "key missing", keyPresent: false, wantStatus: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(Status{KeyPresent: tt.keyPresent}, time.Now())

			rec := httptest.NewRecorder()
			h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			if rec.Code != http.StatusOK {
				t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body["status"] != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, body["status"])
			}
		})
	}
}

func TestRootStatus(t *testing.T) {
	h := New(Status{Provider: "hackclub", BaseURL: "https://ai.hackclub.com/proxy/v1", KeyPresent: true}, time.Now().Add(-time.Minute))

	rec := httptest.NewRecorder()
	h.RootStatus(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["provider"] != "hackclub" {
		t.Errorf("unexpected provider %v", body["provider"])
	}
	if body["api_key_loaded"] != true {
		t.Errorf("expected api_key_loaded=true, got %v", body["api_key_loaded"])
	}
	if uptime, _ := body["uptime_seconds"].(float64); uptime < 59 {
		t.Errorf("expected uptime of about a minute, got %v", body["uptime_seconds"])
	}
}
