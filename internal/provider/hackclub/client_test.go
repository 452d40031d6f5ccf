package hackclub

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/mostudy/aiproxy/internal/provider"
	"github.com/mostudy/aiproxy/internal/types"
)

func newTestRequest() *types.ChatRequest {
	return types.BuildChatRequest(types.Payload{
		"messages": []any{map[string]any{"role": "user", "content": "hi"}},
	}, types.RequestDefaults{Model: types.DefaultModel, Temperature: types.DefaultTemperature})
}

func TestChatSend_Success(t *testing.T) {
	var (
		gotPath    string
		gotAuth    string
		gotReferer string
		gotTitle   string
		gotBody    map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","model":"m","choices":[{"index":0,"finish_reason":"stop"}],"extra":true}`))
	}))
	defer srv.Close()

	p := New("secret", WithBaseURL(srv.URL+"/proxy/v1/"), WithTitle("MoStudy"))
	completion, err := p.ChatSend(context.Background(), newTestRequest(), &provider.CallOptions{Referer: "https://mostudy.org"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/proxy/v1/chat/completions" {
		t.Errorf("expected path /proxy/v1/chat/completions, got %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotReferer != "https://mostudy.org" {
		t.Errorf("expected referer header, got %q", gotReferer)
	}
	if gotTitle != "MoStudy" {
		t.Errorf("expected X-Title header, got %q", gotTitle)
	}
	if gotBody["stream"] != false {
		t.Errorf("expected stream=false, got %v", gotBody["stream"])
	}
	if _, ok := gotBody["max_tokens"]; ok {
		t.Error("expected max_tokens to be omitted")
	}

	if completion.ID != "x" || completion.FinishReason() != "stop" {
		t.Errorf("unexpected completion: %+v", completion)
	}
	m, err := completion.ToMap()
	if err != nil {
		t.Fatalf("ToMap failed: %v", err)
	}
	if m["extra"] != true {
		t.Errorf("expected unknown fields to survive, got %v", m)
	}
}

func TestChatSend_StatusError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "nested error object",
			status:      http.StatusUnauthorized,
			body:        `{"error":{"message":"invalid key","code":401}}`,
			wantMessage: "invalid key",
		},
		{
			name:        "string error",
			status:      http.StatusTooManyRequests,
			body:        `{"error":"slow down"}`,
			wantMessage: "slow down",
		},
		{
			name:        "plain text body",
			status:      http.StatusBadGateway,
			body:        "bad gateway",
			wantMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New("k", WithBaseURL(srv.URL)).ChatSend(context.Background(), newTestRequest(), nil)

			var statusErr *provider.StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected StatusError, got %v", err)
			}
			if statusErr.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, statusErr.StatusCode)
			}
			if statusErr.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, statusErr.Message)
			}
			if !strings.Contains(err.Error(), "status") {
				t.Errorf("expected status in error text, got %q", err.Error())
			}
		})
	}
}

func TestChatSend_MalformedResponse(t *testing.T) {
	for _, body := range []string{"not json", "null", "[]", `"ok"`} {
		t.Run(body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			completion, err := New("k", WithBaseURL(srv.URL)).ChatSend(context.Background(), newTestRequest(), nil)
			if err == nil || !strings.HasPrefix(err.Error(), "decode response") {
				t.Fatalf("expected decode error, got %v", err)
			}
			if completion != nil {
				t.Errorf("expected no completion, got %+v", completion)
			}
		})
	}
}

func TestChatSend_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New("k", WithBaseURL(url)).ChatSend(context.Background(), newTestRequest(), nil)
	if err == nil || !strings.HasPrefix(err.Error(), "send request") {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestChatSend_NoAPIKey(t *testing.T) {
	_, err := New("").ChatSend(context.Background(), newTestRequest(), nil)
	if !errors.Is(err, types.ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	p := New("k")
	if p.BaseURL() != DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", p.BaseURL())
	}
	if p.Name() != "hackclub" {
		t.Errorf("unexpected name %q", p.Name())
	}
}
