// Package hackclub implements the Hack Club AI proxy, an OpenRouter-compatible
// chat completion service.
package hackclub

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/mostudy/aiproxy/internal/provider"
	"github.com/mostudy/aiproxy/internal/types"
)

// DefaultBaseURL is the Hack Club AI proxy endpoint.
const DefaultBaseURL = "https://ai.hackclub.com/proxy/v1"

// chatPath is appended to the base URL for chat completions.
const chatPath = "/chat/completions"

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 4096

// Provider is a chat completion client for the Hack Club AI proxy.
type Provider struct {
	apiKey  string
	baseURL string
	title   string
	client  *http.Client
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		if baseURL != "" {
			p.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTitle sets the X-Title attribution header.
func WithTitle(title string) Option {
	return func(p *Provider) {
		p.title = title
	}
}

// New creates a provider authenticating with apiKey.
func New(apiKey string, opts ...Option) *Provider {
	p := &Provider{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "hackclub"
}

// BaseURL returns the API base URL
func (p *Provider) BaseURL() string {
	return p.baseURL
}

// ChatSend sends a non-streaming chat completion request.
func (p *Provider) ChatSend(ctx context.Context, req *types.ChatRequest, opts *provider.CallOptions) (*types.ChatCompletion, error) {
	if p.apiKey == "" {
		return nil, types.ErrNoAPIKey
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	upstreamReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	p.prepareRequest(upstreamReq, opts)

	resp, err := p.client.Do(upstreamReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	completion, err := types.DecodeChatCompletion(data)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return completion, nil
}

// prepareRequest sets auth, content and attribution headers.
func (p *Provider) prepareRequest(req *http.Request, opts *provider.CallOptions) {
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if p.title != "" {
		req.Header.Set("X-Title", p.title)
	}
	if opts == nil {
		return
	}
	if opts.Referer != "" {
		req.Header.Set("HTTP-Referer", opts.Referer)
	}
	if opts.RequestID != "" {
		req.Header.Set("X-Request-ID", opts.RequestID)
	}
}

// upstreamError matches both {"error":"..."} and {"error":{"message":"..."}}.
type upstreamError struct {
	Error json.RawMessage `json:"error"`
}

// newStatusError builds a StatusError from a non-2xx response.
func newStatusError(resp *http.Response) *provider.StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	statusErr := &provider.StatusError{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}

	var apiErr upstreamError
	if err := json.Unmarshal(body, &apiErr); err != nil || len(apiErr.Error) == 0 {
		return statusErr
	}

	var message string
	if err := json.Unmarshal(apiErr.Error, &message); err == nil {
		statusErr.Message = message
		return statusErr
	}

	var detail struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(apiErr.Error, &detail); err == nil {
		statusErr.Message = detail.Message
	}
	return statusErr
}
