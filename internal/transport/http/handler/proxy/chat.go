package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mostudy/aiproxy/internal/config"
	"github.com/mostudy/aiproxy/internal/metrics"
	"github.com/mostudy/aiproxy/internal/provider"
	"github.com/mostudy/aiproxy/internal/runtime"
	"github.com/mostudy/aiproxy/internal/transport/http/handler/shared"
	"github.com/mostudy/aiproxy/internal/transport/http/middleware"
	"github.com/mostudy/aiproxy/internal/types"
)

// ChatCompletions adapts an HTTP request to a function invocation.
func (h *Handlers) ChatCompletions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger().With("request_id", middleware.GetRequestID(ctx))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes))
	r.Body.Close()
	if err != nil {
		logger.Error("failed to read request body", "error", err, "limit_bytes", h.opts.MaxBodyBytes)
		h.Metrics.RecordInvocation(metrics.OutcomeParseError, http.StatusBadRequest)
		shared.WriteJSON(w, types.NewErrorBody(types.MsgInvalidJSON), http.StatusBadRequest)
		return
	}

	fc := runtime.NewContext(&runtime.Request{
		Method:  r.Method,
		Headers: r.Header,
		Body:    runtime.RawBody(string(body)),
	}, logger)

	shared.WriteResponse(w, h.Handle(ctx, fc))
}

// Handle runs one proxy invocation. Every outcome, including a panic in a
// collaborator, is returned as a JSON response.
func (h *Handlers) Handle(ctx context.Context, fc *runtime.Context) (res runtime.Response) {
	defer func() {
		if r := recover(); r != nil {
			fc.Error("proxy function panicked", "panic", r)
			res = h.fail(fc, metrics.OutcomeUpstreamError, fmt.Sprint(r), http.StatusInternalServerError)
		}
	}()

	req := fc.Req
	if req.Method != http.MethodPost {
		fc.Log("method not allowed", "method", req.Method)
		return h.fail(fc, metrics.OutcomeMethodNotAllowed, types.MsgMethodNotAllowed, http.StatusMethodNotAllowed)
	}

	if h.opts.APIKey == "" {
		fc.Error("upstream API key is not configured", "env", config.APIKeyEnv)
		return h.fail(fc, metrics.OutcomeConfigError, types.MsgConfigError, http.StatusInternalServerError)
	}

	payload, err := parsePayload(req.Body)
	if err != nil {
		fc.Error("failed to parse request body", "error", err)
		return h.fail(fc, metrics.OutcomeParseError, types.MsgInvalidJSON, http.StatusBadRequest)
	}

	if !payload.HasMessages() {
		return h.fail(fc, metrics.OutcomeValidationError, types.MsgMessagesRequired, http.StatusBadRequest)
	}

	chatReq := types.BuildChatRequest(payload, h.opts.Defaults)
	model := chatReq.ModelName()
	opts := &provider.CallOptions{
		RequestID: requestID(ctx),
		Referer:   h.referers.resolve(req.Header("Origin"), req.Header("Referer")),
	}

	logArgs := []any{
		"provider", h.Provider.Name(),
		"model", model,
		"messages", payload.MessageCount(),
		"temperature", chatReq.Temperature,
		"referer", opts.Referer,
	}
	if tokens, ok := h.estimatePromptTokens(chatReq, model); ok {
		logArgs = append(logArgs, "prompt_tokens_est", tokens)
	}
	fc.Log("calling upstream", logArgs...)

	start := time.Now()
	completion, err := h.Provider.ChatSend(ctx, chatReq, opts)
	if err != nil {
		h.Metrics.RecordUpstream(model, time.Since(start), nil, err)
		errArgs := []any{"model", model, "error", err}
		var statusErr *provider.StatusError
		if errors.As(err, &statusErr) {
			errArgs = append(errArgs, "status", statusErr.StatusCode, "upstream_body", statusErr.Body)
		}
		fc.Error("upstream call failed", errArgs...)
		return h.fail(fc, metrics.OutcomeUpstreamError, err.Error(), http.StatusInternalServerError)
	}
	h.Metrics.RecordUpstream(model, time.Since(start), completion.Usage, nil)

	data, err := completion.ToMap()
	if err != nil {
		fc.Error("failed to convert upstream response", "error", err)
		return h.fail(fc, metrics.OutcomeUpstreamError, err.Error(), http.StatusInternalServerError)
	}

	fc.Log("upstream response received",
		"id", completion.ID,
		"finish_reason", completion.FinishReason(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	h.Metrics.RecordInvocation(metrics.OutcomeSuccess, http.StatusOK)
	return fc.Res.JSON(data, http.StatusOK)
}

// fail records the outcome and builds an error response.
func (h *Handlers) fail(fc *runtime.Context, outcome, message string, status int) runtime.Response {
	h.Metrics.RecordInvocation(outcome, status)
	return fc.Res.JSON(types.NewErrorBody(message), status)
}

// parsePayload normalizes the tagged body into a payload.
func parsePayload(body runtime.Body) (types.Payload, error) {
	switch body.Kind {
	case runtime.BodyRaw:
		if body.Raw == "" {
			return types.Payload{}, nil
		}
		return types.ParsePayload([]byte(body.Raw))
	case runtime.BodyObject:
		return types.Payload(body.Object), nil
	default:
		return types.Payload{}, nil
	}
}

// estimatePromptTokens returns a prompt token estimate when a tokenizer is set.
func (h *Handlers) estimatePromptTokens(req *types.ChatRequest, model string) (int, bool) {
	if h.Tokenizer == nil {
		return 0, false
	}
	tokens, err := h.Tokenizer.CountMessages(types.ExtractMessages(req.Messages), model)
	if err != nil {
		return 0, false
	}
	return tokens, true
}

// requestID returns the request ID from the middleware, or a fresh one.
func requestID(ctx context.Context) string {
	if id := middleware.GetRequestID(ctx); id != "" {
		return id
	}
	return uuid.New().String()
}
