package types

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Payload field names.
const (
	FieldMessages       = "messages"
	FieldModel          = "model"
	FieldTemperature    = "temperature"
	FieldResponseFormat = "response_format"
	FieldMaxTokens      = "max_tokens"
	FieldTopP           = "top_p"
)

// Defaults applied when the caller omits a field.
const (
	DefaultModel       = "google/gemini-3-flash-preview"
	DefaultTemperature = 0.7
)

// Payload is the caller-supplied chat completion request.
// Values are kept as decoded so they can be forwarded verbatim.
type Payload map[string]any

// ParsePayload decodes a raw JSON document into a Payload.
// Numbers keep their original text so they round-trip exactly.
func ParsePayload(data []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("payload must be a JSON object, got %T", v)
	}
	return Payload(obj), nil
}

// HasMessages reports whether the messages field is present and truthy.
func (p Payload) HasMessages() bool {
	v, ok := p[FieldMessages]
	return ok && Truthy(v)
}

// MessageCount returns the number of messages when messages is a list.
func (p Payload) MessageCount() int {
	if list, ok := p[FieldMessages].([]any); ok {
		return len(list)
	}
	return 0
}

// Model returns the requested model, or fallback when the key is absent.
func (p Payload) Model(fallback string) any {
	if v, ok := p[FieldModel]; ok {
		return v
	}
	return fallback
}

// Temperature returns the requested temperature, or fallback when absent.
func (p Payload) Temperature(fallback float64) any {
	if v, ok := p[FieldTemperature]; ok {
		return v
	}
	return fallback
}

// optional returns a pointer to the field value, nil when the key is absent.
// A present null yields a non-nil pointer to a nil value.
func (p Payload) optional(key string) *any {
	v, ok := p[key]
	if !ok {
		return nil
	}
	return &v
}

// ChatRequest is the non-streaming chat completion request sent upstream.
// Optional fields are pointers so that absent keys are omitted entirely.
type ChatRequest struct {
	Model       any  `json:"model"`
	Messages    any  `json:"messages"`
	Stream      bool `json:"stream"`
	Temperature any  `json:"temperature"`

	ResponseFormat *any `json:"response_format,omitempty"`
	MaxTokens      *any `json:"max_tokens,omitempty"`
	TopP           *any `json:"top_p,omitempty"`
}

// RequestDefaults holds the values used for absent payload fields.
type RequestDefaults struct {
	Model       string
	Temperature float64
}

// BuildChatRequest maps a validated payload onto the upstream request.
func BuildChatRequest(p Payload, defaults RequestDefaults) *ChatRequest {
	return &ChatRequest{
		Model:          p.Model(defaults.Model),
		Messages:       p[FieldMessages],
		Stream:         false,
		Temperature:    p.Temperature(defaults.Temperature),
		ResponseFormat: p.optional(FieldResponseFormat),
		MaxTokens:      p.optional(FieldMaxTokens),
		TopP:           p.optional(FieldTopP),
	}
}

// ModelName returns the model as a string for logging and labels.
func (r *ChatRequest) ModelName() string {
	if s, ok := r.Model.(string); ok {
		return s
	}
	return fmt.Sprint(r.Model)
}

// Truthy follows JSON truthiness: null, false, 0, "", [] and {} are false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
