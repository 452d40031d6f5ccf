package types

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// ChatCompletion is a non-streaming chat completion returned by the upstream.
// The raw document is what the caller receives; the typed fields are a
// best-effort view of it for logging and metrics.
type ChatCompletion struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`

	raw []byte
}

// Choice represents a single completion choice.
type Choice struct {
	Index        int    `json:"index"`
	FinishReason string `json:"finish_reason,omitempty"`
}

// FinishReasonStop marks a completion that ended naturally.
const FinishReasonStop = "stop"

// Usage represents token usage statistics.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// DecodeChatCompletion decodes an upstream response body. The body must be a
// JSON object; fields of unexpected types are left out of the typed view.
func DecodeChatCompletion(data []byte) (*ChatCompletion, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	c := &ChatCompletion{raw: bytes.Clone(data)}
	c.fill(obj)
	return c, nil
}

// FinishReason returns the finish reason of the first choice, if any.
func (c *ChatCompletion) FinishReason() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].FinishReason
}

// ToMap converts the completion to a plain JSON mapping.
// Completions built in code without a raw document are converted from
// their typed fields.
func (c *ChatCompletion) ToMap() (map[string]any, error) {
	data := c.raw
	if data == nil {
		var err error
		if data, err = json.Marshal(c); err != nil {
			return nil, fmt.Errorf("encode completion: %w", err)
		}
	}

	m, err := decodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}
	return m, nil
}

// decodeObject decodes a JSON document whose top level must be an object.
func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok || obj == nil {
		return nil, fmt.Errorf("completion must be a JSON object, got %T", v)
	}
	return obj, nil
}

func (c *ChatCompletion) fill(obj map[string]any) {
	c.ID, _ = obj["id"].(string)
	c.Object, _ = obj["object"].(string)
	c.Model, _ = obj["model"].(string)
	c.Created = toInt64(obj["created"])

	if choices, ok := obj["choices"].([]any); ok {
		for _, item := range choices {
			choice, ok := item.(map[string]any)
			if !ok {
				continue
			}
			reason, _ := choice["finish_reason"].(string)
			c.Choices = append(c.Choices, Choice{
				Index:        int(toInt64(choice["index"])),
				FinishReason: reason,
			})
		}
	}

	if usage, ok := obj["usage"].(map[string]any); ok {
		c.Usage = &Usage{
			PromptTokens:     int(toInt64(usage["prompt_tokens"])),
			CompletionTokens: int(toInt64(usage["completion_tokens"])),
			TotalTokens:      int(toInt64(usage["total_tokens"])),
		}
	}
}

// toInt64 reads a JSON number, truncating fractions. Anything else is 0.
func toInt64(v any) int64 {
	n, ok := v.(json.Number)
	if !ok {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return int64(f)
	}
	return 0
}
