package tokenizer

import (
	"testing"

	"github.com/mostudy/aiproxy/internal/types"
)

func TestNew(t *testing.T) {
	tok := New()
	if tok == nil {
		t.Fatal("New() returned nil")
	}
	if tok.encodings == nil {
		t.Fatal("encodings map is nil")
	}
}

func TestResolveEncoding(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"gpt-4", EncodingCL100kBase},
		{"gpt-4o-mini", EncodingO200kBase},
		{"openai/gpt-4o", EncodingO200kBase},
		{"openai/gpt-3.5-turbo", EncodingCL100kBase},
		{"OpenAI/O3-mini", EncodingO200kBase},
		{"google/gemini-3-flash-preview", EncodingCL100kBase},
		{"", EncodingCL100kBase},
	}

	for _, tc := range tests {
		t.Run(tc.model, func(t *testing.T) {
			if got := resolveEncoding(tc.model); got != tc.want {
				t.Errorf("resolveEncoding(%q) = %q, want %q", tc.model, got, tc.want)
			}
		})
	}
}

func TestCountTokens(t *testing.T) {
	tok := New()

	tests := []struct {
		name     string
		text     string
		model    string
		minCount int // Token counts may vary slightly
		maxCount int
	}{
		{
			name:     "simple text gpt-4",
			text:     "Hello, world!",
			model:    "gpt-4",
			minCount: 3,
			maxCount: 5,
		},
		{
			name:     "simple text gpt-4o",
			text:     "Hello, world!",
			model:    "openai/gpt-4o",
			minCount: 3,
			maxCount: 5,
		},
		{
			name:     "unknown model defaults to cl100k",
			text:     "Hello, world!",
			model:    "google/gemini-3-flash-preview",
			minCount: 3,
			maxCount: 5,
		},
		{
			name:     "empty text",
			text:     "",
			model:    "gpt-4",
			minCount: 0,
			maxCount: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			count, err := tok.CountTokens(tc.text, tc.model)
			if err != nil {
				t.Fatalf("CountTokens() error: %v", err)
			}
			if count < tc.minCount || count > tc.maxCount {
				t.Errorf("CountTokens() = %d, want between %d and %d",
					count, tc.minCount, tc.maxCount)
			}
		})
	}
}

func TestCountMessages(t *testing.T) {
	tok := New()

	tests := []struct {
		name     string
		messages any
		minCount int
		maxCount int
	}{
		{
			name:     "no messages",
			messages: nil,
			minCount: 0,
			maxCount: 0,
		},
		{
			name: "single user message",
			messages: []any{
				map[string]any{"role": "user", "content": "Hello!"},
			},
			minCount: 5,
			maxCount: 10,
		},
		{
			name: "system and user messages",
			messages: []any{
				map[string]any{"role": "system", "content": "You are a helpful assistant."},
				map[string]any{"role": "user", "content": "Hello!"},
			},
			minCount: 12,
			maxCount: 24,
		},
		{
			name: "multimodal parts count text only",
			messages: []any{
				map[string]any{"role": "user", "content": []any{
					map[string]any{"type": "text", "text": "Describe this"},
					map[string]any{"type": "image_url", "image_url": map[string]any{"url": "https://x.test/a.png"}},
				}},
			},
			minCount: 6,
			maxCount: 12,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			count, err := tok.CountMessages(types.ExtractMessages(tc.messages), "google/gemini-3-flash-preview")
			if err != nil {
				t.Fatalf("CountMessages() error: %v", err)
			}
			if count < tc.minCount || count > tc.maxCount {
				t.Errorf("CountMessages() = %d, want between %d and %d",
					count, tc.minCount, tc.maxCount)
			}
		})
	}
}

func TestWarm(t *testing.T) {
	tok := New()
	if err := tok.Warm(); err != nil {
		t.Fatalf("Warm() error: %v", err)
	}
	if len(tok.encodings) != 2 {
		t.Errorf("expected 2 cached encodings, got %d", len(tok.encodings))
	}
}
