// Package tokenizer estimates prompt token counts for chat requests.
package tokenizer

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/mostudy/aiproxy/internal/types"
)

func init() {
	// Embedded BPE ranks; nothing is downloaded at runtime.
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// Tokenizer counts tokens for chat completion requests.
type Tokenizer interface {
	// CountTokens counts tokens in a text string for a given model.
	CountTokens(text string, model string) (int, error)

	// CountMessages counts prompt tokens for a slice of messages.
	CountMessages(messages []types.MessageText, model string) (int, error)
}

// Encoding names used by tiktoken.
const (
	EncodingCL100kBase = "cl100k_base" // GPT-4, GPT-3.5-turbo
	EncodingO200kBase  = "o200k_base"  // GPT-4o, o1 models
)

// modelEncoding pairs a prefix with its encoding.
type modelEncoding struct {
	prefix   string
	encoding string
}

// modelEncodings lists model prefixes and their encodings.
// Routed models carry a vendor prefix ("openai/gpt-4o"), which is stripped
// before matching. Longer prefixes come first.
var modelEncodings = []modelEncoding{
	{"gpt-4o", EncodingO200kBase}, // Must come before "gpt-4"
	{"gpt-4.1", EncodingO200kBase},
	{"gpt-5", EncodingO200kBase},
	{"gpt-3.5", EncodingCL100kBase},
	{"gpt-4", EncodingCL100kBase},
	{"chatgpt", EncodingO200kBase},
	{"o1", EncodingO200kBase},
	{"o3", EncodingO200kBase},
	{"o4", EncodingO200kBase},
}

// TiktokenTokenizer implements Tokenizer using tiktoken-go.
type TiktokenTokenizer struct {
	mu        sync.RWMutex
	encodings map[string]*tiktoken.Tiktoken
}

// New creates a new TiktokenTokenizer.
func New() *TiktokenTokenizer {
	return &TiktokenTokenizer{
		encodings: make(map[string]*tiktoken.Tiktoken),
	}
}

// Warm loads the encodings up front so the first request does not pay for it.
func (t *TiktokenTokenizer) Warm() error {
	for _, name := range []string{EncodingCL100kBase, EncodingO200kBase} {
		if _, err := t.encoding(name); err != nil {
			return err
		}
	}
	return nil
}

// getEncoding returns the tiktoken encoding for a model, with caching.
func (t *TiktokenTokenizer) getEncoding(model string) (*tiktoken.Tiktoken, error) {
	return t.encoding(resolveEncoding(model))
}

func (t *TiktokenTokenizer) encoding(encodingName string) (*tiktoken.Tiktoken, error) {
	t.mu.RLock()
	enc, ok := t.encodings[encodingName]
	t.mu.RUnlock()
	if ok {
		return enc, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Double-check after acquiring write lock
	if enc, ok = t.encodings[encodingName]; ok {
		return enc, nil
	}

	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	t.encodings[encodingName] = enc
	return enc, nil
}

// resolveEncoding determines the encoding name for a model.
func resolveEncoding(model string) string {
	modelLower := strings.ToLower(model)
	if i := strings.LastIndex(modelLower, "/"); i >= 0 {
		modelLower = modelLower[i+1:]
	}

	for _, me := range modelEncodings {
		if strings.HasPrefix(modelLower, me.prefix) {
			return me.encoding
		}
	}

	// Default to cl100k_base for unknown models (Gemini, Claude, etc.)
	return EncodingCL100kBase
}

// CountTokens counts tokens in a text string for a given model.
func (t *TiktokenTokenizer) CountTokens(text string, model string) (int, error) {
	enc, err := t.getEncoding(model)
	if err != nil {
		return 0, err
	}
	tokens := enc.Encode(text, nil, nil)
	return len(tokens), nil
}
