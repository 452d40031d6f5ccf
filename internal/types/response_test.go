package types

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestDecodeChatCompletion_ToMap(t *testing.T) {
	raw := `{"id":"x","model":"m","choices":[{"index":0,"message":{"role":"assistant","content":"hi"},"finish_reason":"stop"}],` +
		`"usage":{"prompt_tokens":3,"completion_tokens":1,"total_tokens":4},"provider":"Google"}`

	c, err := DecodeChatCompletion([]byte(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if c.FinishReason() != FinishReasonStop {
		t.Errorf("expected finish reason stop, got %q", c.FinishReason())
	}
	if c.Usage == nil || c.Usage.TotalTokens != 4 {
		t.Errorf("unexpected usage: %+v", c.Usage)
	}

	m, err := c.ToMap()
	if err != nil {
		t.Fatalf("ToMap failed: %v", err)
	}

	// Round trip through the mapping must reproduce the upstream document.
	got, _ := json.Marshal(m)
	var want, have map[string]any
	_ = json.Unmarshal([]byte(raw), &want)
	_ = json.Unmarshal(got, &have)
	if !jsonEqual(want, have) {
		t.Errorf("mapping differs from upstream:\n got: %s\nwant: %s", got, raw)
	}
}

func TestChatCompletion_ToMapWithoutRaw(t *testing.T) {
	c := &ChatCompletion{ID: "built", Choices: []Choice{{Index: 0, FinishReason: "length"}}}

	m, err := c.ToMap()
	if err != nil {
		t.Fatalf("ToMap failed: %v", err)
	}
	if m["id"] != "built" {
		t.Errorf("expected id from typed fields, got %v", m["id"])
	}
}

func TestDecodeChatCompletion_Malformed(t *testing.T) {
	for _, input := range []string{"", "not json", "[1,2]", "[]", "null", `"text"`, "42"} {
		if _, err := DecodeChatCompletion([]byte(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestDecodeChatCompletion_LooseTypes(t *testing.T) {
	raw := `{"id":123,"created":1.7e9,"choices":[{"index":0,"finish_reason":"stop"},"junk"],` +
		`"usage":{"prompt_tokens":2.5,"completion_tokens":"x","total_tokens":4}}`

	c, err := DecodeChatCompletion([]byte(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if c.ID != "" {
		t.Errorf("expected non-string id to be skipped, got %q", c.ID)
	}
	if c.Created != 1700000000 {
		t.Errorf("expected created 1700000000, got %d", c.Created)
	}
	if len(c.Choices) != 1 || c.FinishReason() != FinishReasonStop {
		t.Errorf("unexpected choices: %+v", c.Choices)
	}
	if c.Usage == nil || c.Usage.PromptTokens != 2 || c.Usage.CompletionTokens != 0 || c.Usage.TotalTokens != 4 {
		t.Errorf("unexpected usage: %+v", c.Usage)
	}

	m, err := c.ToMap()
	if err != nil {
		t.Fatalf("ToMap failed: %v", err)
	}
	if m["id"] != json.Number("123") {
		t.Errorf("expected id to pass through unchanged, got %#v", m["id"])
	}
}

func TestFinishReason_NoChoices(t *testing.T) {
	if got := (&ChatCompletion{}).FinishReason(); got != "" {
		t.Errorf("expected empty finish reason, got %q", got)
	}
}

func jsonEqual(a, b map[string]any) bool {
	x, _ := json.Marshal(a)
	y, _ := json.Marshal(b)
	return string(x) == string(y)
}
