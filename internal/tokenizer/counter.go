package tokenizer

import "github.com/mostudy/aiproxy/internal/types"

// Per-message overhead as documented for OpenAI chat formats.
const (
	messageOverhead    = 3 // <|start|>role<|end|>
	replyPrimingTokens = 3 // assistant response start
	nameOverhead       = 1
)

// CountMessages counts prompt tokens for a slice of messages.
// The count is an estimate for non-OpenAI models.
func (t *TiktokenTokenizer) CountMessages(messages []types.MessageText, model string) (int, error) {
	if len(messages) == 0 {
		return 0, nil
	}

	enc, err := t.getEncoding(model)
	if err != nil {
		return 0, err
	}
	count := func(s string) int {
		return len(enc.Encode(s, nil, nil))
	}

	total := replyPrimingTokens
	for _, msg := range messages {
		total += messageOverhead + count(msg.Role)
		if msg.Name != "" {
			total += nameOverhead + count(msg.Name)
		}
		for _, text := range msg.Text {
			total += count(text)
		}
	}
	return total, nil
}
