// Package types defines the payloads exchanged with callers and the upstream
// chat completion service.
package types

// MessageText is the textual view of one chat message.
type MessageText struct {
	Role string
	Name string
	Text []string
}

// ExtractMessages reads role and text content out of opaque caller messages.
// Entries that are not objects are skipped. Content may be a string or a list
// of parts; only text parts contribute.
func ExtractMessages(messages any) []MessageText {
	list, ok := messages.([]any)
	if !ok {
		return nil
	}

	out := make([]MessageText, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		msg := MessageText{}
		msg.Role, _ = obj["role"].(string)
		msg.Name, _ = obj["name"].(string)

		switch content := obj["content"].(type) {
		case string:
			msg.Text = append(msg.Text, content)
		case []any:
			for _, part := range content {
				p, ok := part.(map[string]any)
				if !ok {
					continue
				}
				if text, ok := p["text"].(string); ok {
					msg.Text = append(msg.Text, text)
				}
			}
		}
		out = append(out, msg)
	}
	return out
}
