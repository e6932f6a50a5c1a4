package brightdata

import (
	"encoding/json"
	"fmt"
)

// MessageText is free-text input that may arrive either as a plain JSON
// string or as a message object carrying a text field. Workflow hosts pass
// both forms interchangeably, so tool inputs use this type wherever free
// text is accepted:
//
//	{"query": "hello"}
//	{"query": {"text": "hello"}}
type MessageText struct {
	Text string
}

func (m MessageText) String() string {
	return m.Text
}

func (m MessageText) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Text)
}

func (m *MessageText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Text = s
		return nil
	}
	var msg struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("expected string or message object: %w", err)
	}
	m.Text = msg.Text
	return nil
}
