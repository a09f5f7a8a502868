package types

// Message represents a single message in a generation request
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateRequest is the provider-independent shape of one LLM call.
type GenerateRequest struct {
	System      string    `json:"system"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	JSONOnly    bool      `json:"json_only"`
}
