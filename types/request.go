package types

type AskRequest struct {
	SessionID   string  `json:"session_id"`
	Question    string  `json:"question"`
	TopK        int     `json:"top_k,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`
}

type ExtractRequest struct {
	SessionID string `json:"session_id"`
	Schema    string `json:"schema"`
}
