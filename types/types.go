package types

const (
	TypeWebsocketPing       = "ping"
	TypeWebsocketPong       = "pong"
	TypeWebsocketAsk        = "ask"
	TypeWebsocketAnswer     = "answer"
	TypeWebsocketProcessing = "processing"
	TypeWebsocketError      = "error"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketAskPayload struct {
	SessionID   string  `json:"session_id"`
	Question    string  `json:"question"`
	TopK        int     `json:"top_k,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`
}

type WebSocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketAnswerResponse struct {
	Answer string `json:"answer"`
}

type WebSocketProcessingResponse struct {
	Message string `json:"message"`
}
