package types

import "encoding/json"

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type UploadResponse struct {
	SessionID    string `json:"session_id"`
	OriginalName string `json:"original_name,omitempty"`
	Message      string `json:"message"`
	TotalChunks  int    `json:"total_chunks"`
	TotalPages   int    `json:"total_pages"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type ExtractResponse struct {
	Fields json.RawMessage `json:"fields"`
}
