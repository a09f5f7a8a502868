package handler

import (
	"encoding/json"
	"net/http"

	services "github.com/tieubaoca/pdfrag-be/service"
	"github.com/tieubaoca/pdfrag-be/types"
)

// ExtractHandler runs structured extraction against an indexed session.
// The model's raw output is validated here: text that is not valid JSON
// gets wrapped in a fallback object instead of failing the request.
type ExtractHandler struct {
	sessions   *services.SessionService
	extraction *services.ExtractionService
}

func NewExtractHandler(sessions *services.SessionService, extraction *services.ExtractionService) *ExtractHandler {
	return &ExtractHandler{
		sessions:   sessions,
		extraction: extraction,
	}
}

func (h *ExtractHandler) HandleExtract() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			h.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req types.ExtractRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.sendError(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		var raw string
		err := h.sessions.With(req.SessionID, func(state *services.SessionState) error {
			var err error
			raw, err = h.extraction.ExtractStructuredData(r.Context(), state, req.Schema)
			return err
		})
		if err != nil {
			h.sendError(w, "Extraction failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(types.DataResponse{
			Status: "success",
			Data:   types.ExtractResponse{Fields: wrapRawJSON(raw)},
		})
	})
}

// wrapRawJSON passes valid JSON through untouched and wraps anything else
// in an object carrying the raw text and an error flag.
func wrapRawJSON(raw string) json.RawMessage {
	if json.Valid([]byte(raw)) {
		return json.RawMessage(raw)
	}
	fallback, _ := json.Marshal(map[string]string{
		"raw":   raw,
		"error": "Failed to parse JSON",
	})
	return fallback
}

func (h *ExtractHandler) sendError(w http.ResponseWriter, message string, status int) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.DataResponse{
		Status:  "error",
		Message: message,
	})
}
