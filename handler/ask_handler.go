package handler

import (
	"encoding/json"
	"net/http"

	services "github.com/tieubaoca/pdfrag-be/service"
	"github.com/tieubaoca/pdfrag-be/types"
)

// AskHandler answers questions against an indexed session.
type AskHandler struct {
	sessions *services.SessionService
	qa       *services.QAService
}

func NewAskHandler(sessions *services.SessionService, qa *services.QAService) *AskHandler {
	return &AskHandler{
		sessions: sessions,
		qa:       qa,
	}
}

func (h *AskHandler) HandleAsk() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			h.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req types.AskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.sendError(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		var answer string
		err := h.sessions.With(req.SessionID, func(state *services.SessionState) error {
			var err error
			// A nil state answers with the user-facing indexing hint
			answer, err = h.qa.AnswerQuestion(r.Context(), state, req.Question, req.TopK, req.Temperature)
			return err
		})
		if err != nil {
			h.sendError(w, "Answering failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(types.DataResponse{
			Status: "success",
			Data:   types.AskResponse{Answer: answer},
		})
	})
}

func (h *AskHandler) sendError(w http.ResponseWriter, message string, status int) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.DataResponse{
		Status:  "error",
		Message: message,
	})
}
