package handler

import (
	"encoding/json"
	"net/http"

	services "github.com/tieubaoca/pdfrag-be/service"
	"github.com/tieubaoca/pdfrag-be/types"
)

// SessionHandler tears down sessions and the indexes they hold.
type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) HandleDelete() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodDelete {
			h.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		sessionID := r.URL.Query().Get("session_id")
		if sessionID == "" {
			h.sendError(w, "session_id is required", http.StatusBadRequest)
			return
		}

		if err := h.sessions.Delete(sessionID); err != nil {
			h.sendError(w, err.Error(), http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(types.DataResponse{
			Status:  "success",
			Message: "Session deleted",
		})
	})
}

func (h *SessionHandler) sendError(w http.ResponseWriter, message string, status int) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.DataResponse{
		Status:  "error",
		Message: message,
	})
}
