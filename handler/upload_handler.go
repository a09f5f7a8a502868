package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	services "github.com/tieubaoca/pdfrag-be/service"
	"github.com/tieubaoca/pdfrag-be/types"
)

const maxUploadSize = 50 << 20 // 50MB

// UploadHandler receives a PDF, stores it, runs the indexing pipeline and
// binds the resulting state to a session slot.
type UploadHandler struct {
	fileService *services.FileService
	indexer     *services.IndexerService
	sessions    *services.SessionService
}

func NewUploadHandler(fileService *services.FileService, indexer *services.IndexerService, sessions *services.SessionService) *UploadHandler {
	return &UploadHandler{
		fileService: fileService,
		indexer:     indexer,
		sessions:    sessions,
	}
}

func (h *UploadHandler) UploadDocumentHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			h.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.sendError(w, "Invalid multipart form", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.sendError(w, "Invalid file", http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Size > maxUploadSize {
			h.sendError(w, "File too large", http.StatusBadRequest)
			return
		}

		// Optional chunking overrides; 0 falls back to config defaults
		chunkSize := formInt(r, "chunk_size")
		overlap := formInt(r, "overlap")

		storedPath, err := h.fileService.SaveUpload(header)
		if err != nil {
			h.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}

		state, message := h.indexer.CreateIndex(r.Context(), storedPath, chunkSize, overlap)
		if state == nil {
			// Pipeline failures are structured results, not crashes
			h.sendError(w, message, http.StatusBadRequest)
			return
		}

		sessionID := h.sessions.Put(r.FormValue("session_id"), state)

		h.sendSuccess(w, types.UploadResponse{
			SessionID:    sessionID,
			OriginalName: header.Filename,
			Message:      message,
			TotalChunks:  state.TotalChunks,
			TotalPages:   state.TotalPages,
		})
	})
}

func formInt(r *http.Request, field string) int {
	value, err := strconv.Atoi(r.FormValue(field))
	if err != nil {
		return 0
	}
	return value
}

func (h *UploadHandler) sendError(w http.ResponseWriter, message string, status int) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.DataResponse{
		Status:  "error",
		Message: message,
	})
}

func (h *UploadHandler) sendSuccess(w http.ResponseWriter, res types.UploadResponse) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(types.DataResponse{
		Status: "success",
		Data:   res,
	})
}
