package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DocumentHandler serves stored PDFs back to the front-end so cited pages
// can be shown next to an answer.
type DocumentHandler struct {
	uploadDir string
}

func NewDocumentHandler(uploadDir string) *DocumentHandler {
	return &DocumentHandler{
		uploadDir: uploadDir,
	}
}

func (h *DocumentHandler) ServeDocument() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		requestedName := r.URL.Query().Get("file")
		if requestedName == "" {
			http.Error(w, "File parameter is required", http.StatusBadRequest)
			return
		}
		if filepath.Ext(requestedName) != ".pdf" {
			http.Error(w, "Only PDF files are allowed", http.StatusBadRequest)
			return
		}

		// Stored names carry a timestamp suffix the client does not know
		actualFile, err := h.findFileWithTimestamp(filepath.Base(requestedName))
		if err != nil {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s", requestedName))
		http.ServeFile(w, r, filepath.Join(h.uploadDir, actualFile))
	})
}

func (h *DocumentHandler) findFileWithTimestamp(requestedName string) (string, error) {
	files, err := os.ReadDir(h.uploadDir)
	if err != nil {
		return "", err
	}

	baseName := strings.TrimSuffix(requestedName, ".pdf")
	for _, file := range files {
		name := file.Name()
		if !strings.HasSuffix(name, ".pdf") {
			continue
		}

		nameWithoutExt := strings.TrimSuffix(name, ".pdf")
		if nameWithoutExt == baseName {
			return name, nil
		}

		lastUnderscoreIdx := strings.LastIndex(nameWithoutExt, "_")
		if lastUnderscoreIdx == -1 {
			continue
		}
		timestampPart := nameWithoutExt[lastUnderscoreIdx+1:]
		if _, err := strconv.ParseInt(timestampPart, 10, 64); err != nil {
			continue
		}
		if nameWithoutExt[:lastUnderscoreIdx] == baseName {
			return name, nil
		}
	}

	return "", fmt.Errorf("file not found: %s", requestedName)
}
