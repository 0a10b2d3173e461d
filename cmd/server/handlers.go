package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/brunobiangulo/docscore"
)

type handler struct {
	analyzer    *docscore.Analyzer
	maxFileSize int64
}

func newHandler(a *docscore.Analyzer, maxFileSize int64) *handler {
	return &handler{analyzer: a, maxFileSize: maxFileSize}
}

// POST /analyze
// Accepts a multipart upload: "file" is the document, "type" the declared
// file type (optional, defaults to the filename extension).
func (h *handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart file upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	format := r.FormValue("type")

	// Sanitise filename to prevent path traversal.
	safeName := filepath.Base(header.Filename)

	// Each request gets its own temp file so concurrent uploads sharing a
	// filename cannot clobber each other. Keep the extension for format
	// detection.
	dst, err := os.CreateTemp("", "docscore-*"+filepath.Ext(safeName))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to process file")
		slog.Error("creating temp file", "error", err)
		return
	}
	tmpPath := dst.Name()
	defer os.Remove(tmpPath)
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		writeError(w, http.StatusInternalServerError, "failed to save file")
		slog.Error("saving uploaded file", "error", err)
		return
	}
	dst.Close()

	report, err := h.analyzer.Analyze(ctx, tmpPath, format)
	if err != nil {
		status, msg := statusForError(err)
		writeError(w, status, msg)
		slog.Error("analyze error", "filename", safeName, "error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"filename": safeName,
		"report":   report,
	})
}

// statusForError maps the analyzer error taxonomy to HTTP statuses.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, docscore.ErrUnsupportedFormat):
		return http.StatusBadRequest, "unsupported document format"
	case errors.Is(err, docscore.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "file too large"
	case errors.Is(err, docscore.ErrParseFailed):
		return http.StatusUnprocessableEntity, "document could not be parsed"
	default:
		return http.StatusInternalServerError, "analysis failed"
	}
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
