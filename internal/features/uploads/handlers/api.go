package handlers

import (
	"errors"
	"net/http"

	"newsdesk/internal/core"
)

// FileField is the multipart field carrying the upload
const FileField = "file"

// UploadResponse is the body of a successful upload
type UploadResponse struct {
	URL string `json:"url"`
}

// APIHandler serves the upload endpoint
type APIHandler struct {
	logger   *core.Logger
	uploader Uploader
	maxBytes int64
}

// NewAPIHandler creates the upload handler. Request bodies above maxBytes
// are rejected.
func NewAPIHandler(logger *core.Logger, uploader Uploader, maxBytes int64) *APIHandler {
	return &APIHandler{
		logger:   logger,
		uploader: uploader,
		maxBytes: maxBytes,
	}
}

// Upload handles POST /api/upload
func (h *APIHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile(FileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			core.HandleError(w, r, h.logger, core.NewValidationError("No file provided", err))
			return
		}
		core.HandleError(w, r, h.logger, core.NewUploadError("Upload failed", err))
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		core.HandleError(w, r, h.logger, core.NewUploadError("Upload failed", err))
		return
	}

	core.WriteJSON(w, r, http.StatusOK, UploadResponse{URL: url})
}
