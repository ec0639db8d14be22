package api

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/futbolformaciones/lineup-service/shared/api"
)

const maxPhotoSize = 10 << 20 // 10 MB

var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// handleUploadPhoto stores a player photo and returns its public URL. The
// response is a bare {"url": ...} object, not the usual envelope; the
// front-end photo widget consumes it directly.
func (h *Handlers) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		api.WriteBadRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("foto")
	if err != nil {
		api.WriteBadRequest(w, "missing foto field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedPhotoExts[ext] {
		api.WriteBadRequest(w, "unsupported photo format, use jpg or png")
		return
	}

	url, err := h.uploads.Save(ctx, ext, file)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to store photo")
		api.WriteInternalServerError(w, "failed to store photo")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}
