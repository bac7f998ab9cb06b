package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"folio/internal/models"
	"folio/internal/render"
)

const (
	// maxUploadSize is the maximum allowed file upload size (10 MB).
	maxUploadSize = 10 << 20
)

// allowedMediaTypes defines MIME types accepted for upload.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// MediaList renders the media management page with public URLs ready
// to paste into post and project image fields.
func (a *Admin) MediaList(w http.ResponseWriter, r *http.Request) {
	items := a.media.List()

	urls := make(map[uuid.UUID]string, len(items))
	if a.storage != nil {
		for _, m := range items {
			urls[m.ID] = a.storage.FileURL(m.S3Key)
		}
	}

	a.renderer.Page(w, r, "admin/media", &render.PageData{
		Title:   "Media",
		Section: "media",
		Data: map[string]any{
			"Items":             items,
			"URLs":              urls,
			"StorageConfigured": a.storage != nil,
		},
	})
}

// MediaUpload handles a multipart image upload to S3.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	if a.storage == nil {
		http.Error(w, "Object storage is not configured.", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "File too large. Maximum size is 10 MB.", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file in request.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedMediaTypes[contentType] {
		http.Error(w, "Unsupported file type.", http.StatusUnsupportedMediaType)
		return
	}

	// Key by upload date and a fresh UUID; the original extension is
	// kept so the served Content-Type stays sensible.
	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := fmt.Sprintf("uploads/%s/%s%s", time.Now().Format("2006/01"), uuid.New(), ext)

	if err := a.storage.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("media upload failed", "key", key, "error", err)
		http.Error(w, "Upload failed.", http.StatusBadGateway)
		return
	}

	if _, err := a.media.Create(&models.Media{
		Filename:    header.Filename,
		S3Key:       key,
		ContentType: contentType,
		SizeBytes:   header.Size,
	}); err != nil {
		slog.Error("record media failed", "key", key, "error", err)
		// The object is orphaned in the bucket; remove it so storage
		// and the media table stay in step.
		if derr := a.storage.Delete(r.Context(), key); derr != nil {
			slog.Error("orphan cleanup failed", "key", key, "error", derr)
		}
		http.Error(w, "Upload failed.", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
}

// MediaDelete removes an upload from both S3 and the media table.
func (a *Admin) MediaDelete(w http.ResponseWriter, r *http.Request) {
	m := a.media.FindByID(pathID(r))
	if m == nil {
		http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
		return
	}

	if a.storage != nil {
		if err := a.storage.Delete(r.Context(), m.S3Key); err != nil {
			slog.Error("delete object failed", "key", m.S3Key, "error", err)
		}
	}
	if _, err := a.media.Delete(m.ID); err != nil {
		slog.Error("delete media record failed", "id", m.ID, "error", err)
	}

	http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
}
