package handlers

import (
	"context"
	"net/http"

	"events-cms-backend/models"
	"events-cms-backend/services"
	"events-cms-backend/utils"
)

// MediaUploader orchestre les uploads directs vers le stockage
type MediaUploader interface {
	RequestUploadURLs(ctx context.Context, title string, files []models.MediaFileRequest) ([]models.PresignedDescriptor, error)
	CompleteBatch(ctx context.Context, uploads []models.MultipartCompletionRequest) ([]services.CompletionResult, error)
	Abort(ctx context.Context, key, uploadID string) error
}

// MediaHandler gère les URLs présignées et les sessions multipart
type MediaHandler struct {
	uploads MediaUploader
}

// NewMediaHandler crée une nouvelle instance de MediaHandler
func NewMediaHandler(uploads MediaUploader) *MediaHandler {
	return &MediaHandler{uploads: uploads}
}

// SignedURL émet une URL présignée (simple ou multipart) par fichier
func (h *MediaHandler) SignedURL(w http.ResponseWriter, r *http.Request) error {
	var req models.SignedURLRequest
	if err := DecodeAndValidate(r, &req); err != nil {
		return err
	}

	descriptors, err := h.uploads.RequestUploadURLs(r.Context(), req.Title, req.MediaFiles)
	if err != nil {
		return err
	}

	utils.RespondSuccess(w, "URLs présignées générées", map[string]interface{}{
		"title":  req.Title,
		"medias": descriptors,
	})
	return nil
}

// CompleteMultipartBatch finalise plusieurs sessions multipart.
// La réponse est un succès global ou un échec global.
func (h *MediaHandler) CompleteMultipartBatch(w http.ResponseWriter, r *http.Request) error {
	var req models.CompleteBatchRequest
	if err := DecodeAndValidate(r, &req); err != nil {
		return err
	}

	results, err := h.uploads.CompleteBatch(r.Context(), req.Uploads)
	if err != nil {
		return err
	}

	keys := make([]string, len(results))
	for i, res := range results {
		keys[i] = res.Key
	}

	utils.RespondSuccess(w, "Uploads multipart finalisés", map[string]interface{}{"keys": keys})
	return nil
}

// AbortMultipart abandonne une session multipart
func (h *MediaHandler) AbortMultipart(w http.ResponseWriter, r *http.Request) error {
	var req models.AbortMultipartRequest
	if err := DecodeAndValidate(r, &req); err != nil {
		return err
	}

	if err := h.uploads.Abort(r.Context(), req.Key, req.UploadID); err != nil {
		return err
	}

	utils.RespondSuccess(w, "Upload multipart annulé", nil)
	return nil
}
