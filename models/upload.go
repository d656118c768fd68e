package models

import "encoding/json"

// MediaFileRequest décrit un fichier que le client souhaite uploader.
// ID est un jeton de corrélation côté client, pas la clé de stockage.
type MediaFileRequest struct {
	ID          string `json:"id" validate:"required,max=100"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	Type        string `json:"type" validate:"required,oneof=image video"`
	Size        int64  `json:"size" validate:"omitempty,min=1,max=1073741824"`
}

// SignedURLRequest représente la demande d'URLs présignées
type SignedURLRequest struct {
	Title      string             `json:"title" validate:"required,max=100"`
	MediaFiles []MediaFileRequest `json:"mediaFiles" validate:"required,min=1,max=50,dive"`
}

// PartURL est l'URL présignée d'une part multipart
type PartURL struct {
	PartNumber int32  `json:"partNumber"`
	URL        string `json:"url"`
}

// CompletedPart est le résultat de l'upload d'une part, rapporté par le client
type CompletedPart struct {
	ETag       string `json:"ETag" validate:"required"`
	PartNumber int32  `json:"PartNumber" validate:"min=1,max=10000"`
}

// MultipartCompletionRequest demande la finalisation d'une session multipart
type MultipartCompletionRequest struct {
	Key      string          `json:"key" validate:"required"`
	UploadID string          `json:"uploadId" validate:"required"`
	Parts    []CompletedPart `json:"parts" validate:"dive"`
}

// CompleteBatchRequest regroupe plusieurs finalisations multipart
type CompleteBatchRequest struct {
	Uploads []MultipartCompletionRequest `json:"uploads" validate:"required,min=1,max=50,dive"`
}

// AbortMultipartRequest demande l'abandon d'une session multipart
type AbortMultipartRequest struct {
	Key      string `json:"key" validate:"required"`
	UploadID string `json:"uploadId" validate:"required"`
}

// PresignedDescriptor est le résultat de l'intake pour un fichier :
// soit SinglePartDescriptor, soit MultipartDescriptor.
type PresignedDescriptor interface {
	StorageKey() string
	IsMultipart() bool
}

// SinglePartDescriptor est une URL PUT unique
type SinglePartDescriptor struct {
	ID   string
	Key  string
	URL  string
	Type string
}

// MultipartDescriptor est une session multipart avec une URL par part
type MultipartDescriptor struct {
	ID       string
	Key      string
	UploadID string
	Parts    []PartURL
	Type     string
}

func (d SinglePartDescriptor) StorageKey() string { return d.Key }
func (d SinglePartDescriptor) IsMultipart() bool  { return false }
func (d MultipartDescriptor) StorageKey() string  { return d.Key }
func (d MultipartDescriptor) IsMultipart() bool   { return true }

// MarshalJSON ajoute le discriminant "multipart"
func (d SinglePartDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string `json:"id"`
		Key       string `json:"key"`
		URL       string `json:"url"`
		Multipart bool   `json:"multipart"`
		Type      string `json:"type"`
	}{d.ID, d.Key, d.URL, false, d.Type})
}

// MarshalJSON ajoute le discriminant "multipart"
func (d MultipartDescriptor) MarshalJSON() ([]byte, error) {
	parts := d.Parts
	if parts == nil {
		parts = []PartURL{}
	}
	return json.Marshal(struct {
		ID        string    `json:"id"`
		Key       string    `json:"key"`
		UploadID  string    `json:"uploadId"`
		Parts     []PartURL `json:"parts"`
		Multipart bool      `json:"multipart"`
		Type      string    `json:"type"`
	}{d.ID, d.Key, d.UploadID, parts, true, d.Type})
}
