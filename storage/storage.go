// Package storage regroupe l'accès au stockage objet : URLs présignées
// d'upload (simple et multipart), finalisation, abandon et suppression.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"events-cms-backend/models"
)

// DefaultPresignExpiry est la durée de validité des URLs présignées
const DefaultPresignExpiry = 15 * time.Minute

var (
	// ErrStorage signale un refus ou une panne du stockage objet
	ErrStorage = errors.New("erreur du stockage objet")
	// ErrInvalidParts signale une liste de parts multipart inutilisable
	ErrInvalidParts = errors.New("parts multipart invalides")
)

// MultipartSession est une session multipart ouverte et ses URLs de parts
type MultipartSession struct {
	UploadID string
	Parts    []models.PartURL
}

// Gateway est le contrat commun des pilotes de stockage (S3, MinIO)
type Gateway interface {
	IssueSingleURL(ctx context.Context, key, contentType string) (string, error)
	IssueMultipartURLs(ctx context.Context, key, contentType string, partCount int) (*MultipartSession, error)
	CompleteMultipart(ctx context.Context, key, uploadID string, parts []models.CompletedPart) (string, error)
	AbortMultipart(ctx context.Context, key, uploadID string) error
	ResolveURL(key string) string
	DeleteObject(ctx context.Context, key string) error
}

// PartCount retourne ceil(size/partSize)
func PartCount(size, partSize int64) int {
	if size <= 0 || partSize <= 0 {
		return 0
	}
	return int((size + partSize - 1) / partSize)
}

// SortedParts valide les parts rapportées par le client et les trie par numéro.
// La liste d'origine n'est pas modifiée.
func SortedParts(parts []models.CompletedPart) ([]models.CompletedPart, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: aucune part fournie", ErrInvalidParts)
	}

	seen := make(map[int32]bool, len(parts))
	sorted := make([]models.CompletedPart, len(parts))
	copy(sorted, parts)
	for _, p := range sorted {
		if p.PartNumber < 1 {
			return nil, fmt.Errorf("%w: numéro de part %d", ErrInvalidParts, p.PartNumber)
		}
		if strings.TrimSpace(p.ETag) == "" {
			return nil, fmt.Errorf("%w: ETag manquant pour la part %d", ErrInvalidParts, p.PartNumber)
		}
		if seen[p.PartNumber] {
			return nil, fmt.Errorf("%w: part %d en double", ErrInvalidParts, p.PartNumber)
		}
		seen[p.PartNumber] = true
	}

	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PartNumber < sorted[j].PartNumber })
	return sorted, nil
}

// storageError rattache une erreur du fournisseur à ErrStorage
func storageError(op string, err error) error {
	return fmt.Errorf("%w (%s): %w", ErrStorage, op, err)
}

// publicURL construit l'URL publique d'une clé.
// Sans base publique configurée, on suit le format virtual-hosted d'AWS.
func publicURL(baseURL, bucket, region, key string) string {
	if baseURL != "" {
		return strings.TrimRight(baseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}
