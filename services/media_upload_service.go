package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"events-cms-backend/models"
	"events-cms-backend/storage"
	"events-cms-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// MediaUploadService orchestre les uploads directs vers le stockage objet :
// émission des URLs présignées, finalisation et abandon des sessions multipart.
type MediaUploadService struct {
	gateway   storage.Gateway
	tracker   storage.KeyTracker
	threshold int64
	partSize  int64
	newID     func() string
}

// NewMediaUploadService crée le service d'upload.
// Un fichier part en multipart dès que sa taille dépasse threshold.
func NewMediaUploadService(gateway storage.Gateway, tracker storage.KeyTracker, threshold, partSize int64) *MediaUploadService {
	return &MediaUploadService{
		gateway:   gateway,
		tracker:   tracker,
		threshold: threshold,
		partSize:  partSize,
		newID:     uuid.NewString,
	}
}

// CompletionResult est le résultat de la finalisation d'une session multipart
type CompletionResult struct {
	Key      string
	UploadID string
	Err      error
}

// mediaKey compose la clé de stockage media/{type}/{title}-{id}
func mediaKey(mediaType, title, id string) string {
	return fmt.Sprintf("media/%s/%s-%s", mediaType, strings.TrimSpace(title), id)
}

// RequestUploadURLs émet un descripteur présigné par fichier.
// Le premier échec fait échouer tout l'appel ; les URLs déjà émises expirent seules.
func (s *MediaUploadService) RequestUploadURLs(ctx context.Context, title string, files []models.MediaFileRequest) ([]models.PresignedDescriptor, error) {
	if len(files) == 0 {
		return nil, utils.BadRequest("Au moins un fichier est requis")
	}

	descriptors := make([]models.PresignedDescriptor, len(files))
	var g errgroup.Group
	for i, file := range files {
		g.Go(func() error {
			d, err := s.issue(ctx, title, file)
			if err != nil {
				return err
			}
			descriptors[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Printf("✓ %d URL(s) présignée(s) émise(s) pour \"%s\"", len(descriptors), title)
	return descriptors, nil
}

func (s *MediaUploadService) issue(ctx context.Context, title string, file models.MediaFileRequest) (models.PresignedDescriptor, error) {
	key := mediaKey(file.Type, title, s.newID())

	if file.Size > s.threshold {
		session, err := s.gateway.IssueMultipartURLs(ctx, key, file.ContentType, storage.PartCount(file.Size, s.partSize))
		if err != nil {
			return nil, err
		}
		if err := s.tracker.Track(ctx, key, session.UploadID); err != nil {
			return nil, err
		}
		return models.MultipartDescriptor{
			ID:       file.ID,
			Key:      key,
			UploadID: session.UploadID,
			Parts:    session.Parts,
			Type:     file.Type,
		}, nil
	}

	url, err := s.gateway.IssueSingleURL(ctx, key, file.ContentType)
	if err != nil {
		return nil, err
	}
	if err := s.tracker.Track(ctx, key, ""); err != nil {
		return nil, err
	}
	return models.SinglePartDescriptor{ID: file.ID, Key: key, URL: url, Type: file.Type}, nil
}

// CompleteBatch finalise toutes les sessions en parallèle. Un échec n'empêche
// pas les autres finalisations ; l'erreur retournée agrège tous les échecs.
func (s *MediaUploadService) CompleteBatch(ctx context.Context, uploads []models.MultipartCompletionRequest) ([]CompletionResult, error) {
	results := make([]CompletionResult, len(uploads))

	var g errgroup.Group
	for i, upload := range uploads {
		g.Go(func() error {
			key, err := s.gateway.CompleteMultipart(ctx, upload.Key, upload.UploadID, upload.Parts)
			results[i] = CompletionResult{Key: key, UploadID: upload.UploadID, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	var errs error
	for _, r := range results {
		if r.Err != nil {
			log.Printf("❌ Échec de finalisation de la session %s: %v", r.UploadID, r.Err)
			errs = multierr.Append(errs, fmt.Errorf("session %s: %w", r.UploadID, r.Err))
		}
	}
	return results, errs
}

// Abort abandonne une session multipart et oublie la clé émise
func (s *MediaUploadService) Abort(ctx context.Context, key, uploadID string) error {
	if err := s.gateway.AbortMultipart(ctx, key, uploadID); err != nil {
		return err
	}
	if err := s.tracker.Forget(ctx, key); err != nil {
		log.Printf("⚠️  Clé %s non oubliée après abandon: %v", key, err)
	}
	log.Printf("✓ Session multipart %s abandonnée", uploadID)
	return nil
}

// ResolveURL expose l'URL publique d'une clé
func (s *MediaUploadService) ResolveURL(key string) string {
	return s.gateway.ResolveURL(key)
}
