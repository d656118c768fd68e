package storage

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"events-cms-backend/models"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig décrit l'accès à un serveur MinIO
type MinioConfig struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	PublicBaseURL   string
	PresignExpiry   time.Duration
}

// minioAPI est le sous-ensemble de minio.Core utilisé par la passerelle
type minioAPI interface {
	PresignHeader(ctx context.Context, method, bucketName, objectName string, expires time.Duration, reqParams url.Values, extraHeaders http.Header) (*url.URL, error)
	Presign(ctx context.Context, method, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
	NewMultipartUpload(ctx context.Context, bucket, object string, opts minio.PutObjectOptions) (string, error)
	CompleteMultipartUpload(ctx context.Context, bucket, object, uploadID string, parts []minio.CompletePart, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	AbortMultipartUpload(ctx context.Context, bucket, object, uploadID string) error
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioGateway implémente Gateway avec l'API Core de minio-go
type MinioGateway struct {
	client minioAPI
	cfg    MinioConfig
}

// NewMinioGateway crée la passerelle MinIO
func NewMinioGateway(cfg MinioConfig) (*MinioGateway, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_ENDPOINT et AWS_BUCKET_NAME sont requis pour MinIO")
	}

	core, err := minio.NewCore(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la création du client MinIO: %w", err)
	}

	return newMinioGateway(core, cfg), nil
}

func newMinioGateway(client minioAPI, cfg MinioConfig) *MinioGateway {
	if cfg.PresignExpiry <= 0 {
		cfg.PresignExpiry = DefaultPresignExpiry
	}
	if cfg.PublicBaseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		cfg.PublicBaseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	return &MinioGateway{client: client, cfg: cfg}
}

// IssueSingleURL présigne un PUT direct vers la clé. Le Content-Type fait
// partie de la signature, le client doit envoyer le même.
func (g *MinioGateway) IssueSingleURL(ctx context.Context, key, contentType string) (string, error) {
	headers := http.Header{}
	if contentType != "" {
		headers.Set("Content-Type", contentType)
	}
	u, err := g.client.PresignHeader(ctx, http.MethodPut, g.cfg.Bucket, key, g.cfg.PresignExpiry, nil, headers)
	if err != nil {
		return "", storageError("présignature PUT", err)
	}
	return u.String(), nil
}

// IssueMultipartURLs ouvre une session multipart et présigne les parts 1..partCount
func (g *MinioGateway) IssueMultipartURLs(ctx context.Context, key, contentType string, partCount int) (*MultipartSession, error) {
	if partCount < 1 {
		return nil, fmt.Errorf("%w: nombre de parts %d", ErrInvalidParts, partCount)
	}

	uploadID, err := g.client.NewMultipartUpload(ctx, g.cfg.Bucket, key, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, storageError("ouverture multipart", err)
	}

	parts := make([]models.PartURL, 0, partCount)
	for n := 1; n <= partCount; n++ {
		params := url.Values{}
		params.Set("uploadId", uploadID)
		params.Set("partNumber", strconv.Itoa(n))

		u, err := g.client.Presign(ctx, http.MethodPut, g.cfg.Bucket, key, g.cfg.PresignExpiry, params)
		if err != nil {
			if abortErr := g.AbortMultipart(ctx, key, uploadID); abortErr != nil {
				log.Printf("⚠️  Abandon de la session %s impossible: %v", uploadID, abortErr)
			}
			return nil, storageError(fmt.Sprintf("présignature de la part %d", n), err)
		}
		parts = append(parts, models.PartURL{PartNumber: int32(n), URL: u.String()})
	}

	return &MultipartSession{UploadID: uploadID, Parts: parts}, nil
}

// CompleteMultipart assemble les parts (triées par numéro) en un objet
func (g *MinioGateway) CompleteMultipart(ctx context.Context, key, uploadID string, parts []models.CompletedPart) (string, error) {
	sorted, err := SortedParts(parts)
	if err != nil {
		return "", err
	}

	completed := make([]minio.CompletePart, len(sorted))
	for i, p := range sorted {
		completed[i] = minio.CompletePart{PartNumber: int(p.PartNumber), ETag: p.ETag}
	}

	if _, err := g.client.CompleteMultipartUpload(ctx, g.cfg.Bucket, key, uploadID, completed, minio.PutObjectOptions{}); err != nil {
		return "", storageError("finalisation multipart", err)
	}
	return key, nil
}

// AbortMultipart abandonne la session et les parts déjà envoyées
func (g *MinioGateway) AbortMultipart(ctx context.Context, key, uploadID string) error {
	if err := g.client.AbortMultipartUpload(ctx, g.cfg.Bucket, key, uploadID); err != nil {
		return storageError("abandon multipart", err)
	}
	return nil
}

// DeleteObject supprime définitivement un objet
func (g *MinioGateway) DeleteObject(ctx context.Context, key string) error {
	if err := g.client.RemoveObject(ctx, g.cfg.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return storageError("suppression", err)
	}
	return nil
}

// ResolveURL construit l'URL publique sans appel réseau
func (g *MinioGateway) ResolveURL(key string) string {
	return publicURL(g.cfg.PublicBaseURL, g.cfg.Bucket, g.cfg.Region, key)
}
