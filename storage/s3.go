package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"events-cms-backend/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config décrit le bucket et l'accès S3
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint remplace l'endpoint AWS (MinIO, stockage compatible S3)
	Endpoint      string
	PublicBaseURL string
	PresignExpiry time.Duration
}

// s3API est le sous-ensemble du client S3 utilisé par la passerelle
type s3API interface {
	CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error)
	CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error)
	AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// presignAPI est le sous-ensemble du client de présignature utilisé
type presignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignUploadPart(ctx context.Context, params *s3.UploadPartInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Gateway implémente Gateway avec aws-sdk-go-v2
type S3Gateway struct {
	client    s3API
	presigner presignAPI
	cfg       S3Config
}

// NewS3Gateway crée la passerelle S3. Sans clés statiques, la chaîne
// d'identifiants par défaut du SDK est utilisée (rôle IAM, profil...).
func NewS3Gateway(ctx context.Context, cfg S3Config) (*S3Gateway, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("AWS_BUCKET_NAME est requis")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("erreur lors du chargement de la configuration AWS: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Gateway(client, s3.NewPresignClient(client), cfg), nil
}

func newS3Gateway(client s3API, presigner presignAPI, cfg S3Config) *S3Gateway {
	if cfg.PresignExpiry <= 0 {
		cfg.PresignExpiry = DefaultPresignExpiry
	}
	return &S3Gateway{client: client, presigner: presigner, cfg: cfg}
}

// IssueSingleURL présigne un PUT direct vers la clé
func (g *S3Gateway) IssueSingleURL(ctx context.Context, key, contentType string) (string, error) {
	req, err := g.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(g.cfg.PresignExpiry))
	if err != nil {
		return "", storageError("présignature PUT", err)
	}
	return req.URL, nil
}

// IssueMultipartURLs ouvre une session multipart et présigne les parts 1..partCount
func (g *S3Gateway) IssueMultipartURLs(ctx context.Context, key, contentType string, partCount int) (*MultipartSession, error) {
	if partCount < 1 {
		return nil, fmt.Errorf("%w: nombre de parts %d", ErrInvalidParts, partCount)
	}

	created, err := g.client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket:      aws.String(g.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, storageError("ouverture multipart", err)
	}
	uploadID := aws.ToString(created.UploadId)

	parts := make([]models.PartURL, 0, partCount)
	for n := 1; n <= partCount; n++ {
		req, err := g.presigner.PresignUploadPart(ctx, &s3.UploadPartInput{
			Bucket:     aws.String(g.cfg.Bucket),
			Key:        aws.String(key),
			UploadId:   aws.String(uploadID),
			PartNumber: aws.Int32(int32(n)),
		}, s3.WithPresignExpires(g.cfg.PresignExpiry))
		if err != nil {
			// La session vient d'être ouverte : on la referme au mieux
			if abortErr := g.AbortMultipart(ctx, key, uploadID); abortErr != nil {
				log.Printf("⚠️  Abandon de la session %s impossible: %v", uploadID, abortErr)
			}
			return nil, storageError(fmt.Sprintf("présignature de la part %d", n), err)
		}
		parts = append(parts, models.PartURL{PartNumber: int32(n), URL: req.URL})
	}

	return &MultipartSession{UploadID: uploadID, Parts: parts}, nil
}

// CompleteMultipart assemble les parts (triées par numéro) en un objet
func (g *S3Gateway) CompleteMultipart(ctx context.Context, key, uploadID string, parts []models.CompletedPart) (string, error) {
	sorted, err := SortedParts(parts)
	if err != nil {
		return "", err
	}

	completed := make([]types.CompletedPart, len(sorted))
	for i, p := range sorted {
		completed[i] = types.CompletedPart{
			ETag:       aws.String(p.ETag),
			PartNumber: aws.Int32(p.PartNumber),
		}
	}

	_, err = g.client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:   aws.String(g.cfg.Bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
		MultipartUpload: &types.CompletedMultipartUpload{
			Parts: completed,
		},
	})
	if err != nil {
		return "", storageError("finalisation multipart", err)
	}
	return key, nil
}

// AbortMultipart abandonne la session et les parts déjà envoyées
func (g *S3Gateway) AbortMultipart(ctx context.Context, key, uploadID string) error {
	_, err := g.client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(g.cfg.Bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
	})
	if err != nil {
		return storageError("abandon multipart", err)
	}
	return nil
}

// DeleteObject supprime définitivement un objet
func (g *S3Gateway) DeleteObject(ctx context.Context, key string) error {
	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return storageError("suppression", err)
	}
	return nil
}

// ResolveURL construit l'URL publique sans appel réseau
func (g *S3Gateway) ResolveURL(key string) string {
	return publicURL(g.cfg.PublicBaseURL, g.cfg.Bucket, g.cfg.Region, key)
}
