package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"rite-api/core/config"
	"rite-api/core/constants"
	"rite-api/core/logger"
)

// UploadTicket is a presigned PUT the client uploads a promo file against.
// Only the Key comes back to us later, inside the submission payload.
type UploadTicket struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Storage interface {
	GenerateUploadTicket(ctx context.Context, filename, mimeType string) (*UploadTicket, error)
}

type s3Storage struct {
	presign *s3.PresignClient
	bucket  string
}

func NewStorage(ctx context.Context, cfg config.S3Config) (Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("Blob storage ready", "bucket", cfg.Bucket)
	return &s3Storage{presign: s3.NewPresignClient(client), bucket: cfg.Bucket}, nil
}

func (s *s3Storage) GenerateUploadTicket(ctx context.Context, filename, mimeType string) (*UploadTicket, error) {
	key := storageKey(filename)

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(mimeType),
	}, s3.WithPresignExpires(constants.UploadTicketTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &UploadTicket{
		Key:       key,
		URL:       req.URL,
		ExpiresAt: time.Now().Add(constants.UploadTicketTTL),
	}, nil
}

func storageKey(filename string) string {
	d := time.Now()
	return fmt.Sprintf("uploads/%d/%02d/%02d/%s%s",
		d.Year(), d.Month(), d.Day(), uuid.New(), filepath.Ext(filename))
}
