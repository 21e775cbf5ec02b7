package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ArchiveService stores uploaded source documents in the S3-compatible
// bucket before extraction. Callers treat failures as non-fatal.
type ArchiveService struct {
	s3Client *s3.Client
	bucket   string
	logger   zerolog.Logger
}

// NewArchiveService creates an ArchiveService for the given bucket.
func NewArchiveService(s3Client *s3.Client, bucket string, logger zerolog.Logger) *ArchiveService {
	return &ArchiveService{
		s3Client: s3Client,
		bucket:   bucket,
		logger:   logger.With().Str("service", "ArchiveService").Logger(),
	}
}

// Store writes the file under uploads/{user}/{id}-{filename}. Anonymous
// sessions archive under "anonymous".
func (s *ArchiveService) Store(ctx context.Context, userID, filename string, data []byte) error {
	owner := userID
	if owner == "" {
		owner = "anonymous"
	}
	key := fmt.Sprintf("uploads/%s/%s-%s", owner, uuid.NewString(), filename)

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("archiving %s: %w", filename, err)
	}
	s.logger.Debug().Str("key", key).Int("bytes", len(data)).Time("at", time.Now()).Msg("Archived upload")
	return nil
}
