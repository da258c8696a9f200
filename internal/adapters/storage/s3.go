package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"eventbooking/internal/domain"
)

const s3KeyPrefix = "events"

type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage stores event images in an S3 bucket.
type S3Storage struct {
	client  objectAPI
	bucket  string
	baseURL string
	logger  *slog.Logger
}

// NewS3Storage returns an S3-backed ImageStorage. When publicBaseURL is empty, object URLs use the
// bucket's virtual-hosted endpoint.
func NewS3Storage(client objectAPI, bucket, region, publicBaseURL string, logger *slog.Logger) *S3Storage {
	base := strings.TrimRight(publicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3Storage{client: client, bucket: bucket, baseURL: base, logger: logger}
}

var _ domain.ImageStorage = (*S3Storage)(nil)

func (s *S3Storage) Upload(ctx context.Context, name, contentType string, data []byte) (*domain.StoredImage, error) {
	key := path.Join(s3KeyPrefix, uuid.NewString()+"-"+path.Base(name))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}
	s.logger.InfoContext(ctx, "image uploaded", "bucket", s.bucket, "key", key, "bytes", len(data))
	return &domain.StoredImage{Key: key, URL: s.baseURL + "/" + key}, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}
