package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"eventbooking/internal/adapters/awsconfig"
	"eventbooking/internal/domain"
)

// Config selects and configures the image store.
type Config struct {
	Provider string // "s3" or "local"

	// local
	Dir     string
	BaseURL string

	// s3
	Bucket          string
	Region          string
	PublicBaseURL   string
	AccessKeyID     string
	SecretAccessKey string
}

// NewImageStorage builds the ImageStorage named by cfg.Provider. Without static keys the S3 client uses the
// SDK default credential chain.
func NewImageStorage(ctx context.Context, cfg Config, logger *slog.Logger) (domain.ImageStorage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Provider {
	case "s3":
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("s3 image storage requires a bucket")
		}
		awsCfg, err := awsconfig.Load(ctx, awsconfig.Options{
			Region:          cfg.Region,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
		return NewS3Storage(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Region, cfg.PublicBaseURL, logger), nil
	case "local", "":
		return NewLocalStorage(cfg.Dir, cfg.BaseURL, logger)
	default:
		return nil, fmt.Errorf("unknown upload provider %q", cfg.Provider)
	}
}
