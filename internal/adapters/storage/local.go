package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"eventbooking/internal/domain"
)

// LocalStorage writes event images to a directory served under BaseURL.
type LocalStorage struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

// NewLocalStorage creates dir if needed.
func NewLocalStorage(dir, baseURL string, logger *slog.Logger) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("local image storage requires a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), logger: logger}, nil
}

var _ domain.ImageStorage = (*LocalStorage)(nil)

func (l *LocalStorage) Upload(ctx context.Context, name, contentType string, data []byte) (*domain.StoredImage, error) {
	key := uuid.NewString() + "-" + filepath.Base(name)
	if err := os.WriteFile(filepath.Join(l.dir, key), data, 0o644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}
	l.logger.InfoContext(ctx, "image stored", "key", key, "bytes", len(data))
	return &domain.StoredImage{Key: key, URL: l.baseURL + "/" + key}, nil
}

func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(l.dir, filepath.Base(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
