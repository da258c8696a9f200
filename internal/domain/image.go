package domain

import "context"

// MaxImageSize is the largest accepted event image, in bytes.
const MaxImageSize = 5 << 20

// AllowedImageTypes lists the accepted event image MIME types.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// ImageFile is an uploaded image held in memory.
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// StoredImage is the result of a successful upload.
type StoredImage struct {
	Key string
	URL string
}

// ImageStorage uploads event images to object storage (infrastructure port).
type ImageStorage interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (*StoredImage, error)
	Delete(ctx context.Context, key string) error
}
