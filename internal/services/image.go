package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"eventbooking/internal/domain"
)

const invalidImageTypeMessage = "invalid file type. Only JPEG, PNG, WebP, and GIF are allowed"

// validateImage checks presence, size and type of img. The declared content type, when present, and the type
// sniffed from the bytes must both be allowed. Returns the sniffed MIME type.
func validateImage(img *domain.ImageFile) (*mimetype.MIME, error) {
	if img == nil || len(img.Data) == 0 {
		return nil, domain.Invalid("image", "image is required")
	}
	if img.Size > domain.MaxImageSize || len(img.Data) > domain.MaxImageSize {
		return nil, domain.Invalid("image", "file size exceeds %dMB limit", domain.MaxImageSize>>20)
	}
	if declared := baseMediaType(img.ContentType); declared != "" && !allowedImageType(declared) {
		return nil, domain.Invalid("image", invalidImageTypeMessage)
	}
	detected := mimetype.Detect(img.Data)
	for _, t := range domain.AllowedImageTypes {
		if detected.Is(t) {
			return detected, nil
		}
	}
	return nil, domain.Invalid("image", invalidImageTypeMessage)
}

func baseMediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

func allowedImageType(mt string) bool {
	for _, t := range domain.AllowedImageTypes {
		if mt == t {
			return true
		}
	}
	return false
}

// parseTagsAndAgenda decodes the JSON-encoded tags and agenda form values. Tags are lower-cased and de-duplicated;
// both lists drop blank entries and must end up non-empty.
func parseTagsAndAgenda(rawTags, rawAgenda string) (tags, agenda []string, err error) {
	var rt, ra []string
	if err := json.Unmarshal([]byte(rawTags), &rt); err != nil {
		return nil, nil, domain.Invalid("tags", "invalid tags or agenda format")
	}
	if err := json.Unmarshal([]byte(rawAgenda), &ra); err != nil {
		return nil, nil, domain.Invalid("agenda", "invalid tags or agenda format")
	}
	tags = normalizeTags(rt)
	if len(tags) == 0 {
		return nil, nil, domain.Invalid("tags", "at least one tag is required")
	}
	agenda = normalizeAgenda(ra)
	if len(agenda) == 0 {
		return nil, nil, domain.Invalid("agenda", "at least one agenda item is required")
	}
	return tags, agenda, nil
}

func normalizeTags(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func normalizeAgenda(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func imageObjectName(slug string, mt *mimetype.MIME) string {
	return fmt.Sprintf("%s%s", slug, mt.Extension())
}
