package helpers

import (
	"net/http"
	"strconv"

	"eventbooking/internal/domain"
)

// ParseLimit reads the limit query parameter. Missing, malformed or out-of-range values fall back to
// domain.DefaultListLimit; values above domain.MaxListLimit are clamped.
func ParseLimit(r *http.Request) int {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return domain.DefaultListLimit
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return domain.DefaultListLimit
	}
	if v > domain.MaxListLimit {
		return domain.MaxListLimit
	}
	return v
}
