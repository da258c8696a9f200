package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slugify derives a URL-safe slug from title: diacritics are stripped, letters are lower-cased and every run of
// other characters becomes a single hyphen. The result is empty when title has no ASCII letters or digits.
func Slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range norm.NFD.String(title) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
