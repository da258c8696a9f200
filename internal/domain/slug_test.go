package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Anime Expo 2024", "anime-expo-2024"},
		{"punctuation collapses", "Otakon -- Convention!!", "otakon-convention"},
		{"leading and trailing junk", "  ...Sakura Matsuri...  ", "sakura-matsuri"},
		{"diacritics stripped", "Café Noël Fête", "cafe-noel-fete"},
		{"apostrophe", "Crunchyroll's Expo", "crunchyroll-s-expo"},
		{"no ascii", "東京", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.title)
			require.Equal(t, tt.want, got)
			if got != "" {
				require.True(t, ValidSlug(got), "slug %q must satisfy the slug format", got)
			}
		})
	}
}

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"anime-expo-2024", true},
		{"a", true},
		{"123", true},
		{"", false},
		{"Anime-Expo", false},
		{"anime--expo", false},
		{"-anime", false},
		{"anime-", false},
		{"anime_expo", false},
		{"anime expo", false},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			require.Equal(t, tt.want, ValidSlug(tt.slug))
		})
	}
}
