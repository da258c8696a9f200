package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"lowercases and trims", "  Fan@Example.COM ", "fan@example.com", false},
		{"plain", "a@b.co", "a@b.co", false},
		{"empty", "   ", "", true},
		{"missing at", "fan.example.com", "", true},
		{"missing dot in domain", "fan@example", "", true},
		{"inner whitespace", "fan @example.com", "", true},
		{"two ats", "fan@@example.com", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeEmail(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrInvalidInput))
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				require.Equal(t, "email", verr.Field)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
