package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setBaseEnv isolates Load from the developer's shell and any .env file.
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, key := range []string{
		"PORT", "STORE_DRIVER", "MONGODB_URI", "MONGODB_DATABASE", "DATABASE_URL",
		"REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT", "BOOKING_UNIQUE_EMAIL", "CORS_ALLOWED_ORIGINS",
		"UPLOAD_PROVIDER", "UPLOAD_DIR", "UPLOAD_BASE_URL", "S3_BUCKET", "S3_REGION", "S3_PUBLIC_BASE_URL",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "MAIL_PROVIDER", "MAIL_FROM_ADDRESS", "MAIL_FROM_NAME",
		"RESEND_API_KEY", "SES_REGION", "SES_INSECURE_SKIP_VERIFY",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("GO_ENV", "test")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "eventbooking", cfg.MongoDatabase)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.BookingUniqueEmail)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "local", cfg.Upload.Provider)
	assert.Equal(t, "/uploads", cfg.Upload.BaseURL)
	assert.Equal(t, "noop", cfg.Mail.Provider)
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/events")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("BOOKING_UNIQUE_EMAIL", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("UPLOAD_PROVIDER", "s3")
	t.Setenv("S3_BUCKET", "event-images")
	t.Setenv("MAIL_PROVIDER", "resend")
	t.Setenv("RESEND_API_KEY", "re_123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "postgres://u:p@db:5432/events", cfg.DBUrl)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.BookingUniqueEmail)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "event-images", cfg.Upload.S3Bucket)
	assert.Equal(t, "re_123", cfg.Mail.ResendAPIKey)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "sqlite"}, wantErr: "STORE_DRIVER"},
		{name: "bad timeout", env: map[string]string{"REQUEST_TIMEOUT": "soon"}, wantErr: "REQUEST_TIMEOUT"},
		{name: "negative timeout", env: map[string]string{"REQUEST_TIMEOUT": "-1s"}, wantErr: "must be positive"},
		{name: "bad bool", env: map[string]string{"BOOKING_UNIQUE_EMAIL": "maybe"}, wantErr: "BOOKING_UNIQUE_EMAIL"},
		{name: "s3 without bucket", env: map[string]string{"UPLOAD_PROVIDER": "s3"}, wantErr: "S3_BUCKET"},
		{name: "unknown upload provider", env: map[string]string{"UPLOAD_PROVIDER": "ftp"}, wantErr: "UPLOAD_PROVIDER"},
		{name: "resend without key", env: map[string]string{"MAIL_PROVIDER": "resend"}, wantErr: "RESEND_API_KEY"},
		{name: "unknown mail provider", env: map[string]string{"MAIL_PROVIDER": "pigeon"}, wantErr: "MAIL_PROVIDER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "warn")
	logger.Info("dropped")
	logger.Warn("kept", "k", "v")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "v", entry["k"])

	buf.Reset()
	logger = newLogger(&buf, "development", "")
	logger.Debug("dropped")
	logger.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.True(t, logger.Enabled(t.Context(), slog.LevelInfo))
}
