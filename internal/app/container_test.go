package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventbooking/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Environment:    "test",
		StoreDriver:    config.DriverMongo,
		MongoURI:       "mongodb://127.0.0.1:1",
		MongoDatabase:  "eventbooking_test",
		RequestTimeout: time.Second,
		AllowedOrigins: []string{"*"},
		Upload:         config.UploadConfig{Provider: "local", Dir: t.TempDir(), BaseURL: "/uploads"},
		Mail:           config.MailConfig{Provider: "noop", FromAddress: "no-reply@example.com"},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_MongoIsLazy(t *testing.T) {
	c, err := New(t.Context(), testConfig(t), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(context.Background()) })

	assert.NotNil(t, c.Events)
	assert.NotNil(t, c.Bookings)
	assert.NotNil(t, c.Seeder)
	assert.NotNil(t, c.Health)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "unknown driver", mutate: func(c *config.Config) { c.StoreDriver = "sqlite" }, wantErr: "unsupported store driver"},
		{name: "s3 without bucket", mutate: func(c *config.Config) { c.Upload.Provider = "s3" }, wantErr: "image storage"},
		{name: "resend without key", mutate: func(c *config.Config) { c.Mail.Provider = "resend" }, wantErr: "mailer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)
			_, err := New(t.Context(), cfg, discardLogger())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestContainer_MigrateAndClose(t *testing.T) {
	var order []string
	c := &Container{
		Config: testConfig(t),
		Migrator: func(context.Context) error {
			return errors.New("no primary")
		},
		closers: []func(context.Context) error{
			func(context.Context) error { order = append(order, "first"); return nil },
			func(context.Context) error { order = append(order, "second"); return errors.New("close failed") },
		},
	}

	err := c.Migrate(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate mongo store")

	err = c.Close(t.Context())
	assert.ErrorContains(t, err, "close failed")
	assert.Equal(t, []string{"second", "first"}, order)
	assert.NoError(t, c.Close(t.Context()))
}
