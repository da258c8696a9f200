// Package app wires configuration into repositories, services and the HTTP handler.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"eventbooking/config"
	"eventbooking/internal/adapters/email"
	"eventbooking/internal/adapters/storage"
	deliveryhttp "eventbooking/internal/delivery/http"
	"eventbooking/internal/delivery/http/controllers"
	"eventbooking/internal/domain"
	"eventbooking/internal/repository/mongodb"
	"eventbooking/internal/repository/postgres"
	"eventbooking/internal/services"
)

// Container holds the application's long-lived dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	Events   domain.EventService
	Bookings domain.BookingService
	Seeder   domain.SeedService
	Health   domain.HealthChecker

	// Migrator creates the indexes or schema of the configured store.
	Migrator func(ctx context.Context) error

	closers []func(ctx context.Context) error
}

// New builds a Container for cfg. The Mongo store dials lazily; the Postgres store is opened and pinged here.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{Config: cfg, Logger: logger}

	var (
		eventRepo   domain.EventRepository
		bookingRepo domain.BookingRepository
	)
	switch cfg.StoreDriver {
	case config.DriverMongo:
		connector := mongodb.NewConnector(cfg.MongoURI, cfg.MongoDatabase, cfg.RequestTimeout, logger)
		eventRepo = mongodb.NewEventRepository(connector)
		bookingRepo = mongodb.NewBookingRepository(connector)
		c.Health = connector
		c.Migrator = func(ctx context.Context) error { return mongodb.EnsureIndexes(ctx, connector) }
		c.closers = append(c.closers, connector.Close)
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		eventRepo = postgres.NewEventRepository(db)
		bookingRepo = postgres.NewBookingRepository(db)
		c.Health = postgres.HealthChecker{DB: db}
		c.Migrator = func(ctx context.Context) error { return postgres.Migrate(ctx, db) }
		c.closers = append(c.closers, closeDB(db))
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	images, err := storage.NewImageStorage(ctx, storage.Config{
		Provider:        cfg.Upload.Provider,
		Dir:             cfg.Upload.Dir,
		BaseURL:         cfg.Upload.BaseURL,
		Bucket:          cfg.Upload.S3Bucket,
		Region:          cfg.Upload.S3Region,
		PublicBaseURL:   cfg.Upload.S3PublicBaseURL,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	}, logger)
	if err != nil {
		c.Close(ctx)
		return nil, fmt.Errorf("image storage: %w", err)
	}

	mailer, err := email.NewMailer(ctx, email.MailerConfig{
		Provider:     cfg.Mail.Provider,
		FromAddress:  cfg.Mail.FromAddress,
		FromName:     cfg.Mail.FromName,
		ResendAPIKey: cfg.Mail.ResendAPIKey,
		SES: email.SESConfig{
			Region:             cfg.Mail.SESRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		c.Close(ctx)
		return nil, fmt.Errorf("mailer: %w", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	c.Events = services.NewEventService(eventRepo, bookingRepo, images, logger, cfg.RequestTimeout)
	c.Bookings = services.NewBookingService(eventRepo, bookingRepo, emailService, logger, services.BookingOptions{
		UniqueEmail: cfg.BookingUniqueEmail,
		Timeout:     cfg.RequestTimeout,
	})
	c.Seeder = services.NewSeedService(eventRepo, bookingRepo, logger)
	return c, nil
}

// Handler returns the HTTP handler serving the public API.
func (c *Container) Handler() http.Handler {
	var uploadsDir string
	if c.Config.Upload.Provider == "local" {
		uploadsDir = c.Config.Upload.Dir
	}
	return deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Logger:         c.Logger,
		Events:         controllers.NewEventController(c.Logger, c.Events),
		Bookings:       controllers.NewBookingController(c.Logger, c.Bookings),
		Health:         controllers.NewHealthController(c.Logger, c.Health),
		AllowedOrigins: c.Config.AllowedOrigins,
		UploadsDir:     uploadsDir,
	})
}

// Migrate creates the indexes or schema for the configured store.
func (c *Container) Migrate(ctx context.Context) error {
	if c.Migrator == nil {
		return fmt.Errorf("no store configured")
	}
	if err := c.Migrator(ctx); err != nil {
		return fmt.Errorf("migrate %s store: %w", c.Config.StoreDriver, err)
	}
	return nil
}

// Close releases store connections in reverse order of acquisition.
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i](ctx))
	}
	c.closers = nil
	return errors.Join(errs...)
}

func closeDB(db *sql.DB) func(context.Context) error {
	return func(context.Context) error { return db.Close() }
}
