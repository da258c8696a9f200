// Package cli implements the eventbooking command line.
package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"eventbooking/config"
	"eventbooking/internal/app"
)

// RootOptions holds the dependencies shared by every command.
type RootOptions struct {
	Logger *slog.Logger

	// LoadConfig and NewContainer may be replaced in tests.
	LoadConfig   func() (*config.Config, error)
	NewContainer func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.Container, error)
}

// NewRootCommand creates the root command for the eventbooking CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{
		Logger:       config.NewLogger(),
		LoadConfig:   config.Load,
		NewContainer: app.New,
	})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eventbooking",
		Short: "Event discovery and booking backend",
		Long: `eventbooking serves the events and bookings HTTP API and provides
administrative commands for the backing store.

Configuration is read from the environment (and .env outside production).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewEventsCommand(opts))

	return cmd
}

// container loads configuration and builds the application container.
func (o *RootOptions) container(ctx context.Context) (*app.Container, error) {
	cfg, err := o.LoadConfig()
	if err != nil {
		return nil, err
	}
	return o.NewContainer(ctx, cfg, o.Logger)
}

// closeContainer releases the container, logging any failure.
func (o *RootOptions) closeContainer(c *app.Container) {
	if err := c.Close(context.Background()); err != nil {
		o.Logger.Error("error closing store", "error", err)
	}
}
