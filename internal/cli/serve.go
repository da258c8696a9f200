package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr    string
	Migrate bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server and block until SIGINT or SIGTERM.

Indexes or schema are created before listening unless --migrate=false.
In-flight requests are given SHUTDOWN_TIMEOUT to complete.

Example:
  eventbooking serve
  eventbooking serve --addr :9000 --migrate=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default \":$PORT\")")
	cmd.Flags().BoolVar(&opts.Migrate, "migrate", true, "create indexes or schema before serving")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	c, err := opts.container(ctx)
	if err != nil {
		return err
	}
	defer opts.closeContainer(c)

	if opts.Migrate {
		if err := c.Migrate(ctx); err != nil {
			return err
		}
	}

	addr := opts.Addr
	if addr == "" {
		addr = ":" + c.Config.Port
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return serve(ctx, opts, ln, c.Handler(), c.Config.ShutdownTimeout)
}

// serve runs handler on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, opts *ServeOptions, ln net.Listener, handler http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		opts.Logger.Info("server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	opts.Logger.Info("shutting down server")
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	opts.Logger.Info("server stopped")
	return nil
}
