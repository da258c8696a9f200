package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "eventbooking/docs"
	"eventbooking/internal/delivery/http/controllers"
	"eventbooking/internal/delivery/http/middleware"
)

// RouterConfig holds the controllers and cross-cutting settings for NewRouter.
type RouterConfig struct {
	Logger         *slog.Logger
	Events         *controllers.EventController
	Bookings       *controllers.BookingController
	Health         *controllers.HealthController
	AllowedOrigins []string
	UploadsDir     string // served under /uploads/ when set
}

// NewRouter initializes the HTTP router with all application routes wrapped in the standard middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST /events", cfg.Events.CreateEvent)
	mux.HandleFunc("GET /events", cfg.Events.ListEvents)
	mux.HandleFunc("GET /events/{slug}", cfg.Events.GetEventBySlug)
	mux.HandleFunc("GET /events/{slug}/similar", cfg.Events.GetSimilarEvents)

	// Bookings
	mux.HandleFunc("POST /events/{eventID}/bookings", cfg.Bookings.CreateBooking)
	mux.HandleFunc("GET /events/{eventID}/bookings/count", cfg.Bookings.CountBookings)

	// Health
	mux.HandleFunc("GET /healthz", cfg.Health.Healthz)
	mux.HandleFunc("GET /readyz", cfg.Health.Readyz)

	if cfg.UploadsDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	handler = middleware.RequestID(handler)
	return handler
}
