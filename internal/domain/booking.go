package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// emailRegex matches local@domain with at least one dot in the domain and no whitespace.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Booking represents an email address booked onto an event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking creates a new Booking. ID is typically set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// NormalizeEmail trims and lower-cases email and checks its format.
func NormalizeEmail(email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return "", Invalid("email", "email is required")
	}
	if !emailRegex.MatchString(e) {
		return "", Invalid("email", "please provide a valid email address")
	}
	return e, nil
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	// CountByEventID returns 0 for unknown or malformed event IDs.
	CountByEventID(ctx context.Context, eventID string) (int64, error)
	ExistsForEmail(ctx context.Context, eventID, email string) (bool, error)
	DeleteByEventID(ctx context.Context, eventID string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// BookingService defines booking operations used by the web layer.
type BookingService interface {
	CreateBooking(ctx context.Context, eventID, email string) (*Booking, error)
	CountBookingsForEvent(ctx context.Context, eventID string) (int64, error)
}
