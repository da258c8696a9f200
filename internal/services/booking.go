package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventbooking/internal/domain"
)

type bookingService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	uniqueEmail    bool
	contextTimeout time.Duration
}

// BookingOptions tunes booking behaviour.
type BookingOptions struct {
	// UniqueEmail rejects a second booking for the same event and email with domain.ErrDuplicateBooking.
	UniqueEmail bool
	Timeout     time.Duration
}

// NewBookingService creates a BookingService. emailService may be nil, in which case no confirmation is sent.
func NewBookingService(
	eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	opts BookingOptions,
) domain.BookingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &bookingService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		emailService:   emailService,
		logger:         logger,
		uniqueEmail:    opts.UniqueEmail,
		contextTimeout: opts.Timeout,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, domain.Invalid("event_id", "event ID is required")
	}

	// The referenced event must exist before the booking is written.
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: event with ID %s does not exist", domain.ErrReferentialIntegrity, eventID)
		}
		return nil, fmt.Errorf("%w: get event: %w", domain.ErrUpstream, err)
	}

	if s.uniqueEmail {
		exists, err := s.bookingRepo.ExistsForEmail(ctx, event.ID, normalized)
		if err != nil {
			return nil, fmt.Errorf("%w: check existing booking: %w", domain.ErrUpstream, err)
		}
		if exists {
			return nil, domain.ErrDuplicateBooking
		}
	}

	now := time.Now().UTC()
	booking := domain.NewBooking(event.ID, normalized, now, now)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrDuplicateBooking) || errors.Is(err, domain.ErrReferentialIntegrity) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: create booking: %w", domain.ErrUpstream, err)
	}

	s.sendConfirmation(ctx, event, booking)
	return booking, nil
}

// sendConfirmation emails the booker. Failures are logged and never fail the booking.
func (s *bookingService) sendConfirmation(ctx context.Context, event *domain.Event, booking *domain.Booking) {
	if s.emailService == nil {
		return
	}
	err := s.emailService.SendBookingConfirmation(ctx, &domain.BookingConfirmationEmailData{
		Email:      booking.Email,
		EventTitle: event.Title,
		EventSlug:  event.Slug,
		Date:       event.Date,
		Time:       event.Time,
		Venue:      event.Venue,
		Location:   event.Location,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "booking confirmation not sent", "booking_id", booking.ID, "event_id", event.ID, "err", err)
	}
}

func (s *bookingService) CountBookingsForEvent(ctx context.Context, eventID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return 0, nil
	}
	n, err := s.bookingRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("%w: count bookings: %w", domain.ErrUpstream, err)
	}
	return n, nil
}
