package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventbooking/internal/domain"
)

type seedService struct {
	eventRepo   domain.EventRepository
	bookingRepo domain.BookingRepository
	logger      *slog.Logger
	now         func() time.Time
}

// NewSeedService creates a SeedService over the given repositories.
func NewSeedService(eventRepo domain.EventRepository, bookingRepo domain.BookingRepository, logger *slog.Logger) domain.SeedService {
	if logger == nil {
		logger = slog.Default()
	}
	return &seedService{eventRepo: eventRepo, bookingRepo: bookingRepo, logger: logger, now: time.Now}
}

func (s *seedService) Seed(ctx context.Context, events []domain.SeedEvent) ([]*domain.Event, error) {
	// Validate everything up front so a bad catalogue leaves the store untouched.
	prepared := make([]*domain.Event, 0, len(events))
	slugs := make(map[string]int, len(events))
	for i, se := range events {
		fields := se.EventFields.Normalized()
		if err := fields.Validate(); err != nil {
			return nil, fmt.Errorf("seed event %d: %w", i, err)
		}
		tags := normalizeTags(se.Tags)
		if len(tags) == 0 {
			return nil, fmt.Errorf("seed event %d: %w", i, domain.Invalid("tags", "at least one tag is required"))
		}
		agenda := normalizeAgenda(se.Agenda)
		if len(agenda) == 0 {
			return nil, fmt.Errorf("seed event %d: %w", i, domain.Invalid("agenda", "at least one agenda item is required"))
		}
		base := domain.Slugify(fields.Title)
		if base == "" {
			return nil, fmt.Errorf("seed event %d: %w", i, domain.Invalid("title", "title must contain at least one letter or digit"))
		}
		slug := base
		if n := slugs[base]; n > 0 {
			slug = fmt.Sprintf("%s-%d", base, n+1)
		}
		slugs[base]++

		e := domain.NewEvent(fields, tags, agenda, se.Image, time.Time{}, time.Time{})
		e.Slug = slug
		prepared = append(prepared, e)
	}

	removedBookings, err := s.bookingRepo.DeleteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("delete bookings: %w", err)
	}
	removedEvents, err := s.eventRepo.DeleteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("delete events: %w", err)
	}
	s.logger.InfoContext(ctx, "cleared store", "bookings", removedBookings, "events", removedEvents)

	// Earlier catalogue entries get later timestamps so listings keep catalogue order.
	base := s.now().UTC()
	for i, e := range prepared {
		ts := base.Add(-time.Duration(i) * time.Second)
		e.CreatedAt, e.UpdatedAt = ts, ts
		if err := s.eventRepo.Create(ctx, e); err != nil {
			return nil, fmt.Errorf("create event %q: %w", e.Slug, err)
		}
	}
	s.logger.InfoContext(ctx, "seeded events", "count", len(prepared))
	return prepared, nil
}
