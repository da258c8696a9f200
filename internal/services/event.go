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

// maxSlugAttempts bounds the numeric suffixes tried when a derived slug is already taken.
const maxSlugAttempts = 50

type eventService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	images         domain.ImageStorage
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

func NewEventService(eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	images domain.ImageStorage,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		images:         images,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, params *domain.CreateEventParams) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if params == nil {
		return nil, domain.Invalid("", "event data is required")
	}
	fields := params.EventFields.Normalized()
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	mt, err := validateImage(params.Image)
	if err != nil {
		return nil, err
	}
	tags, agenda, err := parseTagsAndAgenda(params.Tags, params.Agenda)
	if err != nil {
		return nil, err
	}
	base := domain.Slugify(fields.Title)
	if base == "" {
		return nil, domain.Invalid("title", "title must contain at least one letter or digit")
	}
	slug, err := s.uniqueSlug(ctx, base)
	if err != nil {
		return nil, err
	}

	stored, err := s.images.Upload(ctx, imageObjectName(slug, mt), mt.String(), params.Image.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: upload image: %w", domain.ErrUpstream, err)
	}

	now := s.now().UTC()
	event := domain.NewEvent(fields, tags, agenda, stored.URL, now, now)
	event.Slug = slug
	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.discardImage(stored.Key)
		if errors.Is(err, domain.ErrSlugTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: create event: %w", domain.ErrUpstream, err)
	}
	return event, nil
}

// uniqueSlug returns base, or base with the lowest free numeric suffix.
func (s *eventService) uniqueSlug(ctx context.Context, base string) (string, error) {
	for i := 1; i <= maxSlugAttempts; i++ {
		candidate := base
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		_, err := s.eventRepo.GetBySlug(ctx, candidate)
		if errors.Is(err, domain.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: check slug: %w", domain.ErrUpstream, err)
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrSlugTaken, base)
}

// discardImage removes an uploaded image whose event could not be stored.
func (s *eventService) discardImage(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.contextTimeout)
	defer cancel()
	if err := s.images.Delete(ctx, key); err != nil {
		s.logger.Warn("discard uploaded image", "key", key, "err", err)
	}
}

func (s *eventService) ListEvents(ctx context.Context, limit int) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if limit <= 0 || limit > domain.MaxListLimit {
		limit = domain.DefaultListLimit
	}
	events, err := s.eventRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list events: %w", domain.ErrUpstream, err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := checkSlug(slug); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: event with slug '%s' not found", domain.ErrNotFound, slug)
		}
		return nil, fmt.Errorf("%w: get event: %w", domain.ErrUpstream, err)
	}
	return event, nil
}

func (s *eventService) GetSimilarEvents(ctx context.Context, slug string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := checkSlug(slug); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []*domain.Event{}, nil
		}
		return nil, fmt.Errorf("%w: get event: %w", domain.ErrUpstream, err)
	}
	if len(event.Tags) == 0 {
		return []*domain.Event{}, nil
	}
	similar, err := s.eventRepo.ListByTags(ctx, event.Tags, event.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: list similar events: %w", domain.ErrUpstream, err)
	}
	out := make([]*domain.Event, 0, len(similar))
	for _, e := range similar {
		if e.ID != event.ID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, slug string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.GetEventBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	// Cascade: bookings first, then the event.
	removed, err := s.bookingRepo.DeleteByEventID(ctx, event.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: delete bookings: %w", domain.ErrUpstream, err)
	}
	if err := s.eventRepo.Delete(ctx, event.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return removed, domain.ErrNotFound
		}
		return removed, fmt.Errorf("%w: delete event: %w", domain.ErrUpstream, err)
	}
	return removed, nil
}

func checkSlug(slug string) error {
	if strings.TrimSpace(slug) == "" {
		return domain.Invalid("slug", "slug parameter is required")
	}
	if !domain.ValidSlug(slug) {
		return domain.Invalid("slug", "invalid slug format. Slug must contain only lowercase letters, numbers, and hyphens")
	}
	return nil
}
