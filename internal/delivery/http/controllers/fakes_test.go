package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createResult *domain.Event
	createErr    error
	lastCreate   *domain.CreateEventParams

	listResult []*domain.Event
	listErr    error
	lastLimit  int

	bySlug     map[string]*domain.Event
	getErr     error
	similar    []*domain.Event
	similarErr error
	lastSlug   string
}

func (f *fakeEventService) CreateEvent(ctx context.Context, params *domain.CreateEventParams) (*domain.Event, error) {
	f.lastCreate = params
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeEventService) ListEvents(ctx context.Context, limit int) ([]*domain.Event, error) {
	f.lastLimit = limit
	return f.listResult, f.listErr
}

func (f *fakeEventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	f.lastSlug = slug
	if f.getErr != nil {
		return nil, f.getErr
	}
	if e, ok := f.bySlug[slug]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) GetSimilarEvents(ctx context.Context, slug string) ([]*domain.Event, error) {
	f.lastSlug = slug
	return f.similar, f.similarErr
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, slug string) (int64, error) {
	return 0, nil
}

// fakeBookingService implements domain.BookingService for handler tests.
type fakeBookingService struct {
	createErr   error
	lastEventID string
	lastEmail   string
	count       int64
	countErr    error
}

func (f *fakeBookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	f.lastEventID, f.lastEmail = eventID, email
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Booking{ID: "bk-1", EventID: eventID, Email: email}, nil
}

func (f *fakeBookingService) CountBookingsForEvent(ctx context.Context, eventID string) (int64, error) {
	f.lastEventID = eventID
	return f.count, f.countErr
}

type fakeHealthChecker struct {
	err error
}

func (f fakeHealthChecker) Ping(ctx context.Context) error { return f.err }

// decodeEnvelope decodes the response envelope and unmarshals its data into dest when dest is non-nil.
func decodeEnvelope(t *testing.T, body io.Reader, dest any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(body).Decode(&envelope), "response must be valid JSON envelope")
	if dest != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, dest))
	}
	return envelope
}
