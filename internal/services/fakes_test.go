package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"eventbooking/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Event
	nextID    int
	createErr error
	getErr    error
	created   int
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
	for _, e := range events {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Slug == e.Slug {
			return domain.ErrSlugTaken
		}
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	f.created++
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, e := range f.byID {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}


func (f *fakeEventRepo) sorted() []*domain.Event {
	out := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeEventRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.sorted()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeEventRepo) ListByTags(ctx context.Context, tags []string, excludeID string) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	var out []*domain.Event
	for _, e := range f.sorted() {
		if e.ID == excludeID {
			continue
		}
		for _, t := range e.Tags {
			if want[t] {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) DeleteAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := int64(len(f.byID))
	f.byID = make(map[string]*domain.Event)
	return n, nil
}

// fakeBookingRepo is an in-memory BookingRepository for tests.
type fakeBookingRepo struct {
	mu        sync.Mutex
	bookings  []*domain.Booking
	nextID    int
	createErr error
	countErr  error
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	b.ID = fmt.Sprintf("bk-%d", f.nextID)
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeBookingRepo) CountByEventID(ctx context.Context, eventID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	var n int64
	for _, b := range f.bookings {
		if b.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) ExistsForEmail(ctx context.Context, eventID, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.EventID == eventID && b.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) DeleteByEventID(ctx context.Context, eventID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.bookings[:0]
	var n int64
	for _, b := range f.bookings {
		if b.EventID == eventID {
			n++
			continue
		}
		kept = append(kept, b)
	}
	f.bookings = kept
	return n, nil
}

func (f *fakeBookingRepo) DeleteAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := int64(len(f.bookings))
	f.bookings = nil
	return n, nil
}

// fakeImageStorage records uploads and deletions.
type fakeImageStorage struct {
	uploaded  map[string][]byte
	deleted   []string
	uploadErr error
}

func newFakeImageStorage() *fakeImageStorage {
	return &fakeImageStorage{uploaded: make(map[string][]byte)}
}

func (f *fakeImageStorage) Upload(ctx context.Context, name, contentType string, data []byte) (*domain.StoredImage, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploaded[name] = data
	return &domain.StoredImage{Key: name, URL: "https://cdn.test/" + name}, nil
}

func (f *fakeImageStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.uploaded, key)
	return nil
}

type fakeEmailService struct {
	sent []*domain.BookingConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
