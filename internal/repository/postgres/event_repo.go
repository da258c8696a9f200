package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"eventbooking/internal/domain"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

const eventColumns = `id, title, slug, description, overview, image, venue, location, event_date, event_time,
		mode, audience, agenda, organizer, tags, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var agenda, tags pq.StringArray
	err := row.Scan(
		&e.ID, &e.Title, &e.Slug, &e.Description, &e.Overview, &e.Image, &e.Venue, &e.Location, &e.Date, &e.Time,
		&e.Mode, &e.Audience, &agenda, &e.Organizer, &tags, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Agenda = []string(agenda)
	e.Tags = []string(tags)
	return e, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// validID reports whether id can be compared against a uuid column without a cast error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, slug, description, overview, image, venue, location, event_date, event_time,
			mode, audience, agenda, organizer, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location, e.Date, e.Time,
		e.Mode, e.Audience, pq.Array(e.Agenda), e.Organizer, pq.Array(e.Tags), e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if isUniqueViolation(err) {
		return domain.ErrSlugTaken
	}
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *eventRepository) ListByTags(ctx context.Context, tags []string, excludeID string) ([]*domain.Event, error) {
	if len(tags) == 0 {
		return []*domain.Event{}, nil
	}
	if !validID(excludeID) {
		query := `SELECT ` + eventColumns + ` FROM events WHERE tags && $1 ORDER BY created_at DESC`
		return r.list(ctx, query, pq.Array(tags))
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id <> $1 AND tags && $2 ORDER BY created_at DESC`
	return r.list(ctx, query, excludeID, pq.Array(tags))
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
