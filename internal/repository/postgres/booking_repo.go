package postgres

import (
	"context"
	"database/sql"

	"eventbooking/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if !validID(b.EventID) {
		return domain.ErrReferentialIntegrity
	}
	query := `
		INSERT INTO bookings (event_id, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, b.EventID, b.Email, b.CreatedAt, b.UpdatedAt).
		Scan(&b.ID)
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID string) (int64, error) {
	if !validID(eventID) {
		return 0, nil
	}
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id = $1`, eventID).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *bookingRepository) ExistsForEmail(ctx context.Context, eventID, email string) (bool, error) {
	if !validID(eventID) {
		return false, nil
	}
	query := `SELECT EXISTS(SELECT 1 FROM bookings WHERE event_id = $1 AND email = $2)`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, eventID, email).Scan(&exists)
	return exists, err
}

func (r *bookingRepository) DeleteByEventID(ctx context.Context, eventID string) (int64, error) {
	if !validID(eventID) {
		return 0, nil
	}
	result, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE event_id = $1`, eventID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *bookingRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM bookings`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
