package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eventbooking/internal/domain"
)

type bookingRepository struct {
	db DatabaseProvider
}

func NewBookingRepository(db DatabaseProvider) domain.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(bookingsCollection), nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	eventID, err := primitive.ObjectIDFromHex(b.EventID)
	if err != nil {
		return domain.ErrReferentialIntegrity
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	doc := &bookingDocument{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		Email:     b.Email,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateBooking
		}
		return err
	}
	b.ID = doc.ID.Hex()
	return nil
}

func (r *bookingRepository) count(ctx context.Context, filter bson.D, opts ...*options.CountOptions) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, filter, opts...)
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return 0, nil
	}
	return r.count(ctx, bson.D{{Key: "eventId", Value: oid}})
}

func (r *bookingRepository) ExistsForEmail(ctx context.Context, eventID, email string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return false, nil
	}
	n, err := r.count(ctx, bson.D{{Key: "eventId", Value: oid}, {Key: "email", Value: email}}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *bookingRepository) DeleteByEventID(ctx context.Context, eventID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return 0, nil
	}
	return r.deleteMany(ctx, bson.D{{Key: "eventId", Value: oid}})
}

func (r *bookingRepository) DeleteAll(ctx context.Context) (int64, error) {
	return r.deleteMany(ctx, bson.D{})
}

func (r *bookingRepository) deleteMany(ctx context.Context, filter bson.D) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	res, err := coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
