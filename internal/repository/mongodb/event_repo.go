package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eventbooking/internal/domain"
)

type eventRepository struct {
	db DatabaseProvider
}

func NewEventRepository(db DatabaseProvider) domain.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(eventsCollection), nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	doc := newEventDocument(e)
	doc.ID = primitive.NewObjectID()
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugTaken
		}
		return err
	}
	e.ID = doc.ID.Hex()
	return nil
}

func (r *eventRepository) findOne(ctx context.Context, filter bson.D) (*domain.Event, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	var doc eventDocument
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	return r.findOne(ctx, bson.D{{Key: "slug", Value: slug}})
}

func (r *eventRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.D{}, opts)
}

func (r *eventRepository) ListByTags(ctx context.Context, tags []string, excludeID string) ([]*domain.Event, error) {
	if len(tags) == 0 {
		return []*domain.Event{}, nil
	}
	filter := bson.D{{Key: "tags", Value: bson.D{{Key: "$in", Value: tags}}}}
	if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		filter = append(filter, bson.E{Key: "_id", Value: bson.D{{Key: "$ne", Value: oid}}})
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, filter, opts)
}

func (r *eventRepository) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]*domain.Event, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []eventDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0, len(docs))
	for i := range docs {
		events = append(events, docs[i].toDomain())
	}
	return events, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) DeleteAll(ctx context.Context) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	res, err := coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
