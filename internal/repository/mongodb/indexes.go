package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the collection indexes. Creating an index that already exists is a no-op.
func EnsureIndexes(ctx context.Context, db DatabaseProvider) error {
	database, err := db.Database(ctx)
	if err != nil {
		return err
	}

	events := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("slug_unique")},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("createdAt_desc")},
		{Keys: bson.D{{Key: "tags", Value: 1}}, Options: options.Index().SetName("tags")},
	}
	if _, err := database.Collection(eventsCollection).Indexes().CreateMany(ctx, events); err != nil {
		return fmt.Errorf("create event indexes: %w", err)
	}

	// (eventId, email) stays non-unique; repeat bookings are a service-level setting.
	bookings := []mongo.IndexModel{
		{Keys: bson.D{{Key: "eventId", Value: 1}}, Options: options.Index().SetName("eventId")},
		{Keys: bson.D{{Key: "eventId", Value: 1}, {Key: "email", Value: 1}}, Options: options.Index().SetName("eventId_email")},
	}
	if _, err := database.Collection(bookingsCollection).Indexes().CreateMany(ctx, bookings); err != nil {
		return fmt.Errorf("create booking indexes: %w", err)
	}
	return nil
}
