package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// staticDB serves a fixed database handle, typically the mock one from mtest.
type staticDB struct {
	db *mongo.Database
}

func (s staticDB) Database(ctx context.Context) (*mongo.Database, error) {
	return s.db, nil
}

var testCreated = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func eventDoc(id primitive.ObjectID, slug string, tags ...string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Anime Night"},
		{Key: "slug", Value: slug},
		{Key: "description", Value: "desc"},
		{Key: "overview", Value: "overview"},
		{Key: "image", Value: "https://cdn.test/a.png"},
		{Key: "venue", Value: "Hall"},
		{Key: "location", Value: "Tokyo"},
		{Key: "date", Value: "2026-03-27"},
		{Key: "time", Value: "10:00"},
		{Key: "mode", Value: "offline"},
		{Key: "audience", Value: "Fans"},
		{Key: "agenda", Value: bson.A{"Opening"}},
		{Key: "organizer", Value: "AJ"},
		{Key: "tags", Value: tags},
		{Key: "createdAt", Value: testCreated},
		{Key: "updatedAt", Value: testCreated},
	}
}
