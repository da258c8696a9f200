package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventbooking/internal/domain"
)

const (
	eventsCollection   = "events"
	bookingsCollection = "bookings"
)

type eventDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description"`
	Overview    string             `bson:"overview"`
	Image       string             `bson:"image"`
	Venue       string             `bson:"venue"`
	Location    string             `bson:"location"`
	Date        string             `bson:"date"`
	Time        string             `bson:"time"`
	Mode        string             `bson:"mode"`
	Audience    string             `bson:"audience"`
	Agenda      []string           `bson:"agenda"`
	Organizer   string             `bson:"organizer"`
	Tags        []string           `bson:"tags"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func newEventDocument(e *domain.Event) *eventDocument {
	return &eventDocument{
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    e.Location,
		Date:        e.Date,
		Time:        e.Time,
		Mode:        e.Mode,
		Audience:    e.Audience,
		Agenda:      e.Agenda,
		Organizer:   e.Organizer,
		Tags:        e.Tags,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (d *eventDocument) toDomain() *domain.Event {
	agenda, tags := d.Agenda, d.Tags
	if agenda == nil {
		agenda = []string{}
	}
	if tags == nil {
		tags = []string{}
	}
	return &domain.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Slug:        d.Slug,
		Description: d.Description,
		Overview:    d.Overview,
		Image:       d.Image,
		Venue:       d.Venue,
		Location:    d.Location,
		Date:        d.Date,
		Time:        d.Time,
		Mode:        d.Mode,
		Audience:    d.Audience,
		Agenda:      agenda,
		Organizer:   d.Organizer,
		Tags:        tags,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type bookingDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	EventID   primitive.ObjectID `bson:"eventId"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}
