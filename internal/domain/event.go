package domain

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// List bounds for event listings.
const (
	DefaultListLimit = 20
	MaxListLimit     = 20
)

// slugRegex matches lowercase, hyphen-delimited slugs.
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidSlug reports whether s is a well-formed event slug.
func ValidSlug(s string) bool {
	return slugRegex.MatchString(s)
}

// Event represents a listed event.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventFields are the free-text scalar fields supplied when creating an event.
type EventFields struct {
	Title       string `json:"title" yaml:"title" validate:"required,max=100"`
	Description string `json:"description" yaml:"description" validate:"required,max=1000"`
	Overview    string `json:"overview" yaml:"overview" validate:"required,max=500"`
	Venue       string `json:"venue" yaml:"venue" validate:"required"`
	Location    string `json:"location" yaml:"location" validate:"required"`
	Date        string `json:"date" yaml:"date" validate:"required"`
	Time        string `json:"time" yaml:"time" validate:"required"`
	Mode        string `json:"mode" yaml:"mode" validate:"required"`
	Audience    string `json:"audience" yaml:"audience" validate:"required"`
	Organizer   string `json:"organizer" yaml:"organizer" validate:"required"`
}

var fieldValidator = newFieldValidator()

func newFieldValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalized returns a copy of f with surrounding whitespace removed from every field.
func (f EventFields) Normalized() EventFields {
	return EventFields{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Overview:    strings.TrimSpace(f.Overview),
		Venue:       strings.TrimSpace(f.Venue),
		Location:    strings.TrimSpace(f.Location),
		Date:        strings.TrimSpace(f.Date),
		Time:        strings.TrimSpace(f.Time),
		Mode:        strings.TrimSpace(f.Mode),
		Audience:    strings.TrimSpace(f.Audience),
		Organizer:   strings.TrimSpace(f.Organizer),
	}
}

// Validate checks required fields and length limits. It returns a *ValidationError for the first failing field.
func (f EventFields) Validate() error {
	err := fieldValidator.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return Invalid("", "invalid event fields: %v", err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return Invalid(fe.Field(), "%s is required", fe.Field())
	case "max":
		return Invalid(fe.Field(), "%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return Invalid(fe.Field(), "%s is invalid", fe.Field())
	}
}

// NewEvent returns a new Event built from the given fields. ID and Slug are set by the caller or repository.
func NewEvent(fields EventFields, tags, agenda []string, image string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       fields.Title,
		Description: fields.Description,
		Overview:    fields.Overview,
		Image:       image,
		Venue:       fields.Venue,
		Location:    fields.Location,
		Date:        fields.Date,
		Time:        fields.Time,
		Mode:        fields.Mode,
		Audience:    fields.Audience,
		Agenda:      agenda,
		Organizer:   fields.Organizer,
		Tags:        tags,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// CreateEventParams is the raw input for creating an event, as received from a multipart form.
// Tags and Agenda hold JSON-encoded string arrays.
type CreateEventParams struct {
	EventFields
	Tags   string
	Agenda string
	Image  *ImageFile
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	// Create stores the event and sets its ID. Returns ErrSlugTaken when the slug is already used.
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	// ListRecent returns at most limit events ordered by creation time, newest first.
	ListRecent(ctx context.Context, limit int) ([]*Event, error)
	// ListByTags returns events sharing at least one of tags, excluding the event with excludeID.
	ListByTags(ctx context.Context, tags []string, excludeID string) ([]*Event, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// EventService defines the business logic for events.
type EventService interface {
	CreateEvent(ctx context.Context, params *CreateEventParams) (*Event, error)
	ListEvents(ctx context.Context, limit int) ([]*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	GetSimilarEvents(ctx context.Context, slug string) ([]*Event, error)
	// DeleteEvent removes the event and all of its bookings. Returns the number of bookings removed.
	DeleteEvent(ctx context.Context, slug string) (int64, error)
}
