package domain

import "context"

// SeedEvent is one entry of a seed catalogue.
type SeedEvent struct {
	EventFields `yaml:",inline"`
	Image       string   `yaml:"image"`
	Agenda      []string `yaml:"agenda"`
	Tags        []string `yaml:"tags"`
}

// SeedService replaces the stored catalogue with a fixed list of events.
type SeedService interface {
	// Seed removes all bookings and events, then inserts events in order. Returns the stored events.
	Seed(ctx context.Context, events []SeedEvent) ([]*Event, error)
}

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
