// Package queue defines the listing events exchanged over the message
// broker, the publisher used by request handlers and the background
// consumer that records them in the activity log.
package queue

import "time"

// Listing event types.
const (
	VenueCreated  = "venue.created"
	VenueUpdated  = "venue.updated"
	VenueDeleted  = "venue.deleted"
	ArtistCreated = "artist.created"
	ArtistUpdated = "artist.updated"
	ArtistDeleted = "artist.deleted"
	ShowCreated   = "show.created"
)

// ListingEvent is published after a directory write commits.  It carries
// enough for consumers to log or notify without querying the database.
type ListingEvent struct {
	Type       string    `json:"type"`
	EntityID   uint64    `json:"entity_id"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewListingEvent stamps an event with the given time in UTC.
func NewListingEvent(typ string, id uint64, name string, at time.Time) ListingEvent {
	return ListingEvent{Type: typ, EntityID: id, Name: name, OccurredAt: at.UTC()}
}
