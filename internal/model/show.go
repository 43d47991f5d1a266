package model

import "time"

// Show represents a scheduled appearance of an artist at a venue.  It
// has no existence independent of both parents: deleting either the
// venue or the artist deletes the show.
//
// Fields:
//  ID        – primary key identifier.
//  VenueID   – venue hosting the show.
//  ArtistID  – artist performing.
//  StartTime – when the show begins (UTC).
type Show struct {
	ID        uint64    `json:"id"`         // shows.id
	VenueID   uint64    `json:"venue_id"`   // shows.venue_id
	ArtistID  uint64    `json:"artist_id"`  // shows.artist_id
	StartTime time.Time `json:"start_time"` // shows.start_time
}

// ShowListing is a row of the flat show listing, annotated with both
// parents.
type ShowListing struct {
	VenueID         uint64    `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}
