package model

import "time"

// Venue represents a bookable place listed in the directory.  It
// corresponds to a row in the `venues` table.  Shows reference a
// venue through shows.venue_id and are removed together with it.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name of the venue.
//  City, State        – location; State is a two-letter code from States.
//  Address            – street address.
//  Phone              – optional North-American style phone number.
//  ImageLink          – optional picture URL.
//  Genres             – styles of music the venue books.
//  FacebookLink       – optional Facebook page URL.
//  Website            – optional website URL.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free text shown when SeekingTalent is set.
type Venue struct {
	ID                 uint64 `json:"id"`                  // venues.id
	Name               string `json:"name"`                // venues.name
	City               string `json:"city"`                // venues.city
	State              string `json:"state"`               // venues.state
	Address            string `json:"address"`             // venues.address
	Phone              string `json:"phone"`               // venues.phone
	ImageLink          string `json:"image_link"`          // venues.image_link
	Genres             Genres `json:"genres"`              // venues.genres (comma-joined)
	FacebookLink       string `json:"facebook_link"`       // venues.facebook_link
	Website            string `json:"website"`             // venues.website
	SeekingTalent      bool   `json:"seeking_talent"`      // venues.seeking_talent
	SeekingDescription string `json:"seeking_description"` // venues.seeking_description
}

// VenueShow is a show as seen from a venue's page: the performing
// artist and the start time.
type VenueShow struct {
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// VenueDetail is the venue record merged with its shows split into past
// and upcoming at request time.
type VenueDetail struct {
	Venue
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// NewVenueDetail builds the detail view from already partitioned shows.
func NewVenueDetail(v Venue, past, upcoming []VenueShow) VenueDetail {
	if past == nil {
		past = []VenueShow{}
	}
	if upcoming == nil {
		upcoming = []VenueShow{}
	}
	return VenueDetail{
		Venue:              v,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
}
