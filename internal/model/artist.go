package model

import "time"

// Artist represents a performer listed in the directory.  It
// corresponds to a row in the `artists` table.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name of the artist.
//  City, State        – home location; State is a code from States.
//  Phone              – optional phone number.
//  ImageLink          – optional picture URL.
//  Genres             – styles of music the artist plays.
//  FacebookLink       – optional Facebook page URL.
//  WebsiteLink        – optional website URL.
//  SeekingVenue       – whether the artist is looking for venues.
//  SeekingDescription – free text shown when SeekingVenue is set.
type Artist struct {
	ID                 uint64 `json:"id"`                  // artists.id
	Name               string `json:"name"`                // artists.name
	City               string `json:"city"`                // artists.city
	State              string `json:"state"`               // artists.state
	Phone              string `json:"phone"`               // artists.phone
	ImageLink          string `json:"image_link"`          // artists.image_link
	Genres             Genres `json:"genres"`              // artists.genres (comma-joined)
	FacebookLink       string `json:"facebook_link"`       // artists.facebook_link
	WebsiteLink        string `json:"website_link"`        // artists.website_link
	SeekingVenue       bool   `json:"seeking_venue"`       // artists.seeking_venue
	SeekingDescription string `json:"seeking_description"` // artists.seeking_description
}

// ArtistShow is a show as seen from an artist's page: the hosting venue
// and the start time.
type ArtistShow struct {
	VenueID        uint64    `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

// ArtistDetail is the artist record merged with its partitioned shows.
type ArtistDetail struct {
	Artist
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

// NewArtistDetail builds the detail view from already partitioned shows.
func NewArtistDetail(a Artist, past, upcoming []ArtistShow) ArtistDetail {
	if past == nil {
		past = []ArtistShow{}
	}
	if upcoming == nil {
		upcoming = []ArtistShow{}
	}
	return ArtistDetail{
		Artist:             a,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
}
