// Package directory holds the read-side aggregations of the listing:
// grouping venues by area and splitting shows into past and upcoming.
// Functions here are pure; the caller supplies the request's "now".
package directory

import (
	"time"

	"github.com/iliyamo/venue-directory/internal/model"
)

// GroupByArea partitions venues by their exact (city, state) pair.  Groups
// appear in the order their first venue appears in the input, and venues
// keep their input order inside a group.
func GroupByArea(venues []model.VenueSummary) []model.Area {
	type key struct{ city, state string }
	index := make(map[key]int)
	areas := make([]model.Area, 0)
	for _, v := range venues {
		k := key{v.City, v.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, model.Area{City: v.City, State: v.State, Venues: []model.Summary{}})
		}
		areas[i].Venues = append(areas[i].Venues, v.Summary)
	}
	return areas
}

// Partition splits items by start time: at or before now is past, after
// now is upcoming.  Input order is preserved in both halves.
func Partition[T any](items []T, startOf func(T) time.Time, now time.Time) (past, upcoming []T) {
	past = make([]T, 0)
	upcoming = make([]T, 0)
	for _, it := range items {
		if startOf(it).After(now) {
			upcoming = append(upcoming, it)
		} else {
			past = append(past, it)
		}
	}
	return past, upcoming
}

// VenueDetail partitions a venue's shows and merges them with the record.
func VenueDetail(v model.Venue, shows []model.VenueShow, now time.Time) model.VenueDetail {
	past, upcoming := Partition(shows, func(s model.VenueShow) time.Time { return s.StartTime }, now)
	return model.NewVenueDetail(v, past, upcoming)
}

// ArtistDetail partitions an artist's shows and merges them with the record.
func ArtistDetail(a model.Artist, shows []model.ArtistShow, now time.Time) model.ArtistDetail {
	past, upcoming := Partition(shows, func(s model.ArtistShow) time.Time { return s.StartTime }, now)
	return model.NewArtistDetail(a, past, upcoming)
}

// Summaries drops the location from venue summaries.
func Summaries(venues []model.VenueSummary) []model.Summary {
	out := make([]model.Summary, 0, len(venues))
	for _, v := range venues {
		out = append(out, v.Summary)
	}
	return out
}
