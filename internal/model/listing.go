package model

// Summary is the short form of a venue or artist used by lists and
// search results.
type Summary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// VenueSummary carries the location needed to group venues by area.
type VenueSummary struct {
	Summary
	City  string `json:"-"`
	State string `json:"-"`
}

// Area is one (city, state) group of the venue directory.
type Area struct {
	City   string    `json:"city"`
	State  string    `json:"state"`
	Venues []Summary `json:"venues"`
}

// SearchResult is the response body of a name search.
type SearchResult struct {
	Count int       `json:"count"`
	Data  []Summary `json:"data"`
}

// NewSearchResult wraps matches with their count.
func NewSearchResult(items []Summary) SearchResult {
	if items == nil {
		items = []Summary{}
	}
	return SearchResult{Count: len(items), Data: items}
}
