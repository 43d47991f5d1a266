package directory

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-directory/internal/model"
)

func venue(id uint64, city, state string) model.VenueSummary {
	return model.VenueSummary{
		Summary: model.Summary{ID: id, Name: fmt.Sprintf("venue-%d", id)},
		City:    city,
		State:   state,
	}
}

func TestGroupByAreaEveryVenueInExactlyOneGroup(t *testing.T) {
	in := []model.VenueSummary{
		venue(1, "San Francisco", "CA"),
		venue(2, "New York", "NY"),
		venue(3, "San Francisco", "CA"),
		venue(4, "Portland", "OR"),
		venue(5, "Portland", "ME"),
		venue(6, "New York", "NY"),
	}
	areas := GroupByArea(in)
	require.Len(t, areas, 4)

	seen := map[uint64]int{}
	total := 0
	for _, a := range areas {
		for _, v := range a.Venues {
			seen[v.ID]++
			total++
		}
	}
	assert.Equal(t, len(in), total)
	for _, v := range in {
		assert.Equal(t, 1, seen[v.ID], "venue %d", v.ID)
	}

	assert.Equal(t, "San Francisco", areas[0].City)
	assert.Equal(t, []uint64{1, 3}, []uint64{areas[0].Venues[0].ID, areas[0].Venues[1].ID})
	assert.Equal(t, "OR", areas[2].State)
	assert.Equal(t, "ME", areas[3].State)
}

func TestGroupByAreaMatchesCityAndStateExactly(t *testing.T) {
	areas := GroupByArea([]model.VenueSummary{
		venue(1, "Springfield", "IL"),
		venue(2, "Springfield", "MO"),
		venue(3, "springfield", "IL"),
	})
	assert.Len(t, areas, 3)
}

func TestGroupByAreaEmpty(t *testing.T) {
	areas := GroupByArea(nil)
	assert.NotNil(t, areas)
	assert.Empty(t, areas)
}

func TestPartitionBoundary(t *testing.T) {
	now := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)
	shows := []model.VenueShow{
		{ArtistID: 1, StartTime: now.Add(-time.Hour)},
		{ArtistID: 2, StartTime: now},
		{ArtistID: 3, StartTime: now.Add(time.Second)},
		{ArtistID: 4, StartTime: now.AddDate(1, 0, 0)},
	}
	past, upcoming := Partition(shows, func(s model.VenueShow) time.Time { return s.StartTime }, now)
	require.Len(t, past, 2)
	require.Len(t, upcoming, 2)
	assert.Equal(t, uint64(1), past[0].ArtistID)
	assert.Equal(t, uint64(2), past[1].ArtistID)
	assert.Equal(t, uint64(3), upcoming[0].ArtistID)
}

func TestShowClassifiedSameWayForVenueAndArtist(t *testing.T) {
	now := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)
	starts := []time.Time{now.Add(-48 * time.Hour), now, now.Add(time.Minute), now.Add(72 * time.Hour)}

	for _, start := range starts {
		vd := VenueDetail(model.Venue{ID: 1}, []model.VenueShow{{ArtistID: 9, StartTime: start}}, now)
		ad := ArtistDetail(model.Artist{ID: 9}, []model.ArtistShow{{VenueID: 1, StartTime: start}}, now)

		upcoming := start.After(now)
		assert.Equal(t, upcoming, vd.UpcomingShowsCount == 1, "venue view for %s", start)
		assert.Equal(t, upcoming, ad.UpcomingShowsCount == 1, "artist view for %s", start)
		assert.Equal(t, vd.PastShowsCount, ad.PastShowsCount)
		assert.Equal(t, 1, vd.PastShowsCount+vd.UpcomingShowsCount)
	}
}

func TestSummaries(t *testing.T) {
	out := Summaries([]model.VenueSummary{venue(7, "Austin", "TX")})
	require.Len(t, out, 1)
	assert.Equal(t, uint64(7), out[0].ID)
	assert.Equal(t, "venue-7", out[0].Name)
}
