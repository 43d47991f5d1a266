package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/venue-directory/internal/model"
	"github.com/iliyamo/venue-directory/internal/queue"
)

type MockVenueStore struct{ mock.Mock }

func (m *MockVenueStore) Create(ctx context.Context, v *model.Venue) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVenueStore) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Venue), args.Error(1)
}

func (m *MockVenueStore) Update(ctx context.Context, v *model.Venue) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVenueStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVenueStore) ListWithUpcoming(ctx context.Context, now time.Time) ([]model.VenueSummary, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]model.VenueSummary), args.Error(1)
}

func (m *MockVenueStore) Search(ctx context.Context, term string, now time.Time) ([]model.VenueSummary, error) {
	args := m.Called(ctx, term, now)
	return args.Get(0).([]model.VenueSummary), args.Error(1)
}

func (m *MockVenueStore) Shows(ctx context.Context, venueID uint64) ([]model.VenueShow, error) {
	args := m.Called(ctx, venueID)
	return args.Get(0).([]model.VenueShow), args.Error(1)
}

type MockArtistStore struct{ mock.Mock }

func (m *MockArtistStore) Create(ctx context.Context, a *model.Artist) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockArtistStore) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artist), args.Error(1)
}

func (m *MockArtistStore) Update(ctx context.Context, a *model.Artist) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockArtistStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArtistStore) ListWithUpcoming(ctx context.Context, now time.Time) ([]model.Summary, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]model.Summary), args.Error(1)
}

func (m *MockArtistStore) Search(ctx context.Context, term string, now time.Time) ([]model.Summary, error) {
	args := m.Called(ctx, term, now)
	return args.Get(0).([]model.Summary), args.Error(1)
}

func (m *MockArtistStore) Shows(ctx context.Context, artistID uint64) ([]model.ArtistShow, error) {
	args := m.Called(ctx, artistID)
	return args.Get(0).([]model.ArtistShow), args.Error(1)
}

type MockShowStore struct{ mock.Mock }

func (m *MockShowStore) Create(ctx context.Context, s *model.Show) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShowStore) List(ctx context.Context) ([]model.ShowListing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.ShowListing), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, ev queue.ListingEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
