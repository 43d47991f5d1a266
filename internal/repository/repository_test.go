package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-directory/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%hall%", containsPattern("HaLL"))
	assert.Equal(t, `%50\%\_off\\%`, containsPattern(`50%_off\`))
	assert.Equal(t, "%%", containsPattern(""))
}

func TestVenueCreate(t *testing.T) {
	db, mock := newMock(t)
	v := &model.Venue{Name: "Test Hall", City: "Springfield", State: "IL", Address: "1 Main St",
		Genres: model.NewGenres("Jazz", "Blues")}

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO venues")).
		WithArgs("Test Hall", "Springfield", "IL", "1 Main St", "", "", "Blues,Jazz", "", "", false, "").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	require.NoError(t, NewVenueRepo(db).Create(context.Background(), v))
	assert.Equal(t, uint64(7), v.ID)
}

func TestVenueCreateRollsBackOnError(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO venues")).WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := NewVenueRepo(db).Create(context.Background(), &model.Venue{Name: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestVenueGetByID(t *testing.T) {
	db, mock := newMock(t)
	cols := []string{"id", "name", "city", "state", "address", "phone", "image_link", "genres",
		"facebook_link", "website", "seeking_talent", "seeking_description"}

	mock.ExpectQuery(q("FROM venues WHERE id = ?")).WithArgs(3).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(3, "Dueling Pianos", "New York", "NY", "335 Delancey",
			"914-003-1132", "", "Classical,R&B", "", "https://example.com", true, "looking"))

	v, err := NewVenueRepo(db).GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Dueling Pianos", v.Name)
	assert.Equal(t, model.Genres{"Classical", "R&B"}, v.Genres)
	assert.True(t, v.SeekingTalent)
}

func TestVenueGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q("FROM venues WHERE id = ?")).WithArgs(9).WillReturnError(sql.ErrNoRows)

	_, err := NewVenueRepo(db).GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestVenueUpdate(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT 1 FROM venues WHERE id = ? FOR UPDATE")).WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec(q("UPDATE venues")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := NewVenueRepo(db).Update(context.Background(), &model.Venue{ID: 4, Name: "Same"})
	assert.NoError(t, err)
}

func TestVenueUpdateMissing(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT 1 FROM venues WHERE id = ? FOR UPDATE")).WithArgs(4).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := NewVenueRepo(db).Update(context.Background(), &model.Venue{ID: 4})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestVenueDeleteCascades(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT 1 FROM venues WHERE id = ? FOR UPDATE")).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec(q("DELETE FROM shows WHERE venue_id = ?")).WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(q("DELETE FROM venues WHERE id = ?")).WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, NewVenueRepo(db).Delete(context.Background(), 2))
}

func TestVenueDeleteMissingRollsBack(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT 1 FROM venues WHERE id = ? FOR UPDATE")).WithArgs(2).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	assert.ErrorIs(t, NewVenueRepo(db).Delete(context.Background(), 2), ErrVenueNotFound)
}

func TestVenueListWithUpcoming(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(q("ORDER BY v.state, v.city, v.id")).WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "state", "num_upcoming_shows"}).
			AddRow(1, "The Musical Hop", "San Francisco", "CA", 0).
			AddRow(3, "Park Square", "San Francisco", "CA", 1))

	out, err := NewVenueRepo(db).ListWithUpcoming(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "CA", out[1].State)
	assert.Equal(t, 1, out[1].NumUpcomingShows)
}

func TestVenueListEmpty(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q("FROM venues v")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "state", "num_upcoming_shows"}))

	out, err := NewVenueRepo(db).ListWithUpcoming(context.Background(), now)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestVenueSearchEscapesTerm(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(q("WHERE LOWER(v.name) LIKE ?")).WithArgs(sqlmock.AnyArg(), "%hop%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "state", "num_upcoming_shows"}).
			AddRow(1, "The Musical Hop", "San Francisco", "CA", 0))

	out, err := NewVenueRepo(db).Search(context.Background(), "Hop", now)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "The Musical Hop", out[0].Name)
}

func TestVenueShows(t *testing.T) {
	db, mock := newMock(t)
	start := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q("WHERE s.venue_id = ?")).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image_link", "start_time"}).
			AddRow(4, "Guns N Petals", "img", start))

	out, err := NewVenueRepo(db).Shows(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, uint64(4), out[0].ArtistID)
	assert.True(t, start.Equal(out[0].StartTime))
}

func TestArtistCreateAndGet(t *testing.T) {
	db, mock := newMock(t)
	a := &model.Artist{Name: "Guns N Petals", City: "San Francisco", State: "CA",
		Genres: model.NewGenres("Rock n Roll")}

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO artists")).WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()
	require.NoError(t, NewArtistRepo(db).Create(context.Background(), a))
	assert.Equal(t, uint64(4), a.ID)

	cols := []string{"id", "name", "city", "state", "phone", "image_link", "genres",
		"facebook_link", "website_link", "seeking_venue", "seeking_description"}
	mock.ExpectQuery(q("FROM artists WHERE id = ?")).WithArgs(4).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(4, "Guns N Petals", "San Francisco", "CA", "",
			"", "Rock n Roll", "", "", false, ""))
	got, err := NewArtistRepo(db).GetByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, model.Genres{"Rock n Roll"}, got.Genres)
}

func TestArtistGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q("FROM artists WHERE id = ?")).WillReturnError(sql.ErrNoRows)

	_, err := NewArtistRepo(db).GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestArtistDeleteCascades(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT 1 FROM artists WHERE id = ? FOR UPDATE")).WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec(q("DELETE FROM shows WHERE artist_id = ?")).WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q("DELETE FROM artists WHERE id = ?")).WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, NewArtistRepo(db).Delete(context.Background(), 5))
}

func TestArtistListOrderedByID(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(q("ORDER BY a.id")).WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "num_upcoming_shows"}).
			AddRow(4, "Guns N Petals", 1).
			AddRow(5, "Matt Quevedo", 0))

	out, err := NewArtistRepo(db).ListWithUpcoming(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []model.Summary{
		{ID: 4, Name: "Guns N Petals", NumUpcomingShows: 1},
		{ID: 5, Name: "Matt Quevedo"},
	}, out)
}

func TestShowCreateChecksParents(t *testing.T) {
	db, mock := newMock(t)
	s := &model.Show{VenueID: 1, ArtistID: 4, StartTime: now}

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT 1 FROM venues WHERE id = ? FOR UPDATE")).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(q("SELECT 1 FROM artists WHERE id = ? FOR UPDATE")).WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec(q("INSERT INTO shows")).WithArgs(1, 4, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	require.NoError(t, NewShowRepo(db).Create(context.Background(), s))
	assert.Equal(t, uint64(11), s.ID)
}

func TestShowCreateUnknownArtist(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT 1 FROM venues WHERE id = ? FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(q("SELECT 1 FROM artists WHERE id = ? FOR UPDATE")).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := NewShowRepo(db).Create(context.Background(), &model.Show{VenueID: 1, ArtistID: 99, StartTime: now})
	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestShowList(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(q("FROM shows s")).
		WillReturnRows(sqlmock.NewRows([]string{"vid", "vname", "aid", "aname", "img", "start_time"}).
			AddRow(1, "The Musical Hop", 4, "Guns N Petals", "img", now))

	out, err := NewShowRepo(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "The Musical Hop", out[0].VenueName)
	assert.Equal(t, "Guns N Petals", out[0].ArtistName)
}
