package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/iliyamo/venue-directory/internal/database"
	"github.com/iliyamo/venue-directory/internal/model"
)

// ArtistRepo provides CRUD operations on the artists table.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

const artistColumns = `id, name, city, state, phone, image_link, genres,
	facebook_link, website_link, seeking_venue, seeking_description`

func scanArtist(row interface{ Scan(...any) error }, a *model.Artist) error {
	return row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.ImageLink, &a.Genres,
		&a.FacebookLink, &a.WebsiteLink, &a.SeekingVenue, &a.SeekingDescription)
}

// Create inserts a new artist and stores the generated id in a.ID.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists (name, city, state, phone, image_link, genres,
	           facebook_link, website_link, seeking_venue, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.ImageLink, a.Genres,
			a.FacebookLink, a.WebsiteLink, a.SeekingVenue, a.SeekingDescription)
		if err != nil {
			return errors.Wrap(err, "insert artist")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "artist id")
		}
		a.ID = uint64(id)
		return nil
	})
}

// GetByID returns ErrArtistNotFound if no artist has the given id.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	q := "SELECT " + artistColumns + " FROM artists WHERE id = ?"
	var a model.Artist
	if err := scanArtist(r.db.QueryRowContext(ctx, q, id), &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, errors.Wrap(err, "get artist")
	}
	return &a, nil
}

// Update overwrites the artist with id a.ID.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const q = `UPDATE artists
	           SET name = ?, city = ?, state = ?, phone = ?, image_link = ?, genres = ?,
	               facebook_link = ?, website_link = ?, seeking_venue = ?, seeking_description = ?
	           WHERE id = ?`
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := database.Exists(ctx, tx, "artists", a.ID)
		if err != nil {
			return errors.Wrap(err, "lock artist")
		}
		if !ok {
			return ErrArtistNotFound
		}
		if _, err := tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.ImageLink, a.Genres,
			a.FacebookLink, a.WebsiteLink, a.SeekingVenue, a.SeekingDescription, a.ID); err != nil {
			return errors.Wrap(err, "update artist")
		}
		return nil
	})
}

// Delete removes the artist together with its shows.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := database.Exists(ctx, tx, "artists", id)
		if err != nil {
			return errors.Wrap(err, "lock artist")
		}
		if !ok {
			return ErrArtistNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, id); err != nil {
			return errors.Wrap(err, "delete artist shows")
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id); err != nil {
			return errors.Wrap(err, "delete artist")
		}
		return nil
	})
}

const artistSummarySelect = `SELECT a.id, a.name,
	       COALESCE(SUM(CASE WHEN s.start_time > ? THEN 1 ELSE 0 END), 0) AS num_upcoming_shows
	FROM artists a
	LEFT JOIN shows s ON s.artist_id = a.id`

// ListWithUpcoming returns every artist ordered by id with its number of
// shows starting after now.
func (r *ArtistRepo) ListWithUpcoming(ctx context.Context, now time.Time) ([]model.Summary, error) {
	q := artistSummarySelect + `
	GROUP BY a.id, a.name
	ORDER BY a.id`
	return r.summaries(ctx, q, now)
}

// Search returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) Search(ctx context.Context, term string, now time.Time) ([]model.Summary, error) {
	q := artistSummarySelect + `
	WHERE LOWER(a.name) LIKE ?
	GROUP BY a.id, a.name
	ORDER BY a.id`
	return r.summaries(ctx, q, now, containsPattern(term))
}

func (r *ArtistRepo) summaries(ctx context.Context, q string, now time.Time, args ...any) ([]model.Summary, error) {
	rows, err := r.db.QueryContext(ctx, q, append([]any{now.UTC()}, args...)...)
	if err != nil {
		return nil, errors.Wrap(err, "list artists")
	}
	defer rows.Close()

	out := make([]model.Summary, 0)
	for rows.Next() {
		var s model.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.NumUpcomingShows); err != nil {
			return nil, errors.Wrap(err, "scan artist summary")
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list artists")
	}
	return out, nil
}

// Shows returns the artist's shows with the hosting venue, ordered by
// start time.
func (r *ArtistRepo) Shows(ctx context.Context, artistID uint64) ([]model.ArtistShow, error) {
	const q = `SELECT v.id, v.name, v.image_link, s.start_time
	           FROM shows s
	           JOIN venues v ON v.id = s.venue_id
	           WHERE s.artist_id = ?
	           ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, errors.Wrap(err, "list artist shows")
	}
	defer rows.Close()

	out := make([]model.ArtistShow, 0)
	for rows.Next() {
		var s model.ArtistShow
		if err := rows.Scan(&s.VenueID, &s.VenueName, &s.VenueImageLink, &s.StartTime); err != nil {
			return nil, errors.Wrap(err, "scan artist show")
		}
		s.StartTime = s.StartTime.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list artist shows")
	}
	return out, nil
}
