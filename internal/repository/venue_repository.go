// This file defines the venue repository: CRUD on the venues table plus
// the read queries behind the directory, search and detail pages.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/iliyamo/venue-directory/internal/database"
	"github.com/iliyamo/venue-directory/internal/model"
)

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

const venueColumns = `id, name, city, state, address, phone, image_link, genres,
	facebook_link, website, seeking_talent, seeking_description`

func scanVenue(row interface{ Scan(...any) error }, v *model.Venue) error {
	return row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.ImageLink,
		&v.Genres, &v.FacebookLink, &v.Website, &v.SeekingTalent, &v.SeekingDescription)
}

// Create inserts a new venue.  On success v.ID holds the generated id.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, address, phone, image_link, genres,
	           facebook_link, website, seeking_talent, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
			v.Genres, v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription)
		if err != nil {
			return errors.Wrap(err, "insert venue")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "venue id")
		}
		v.ID = uint64(id)
		return nil
	})
}

// GetByID fetches a venue by its id.  It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM venues WHERE id = ?"
	var v model.Venue
	if err := scanVenue(r.db.QueryRowContext(ctx, q, id), &v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, errors.Wrap(err, "get venue")
	}
	return &v, nil
}

// Update replaces every editable field of the venue with id v.ID.  The
// row is locked and checked first because MySQL reports zero affected
// rows for an update that changes nothing.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
	           SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?, genres = ?,
	               facebook_link = ?, website = ?, seeking_talent = ?, seeking_description = ?
	           WHERE id = ?`
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := database.Exists(ctx, tx, "venues", v.ID)
		if err != nil {
			return errors.Wrap(err, "lock venue")
		}
		if !ok {
			return ErrVenueNotFound
		}
		if _, err := tx.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
			v.Genres, v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription, v.ID); err != nil {
			return errors.Wrap(err, "update venue")
		}
		return nil
	})
}

// Delete removes a venue and all of its shows in one transaction.  It
// returns ErrVenueNotFound when the venue does not exist.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := database.Exists(ctx, tx, "venues", id)
		if err != nil {
			return errors.Wrap(err, "lock venue")
		}
		if !ok {
			return ErrVenueNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
			return errors.Wrap(err, "delete venue shows")
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
			return errors.Wrap(err, "delete venue")
		}
		return nil
	})
}

const venueSummarySelect = `SELECT v.id, v.name, v.city, v.state,
	       COALESCE(SUM(CASE WHEN s.start_time > ? THEN 1 ELSE 0 END), 0) AS num_upcoming_shows
	FROM venues v
	LEFT JOIN shows s ON s.venue_id = v.id`

// ListWithUpcoming returns every venue with its number of shows starting
// after now, ordered by state, city and id.
func (r *VenueRepo) ListWithUpcoming(ctx context.Context, now time.Time) ([]model.VenueSummary, error) {
	q := venueSummarySelect + `
	GROUP BY v.id, v.name, v.city, v.state
	ORDER BY v.state, v.city, v.id`
	return r.summaries(ctx, q, now)
}

// Search returns venues whose name contains term, ignoring case.
func (r *VenueRepo) Search(ctx context.Context, term string, now time.Time) ([]model.VenueSummary, error) {
	q := venueSummarySelect + `
	WHERE LOWER(v.name) LIKE ?
	GROUP BY v.id, v.name, v.city, v.state
	ORDER BY v.id`
	return r.summaries(ctx, q, now, containsPattern(term))
}

func (r *VenueRepo) summaries(ctx context.Context, q string, now time.Time, args ...any) ([]model.VenueSummary, error) {
	rows, err := r.db.QueryContext(ctx, q, append([]any{now.UTC()}, args...)...)
	if err != nil {
		return nil, errors.Wrap(err, "list venues")
	}
	defer rows.Close()

	out := make([]model.VenueSummary, 0)
	for rows.Next() {
		var v model.VenueSummary
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.NumUpcomingShows); err != nil {
			return nil, errors.Wrap(err, "scan venue summary")
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list venues")
	}
	return out, nil
}

// Shows returns every show of the venue with the performing artist,
// ordered by start time.
func (r *VenueRepo) Shows(ctx context.Context, venueID uint64) ([]model.VenueShow, error) {
	const q = `SELECT a.id, a.name, a.image_link, s.start_time
	           FROM shows s
	           JOIN artists a ON a.id = s.artist_id
	           WHERE s.venue_id = ?
	           ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, errors.Wrap(err, "list venue shows")
	}
	defer rows.Close()

	out := make([]model.VenueShow, 0)
	for rows.Next() {
		var s model.VenueShow
		if err := rows.Scan(&s.ArtistID, &s.ArtistName, &s.ArtistImageLink, &s.StartTime); err != nil {
			return nil, errors.Wrap(err, "scan venue show")
		}
		s.StartTime = s.StartTime.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list venue shows")
	}
	return out, nil
}
