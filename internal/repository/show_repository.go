// This file defines the show repository.  A show links one artist to one
// venue at a start time and cannot exist without both.
package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/iliyamo/venue-directory/internal/database"
	"github.com/iliyamo/venue-directory/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the provided DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a show after checking, inside the same transaction,
// that both the venue and the artist exist.  The parent rows stay locked
// until commit so a concurrent delete cannot orphan the show.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (venue_id, artist_id, start_time) VALUES (?, ?, ?)`
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := database.Exists(ctx, tx, "venues", s.VenueID)
		if err != nil {
			return errors.Wrap(err, "lock venue")
		}
		if !ok {
			return ErrVenueNotFound
		}
		ok, err = database.Exists(ctx, tx, "artists", s.ArtistID)
		if err != nil {
			return errors.Wrap(err, "lock artist")
		}
		if !ok {
			return ErrArtistNotFound
		}
		res, err := tx.ExecContext(ctx, q, s.VenueID, s.ArtistID, s.StartTime.UTC())
		if err != nil {
			return errors.Wrap(err, "insert show")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "show id")
		}
		s.ID = uint64(id)
		return nil
	})
}

// List returns every show annotated with its venue and artist, ordered
// by start time.
func (r *ShowRepo) List(ctx context.Context) ([]model.ShowListing, error) {
	const q = `SELECT v.id, v.name, a.id, a.name, a.image_link, s.start_time
	           FROM shows s
	           JOIN venues v ON v.id = s.venue_id
	           JOIN artists a ON a.id = s.artist_id
	           ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "list shows")
	}
	defer rows.Close()

	out := make([]model.ShowListing, 0)
	for rows.Next() {
		var s model.ShowListing
		if err := rows.Scan(&s.VenueID, &s.VenueName, &s.ArtistID, &s.ArtistName, &s.ArtistImageLink, &s.StartTime); err != nil {
			return nil, errors.Wrap(err, "scan show")
		}
		s.StartTime = s.StartTime.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list shows")
	}
	return out, nil
}
