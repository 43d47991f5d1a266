package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// schema holds one statement per entry; the MySQL driver runs a single
// statement per Exec unless multiStatements is enabled.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
    id                  BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    name                VARCHAR(120) NOT NULL,
    city                VARCHAR(120) NOT NULL,
    state               CHAR(2)      NOT NULL,
    address             VARCHAR(120) NOT NULL,
    phone               VARCHAR(120) NOT NULL DEFAULT '',
    image_link          VARCHAR(500) NOT NULL DEFAULT '',
    genres              VARCHAR(500) NOT NULL DEFAULT '',
    facebook_link       VARCHAR(120) NOT NULL DEFAULT '',
    website             VARCHAR(120) NOT NULL DEFAULT '',
    seeking_talent      BOOLEAN      NOT NULL DEFAULT FALSE,
    seeking_description VARCHAR(500) NOT NULL DEFAULT '',
    INDEX idx_venues_area (state, city)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS artists (
    id                  BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    name                VARCHAR(120) NOT NULL,
    city                VARCHAR(120) NOT NULL,
    state               CHAR(2)      NOT NULL,
    phone               VARCHAR(120) NOT NULL DEFAULT '',
    image_link          VARCHAR(500) NOT NULL DEFAULT '',
    genres              VARCHAR(500) NOT NULL DEFAULT '',
    facebook_link       VARCHAR(120) NOT NULL DEFAULT '',
    website_link        VARCHAR(120) NOT NULL DEFAULT '',
    seeking_venue       BOOLEAN      NOT NULL DEFAULT FALSE,
    seeking_description VARCHAR(500) NOT NULL DEFAULT ''
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS shows (
    id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    venue_id   BIGINT UNSIGNED NOT NULL,
    artist_id  BIGINT UNSIGNED NOT NULL,
    start_time DATETIME        NOT NULL,
    INDEX idx_shows_start_time (start_time),
    CONSTRAINT fk_shows_venue  FOREIGN KEY (venue_id)  REFERENCES venues (id)  ON DELETE CASCADE,
    CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists (id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// CreateSchema creates all tables needed by the directory.  Safe to call
// multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "create schema")
		}
	}
	return nil
}
