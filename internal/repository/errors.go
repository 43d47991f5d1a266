// Package repository defines error types that are reused across multiple
// repositories.  Handlers match them with errors.Is to tell a missing
// record apart from a persistence failure; every other error returned by
// a repository is a persistence failure.
package repository

import (
	"errors"
	"strings"
)

// ErrVenueNotFound is returned when no venue has the requested id.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when no artist has the requested id.
var ErrArtistNotFound = errors.New("artist not found")

// likeEscaper escapes LIKE metacharacters so a search term is matched
// literally.  MySQL uses backslash as the default escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns a LIKE pattern matching term anywhere in a
// lower-cased column.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
