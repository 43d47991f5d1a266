package model

import (
	"database/sql/driver"
	"fmt"
	"slices"
	"strings"
)

// GenreNames is the fixed genre enumeration in canonical order.
var GenreNames = []string{
	"Alternative",
	"Blues",
	"Classical",
	"Country",
	"Electronic",
	"Folk",
	"Funk",
	"Hip-Hop",
	"Heavy Metal",
	"Instrumental",
	"Jazz",
	"Musical Theatre",
	"Pop",
	"Punk",
	"R&B",
	"Reggae",
	"Rock n Roll",
	"Soul",
	"Other",
}

const genreSeparator = ","

// IsValidGenre reports whether g is one of GenreNames.
func IsValidGenre(g string) bool {
	return slices.Contains(GenreNames, g)
}

// Genres is a set of genre names.  It is stored as a comma-joined string
// and serialised to JSON as an array.
type Genres []string

// NewGenres returns the set of names in canonical order without
// duplicates.  Names outside the enumeration are kept after the known
// ones so that decoding legacy rows never loses data.
func NewGenres(names ...string) Genres {
	seen := make(map[string]bool, len(names))
	var known, unknown []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		if IsValidGenre(n) {
			known = append(known, n)
		} else {
			unknown = append(unknown, n)
		}
	}
	slices.SortFunc(known, func(a, b string) int {
		return slices.Index(GenreNames, a) - slices.Index(GenreNames, b)
	})
	slices.Sort(unknown)
	out := make(Genres, 0, len(known)+len(unknown))
	out = append(out, known...)
	return append(out, unknown...)
}

// Encode joins the set into its stored form.
func (g Genres) Encode() string {
	return strings.Join(NewGenres(g...), genreSeparator)
}

// DecodeGenres parses the stored form back into a set.  The empty string
// decodes to an empty set.
func DecodeGenres(s string) Genres {
	if strings.TrimSpace(s) == "" {
		return Genres{}
	}
	return NewGenres(strings.Split(s, genreSeparator)...)
}

// Equal reports whether both sets hold the same names regardless of order.
func (g Genres) Equal(other Genres) bool {
	return slices.Equal(NewGenres(g...), NewGenres(other...))
}

// Value implements driver.Valuer.
func (g Genres) Value() (driver.Value, error) {
	return g.Encode(), nil
}

// Scan implements sql.Scanner.
func (g *Genres) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*g = Genres{}
	case string:
		*g = DecodeGenres(v)
	case []byte:
		*g = DecodeGenres(string(v))
	default:
		return fmt.Errorf("genres: unsupported column type %T", src)
	}
	return nil
}
