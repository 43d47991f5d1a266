package form

import (
	"net/url"
	"time"

	"github.com/iliyamo/venue-directory/internal/model"
)

// ShowForm is a parsed show submission.
type ShowForm struct {
	ArtistID  uint64    `json:"artist_id" validate:"required"`
	VenueID   uint64    `json:"venue_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	// StartTimeRaw echoes a start time that did not parse, so the client
	// can correct what it sent.
	StartTimeRaw string `json:"start_time_raw,omitempty"`

	parseErrs Errors
}

// NewShowForm returns the empty form with start time defaulted to now.
func NewShowForm(now time.Time) ShowForm {
	return ShowForm{StartTime: now.UTC()}
}

// ParseShow reads a show submission.  A blank start time defaults to now;
// values that do not parse are reported by Validate.
func ParseShow(values url.Values, now time.Time) ShowForm {
	f := ShowForm{parseErrs: Errors{}}

	var ok bool
	if f.ArtistID, ok = parseID(text(values, "artist_id")); !ok {
		f.parseErrs.Add("artist_id", "Not a valid integer value.")
	}
	if f.VenueID, ok = parseID(text(values, "venue_id")); !ok {
		f.parseErrs.Add("venue_id", "Not a valid integer value.")
	}

	raw := text(values, "start_time")
	if raw == "" {
		f.StartTime = now.UTC()
	} else if f.StartTime, ok = parseStartTime(raw); !ok {
		f.StartTimeRaw = raw
		f.parseErrs.Add("start_time", "Not a valid datetime value.")
	}
	return f
}

// Validate returns the field errors of f, or nil when f is valid.
func (f ShowForm) Validate() Errors {
	errs := Errors{}
	for field, msgs := range f.parseErrs {
		errs[field] = append(errs[field], msgs...)
	}
	if errs = check(f, errs); len(errs) > 0 {
		return errs
	}
	return nil
}

// Show builds the record.  Call it only on a validated form.
func (f ShowForm) Show() *model.Show {
	return &model.Show{
		VenueID:   f.VenueID,
		ArtistID:  f.ArtistID,
		StartTime: f.StartTime,
	}
}
