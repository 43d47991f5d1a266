package form

import (
	"net/url"

	"github.com/iliyamo/venue-directory/internal/model"
)

// VenueForm is a parsed venue submission.
type VenueForm struct {
	Name               string   `json:"name" validate:"required"`
	City               string   `json:"city" validate:"required"`
	State              string   `json:"state" validate:"required,state"`
	Address            string   `json:"address" validate:"required"`
	Phone              string   `json:"phone" validate:"omitempty,phone"`
	ImageLink          string   `json:"image_link"`
	Genres             []string `json:"genres" validate:"required,min=1,genres"`
	FacebookLink       string   `json:"facebook_link" validate:"omitempty,url"`
	Website            string   `json:"website" validate:"omitempty,url"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
}

// ParseVenue reads a venue submission.  Text fields are trimmed.
func ParseVenue(values url.Values) VenueForm {
	return VenueForm{
		Name:               text(values, "name"),
		City:               text(values, "city"),
		State:              text(values, "state"),
		Address:            text(values, "address"),
		Phone:              text(values, "phone"),
		ImageLink:          text(values, "image_link"),
		Genres:             list(values, "genres"),
		FacebookLink:       text(values, "facebook_link"),
		Website:            text(values, "website"),
		SeekingTalent:      checkbox(values, "seeking_talent"),
		SeekingDescription: text(values, "seeking_description"),
	}
}

// VenueFormFrom fills a form with a stored venue, for edit pages.
func VenueFormFrom(v model.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Genres:             []string(model.NewGenres(v.Genres...)),
		FacebookLink:       v.FacebookLink,
		Website:            v.Website,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

// Validate returns the field errors of f, or nil when f is valid.
func (f VenueForm) Validate() Errors {
	if errs := check(f, Errors{}); len(errs) > 0 {
		return errs
	}
	return nil
}

// Venue builds the full record with the given id.  Call it only on a
// validated form.
func (f VenueForm) Venue(id uint64) *model.Venue {
	return &model.Venue{
		ID:                 id,
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		Genres:             model.NewGenres(f.Genres...),
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
}
