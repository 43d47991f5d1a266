package form

import (
	"net/url"

	"github.com/iliyamo/venue-directory/internal/model"
)

// ArtistForm is a parsed artist submission.
type ArtistForm struct {
	Name               string   `json:"name" validate:"required"`
	City               string   `json:"city" validate:"required"`
	State              string   `json:"state" validate:"required,state"`
	Phone              string   `json:"phone" validate:"omitempty,phone"`
	ImageLink          string   `json:"image_link"`
	Genres             []string `json:"genres" validate:"required,min=1,genres"`
	FacebookLink       string   `json:"facebook_link" validate:"omitempty,url"`
	WebsiteLink        string   `json:"website_link" validate:"omitempty,url"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
}

// ParseArtist reads an artist submission.  Text fields are trimmed.
func ParseArtist(values url.Values) ArtistForm {
	return ArtistForm{
		Name:               text(values, "name"),
		City:               text(values, "city"),
		State:              text(values, "state"),
		Phone:              text(values, "phone"),
		ImageLink:          text(values, "image_link"),
		Genres:             list(values, "genres"),
		FacebookLink:       text(values, "facebook_link"),
		WebsiteLink:        text(values, "website_link"),
		SeekingVenue:       checkbox(values, "seeking_venue"),
		SeekingDescription: text(values, "seeking_description"),
	}
}

// ArtistFormFrom fills a form with a stored artist, for edit pages.
func ArtistFormFrom(a model.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		Genres:             []string(model.NewGenres(a.Genres...)),
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.WebsiteLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

// Validate returns the field errors of f, or nil when f is valid.
func (f ArtistForm) Validate() Errors {
	if errs := check(f, Errors{}); len(errs) > 0 {
		return errs
	}
	return nil
}

// Artist builds the full record with the given id.
func (f ArtistForm) Artist(id uint64) *model.Artist {
	return &model.Artist{
		ID:                 id,
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		Genres:             model.NewGenres(f.Genres...),
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}
}
