package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/iliyamo/venue-directory/internal/form"
	"github.com/iliyamo/venue-directory/internal/queue"
	"github.com/iliyamo/venue-directory/internal/repository"
)

const (
	msgShowListed = "Show was successfully listed!"
	msgShowFailed = "Your show submission failed. Please try again."
)

// ListShows handles GET /shows.
func (h *DirectoryHandler) ListShows(c echo.Context) error {
	shows, err := h.Shows.List(c.Request().Context())
	if err != nil {
		return errors.Wrap(err, "list shows")
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}

// NewShowForm handles GET /shows/create.  The start time defaults to now.
func (h *DirectoryHandler) NewShowForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"form": form.NewShowForm(h.now())})
}

// CreateShow handles POST /shows/create.  A venue or artist that does not
// exist is reported as a field error.
func (h *DirectoryHandler) CreateShow(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(msgInvalidRequest))
	}
	f := form.ParseShow(values, h.now())
	if errs := f.Validate(); errs != nil {
		return invalidForm(c, errs, f)
	}

	s := f.Show()
	err = h.Shows.Create(c.Request().Context(), s)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrVenueNotFound):
		errs := form.Errors{}
		errs.Add("venue_id", "Venue not found.")
		return invalidForm(c, errs, f)
	case errors.Is(err, repository.ErrArtistNotFound):
		errs := form.Errors{}
		errs.Add("artist_id", "Artist not found.")
		return invalidForm(c, errs, f)
	default:
		logFailure(c, err, "create show failed")
		return failedNotice(c, msgShowFailed)
	}
	h.publish(c, queue.ShowCreated, s.ID, "")
	return c.JSON(http.StatusCreated, echo.Map{"message": msgShowListed, "show": s})
}
