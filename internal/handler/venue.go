package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/iliyamo/venue-directory/internal/directory"
	"github.com/iliyamo/venue-directory/internal/form"
	"github.com/iliyamo/venue-directory/internal/model"
	"github.com/iliyamo/venue-directory/internal/queue"
	"github.com/iliyamo/venue-directory/internal/repository"
)

const (
	msgVenueNotFound  = "venue not found"
	msgVenueDeleted   = "Venue successfully deleted"
	msgDeleteFailed   = "Delete action could not be completed. Try again"
	msgInvalidForm    = "invalid form"
	msgInvalidRequest = "invalid form body"
)

// ListVenues handles GET /venues and returns venues grouped by city and
// state with their upcoming show counts.
func (h *DirectoryHandler) ListVenues(c echo.Context) error {
	rows, err := h.Venues.ListWithUpcoming(c.Request().Context(), h.now())
	if err != nil {
		return errors.Wrap(err, "list venues")
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": directory.GroupByArea(rows)})
}

// SearchVenues handles POST /venues/search.  The match is a
// case-insensitive substring of the venue name.
func (h *DirectoryHandler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")
	rows, err := h.Venues.Search(c.Request().Context(), term, h.now())
	if err != nil {
		return errors.Wrap(err, "search venues")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"search_term": term,
		"results":     model.NewSearchResult(directory.Summaries(rows)),
	})
}

// ShowVenue handles GET /venues/:id and returns the venue with its shows
// split into past and upcoming.
func (h *DirectoryHandler) ShowVenue(c echo.Context) error {
	v, err := h.venue(c)
	if err != nil || v == nil {
		return err
	}
	shows, err := h.Venues.Shows(c.Request().Context(), v.ID)
	if err != nil {
		return errors.Wrap(err, "venue shows")
	}
	return c.JSON(http.StatusOK, directory.VenueDetail(*v, shows, h.now()))
}

// NewVenueForm handles GET /venues/create.
func (h *DirectoryHandler) NewVenueForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"form":    form.VenueForm{Genres: []string{}},
		"choices": form.DefaultChoices(),
	})
}

// CreateVenue handles POST /venues/create.  The submission is validated
// before anything is written.
func (h *DirectoryHandler) CreateVenue(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(msgInvalidRequest))
	}
	f := form.ParseVenue(values)
	if errs := f.Validate(); errs != nil {
		return invalidForm(c, errs, f)
	}

	v := f.Venue(0)
	if err := h.Venues.Create(c.Request().Context(), v); err != nil {
		logFailure(c, err, "create venue failed")
		return failedNotice(c, "An error occurred. Venue "+f.Name+" could not be listed.")
	}
	h.publish(c, queue.VenueCreated, v.ID, v.Name)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Venue " + v.Name + " was successfully listed!",
		"venue":   v,
	})
}

// DeleteVenue handles POST /venues/:id/delete.  The venue's shows are
// removed with it.
func (h *DirectoryHandler) DeleteVenue(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody(msgVenueNotFound))
	}
	if err := h.Venues.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, errorBody(msgVenueNotFound))
		}
		logFailure(c, err, "delete venue failed")
		return failedNotice(c, msgDeleteFailed)
	}
	h.publish(c, queue.VenueDeleted, id, "")
	return c.JSON(http.StatusOK, echo.Map{"message": msgVenueDeleted, "redirect": "/"})
}

// EditVenueForm handles GET /venues/:id/edit and returns the form
// pre-filled with the stored venue.
func (h *DirectoryHandler) EditVenueForm(c echo.Context) error {
	v, err := h.venue(c)
	if err != nil || v == nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"form":    form.VenueFormFrom(*v),
		"venue":   v,
		"choices": form.DefaultChoices(),
	})
}

// EditVenue handles POST /venues/:id/edit.  Every editable field is
// replaced; on success the client is sent to the venue page.
func (h *DirectoryHandler) EditVenue(c echo.Context) error {
	current, err := h.venue(c)
	if err != nil || current == nil {
		return err
	}
	values, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(msgInvalidRequest))
	}
	f := form.ParseVenue(values)
	if errs := f.Validate(); errs != nil {
		return invalidForm(c, errs, f)
	}

	v := f.Venue(current.ID)
	if err := h.Venues.Update(c.Request().Context(), v); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, errorBody(msgVenueNotFound))
		}
		logFailure(c, err, "update venue failed")
		return c.JSON(http.StatusInternalServerError,
			errorBody("An error occurred. Venue "+f.Name+" could not be updated."))
	}
	h.publish(c, queue.VenueUpdated, v.ID, v.Name)
	return c.Redirect(http.StatusSeeOther, "/venues/"+strconv.FormatUint(v.ID, 10))
}

// venue loads the venue named by :id.  When it returns (nil, nil) the
// 404 response has already been written.
func (h *DirectoryHandler) venue(c echo.Context) (*model.Venue, error) {
	id, ok := pathID(c)
	if !ok {
		return nil, c.JSON(http.StatusNotFound, errorBody(msgVenueNotFound))
	}
	v, err := h.Venues.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return nil, c.JSON(http.StatusNotFound, errorBody(msgVenueNotFound))
	}
	if err != nil {
		return nil, errors.Wrap(err, "get venue")
	}
	return v, nil
}
