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
	msgArtistNotFound = "artist not found"
	msgArtistDeleted  = "Artist successfully deleted"
)

// ListArtists handles GET /artists and returns every artist ordered by id.
func (h *DirectoryHandler) ListArtists(c echo.Context) error {
	rows, err := h.Artists.ListWithUpcoming(c.Request().Context(), h.now())
	if err != nil {
		return errors.Wrap(err, "list artists")
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": rows})
}

// SearchArtists handles POST /artists/search.
func (h *DirectoryHandler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")
	rows, err := h.Artists.Search(c.Request().Context(), term, h.now())
	if err != nil {
		return errors.Wrap(err, "search artists")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"search_term": term,
		"results":     model.NewSearchResult(rows),
	})
}

// ShowArtist handles GET /artists/:id.
func (h *DirectoryHandler) ShowArtist(c echo.Context) error {
	a, err := h.artist(c)
	if err != nil || a == nil {
		return err
	}
	shows, err := h.Artists.Shows(c.Request().Context(), a.ID)
	if err != nil {
		return errors.Wrap(err, "artist shows")
	}
	return c.JSON(http.StatusOK, directory.ArtistDetail(*a, shows, h.now()))
}

// NewArtistForm handles GET /artists/create.
func (h *DirectoryHandler) NewArtistForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"form":    form.ArtistForm{Genres: []string{}},
		"choices": form.DefaultChoices(),
	})
}

// CreateArtist handles POST /artists/create.
func (h *DirectoryHandler) CreateArtist(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(msgInvalidRequest))
	}
	f := form.ParseArtist(values)
	if errs := f.Validate(); errs != nil {
		return invalidForm(c, errs, f)
	}

	a := f.Artist(0)
	if err := h.Artists.Create(c.Request().Context(), a); err != nil {
		logFailure(c, err, "create artist failed")
		return failedNotice(c, "An error occurred. Artist "+f.Name+" could not be listed.")
	}
	h.publish(c, queue.ArtistCreated, a.ID, a.Name)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Artist " + a.Name + " was successfully listed!",
		"artist":  a,
	})
}

// DeleteArtist handles POST /artists/:id/delete.
func (h *DirectoryHandler) DeleteArtist(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody(msgArtistNotFound))
	}
	if err := h.Artists.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, errorBody(msgArtistNotFound))
		}
		logFailure(c, err, "delete artist failed")
		return failedNotice(c, msgDeleteFailed)
	}
	h.publish(c, queue.ArtistDeleted, id, "")
	return c.JSON(http.StatusOK, echo.Map{"message": msgArtistDeleted, "redirect": "/"})
}

// EditArtistForm handles GET /artists/:id/edit.
func (h *DirectoryHandler) EditArtistForm(c echo.Context) error {
	a, err := h.artist(c)
	if err != nil || a == nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"form":    form.ArtistFormFrom(*a),
		"artist":  a,
		"choices": form.DefaultChoices(),
	})
}

// EditArtist handles POST /artists/:id/edit.
func (h *DirectoryHandler) EditArtist(c echo.Context) error {
	current, err := h.artist(c)
	if err != nil || current == nil {
		return err
	}
	values, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(msgInvalidRequest))
	}
	f := form.ParseArtist(values)
	if errs := f.Validate(); errs != nil {
		return invalidForm(c, errs, f)
	}

	a := f.Artist(current.ID)
	if err := h.Artists.Update(c.Request().Context(), a); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, errorBody(msgArtistNotFound))
		}
		logFailure(c, err, "update artist failed")
		return c.JSON(http.StatusInternalServerError,
			errorBody("An error occurred. Artist "+f.Name+" could not be updated."))
	}
	h.publish(c, queue.ArtistUpdated, a.ID, a.Name)
	return c.Redirect(http.StatusSeeOther, "/artists/"+strconv.FormatUint(a.ID, 10))
}

func (h *DirectoryHandler) artist(c echo.Context) (*model.Artist, error) {
	id, ok := pathID(c)
	if !ok {
		return nil, c.JSON(http.StatusNotFound, errorBody(msgArtistNotFound))
	}
	a, err := h.Artists.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return nil, c.JSON(http.StatusNotFound, errorBody(msgArtistNotFound))
	}
	if err != nil {
		return nil, errors.Wrap(err, "get artist")
	}
	return a, nil
}
