package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/venue-directory/internal/form"
	"github.com/iliyamo/venue-directory/internal/model"
	"github.com/iliyamo/venue-directory/internal/queue"
)

// VenueStore is the persistence the venue handlers need.  It is
// satisfied by *repository.VenueRepo.
type VenueStore interface {
	Create(ctx context.Context, v *model.Venue) error
	GetByID(ctx context.Context, id uint64) (*model.Venue, error)
	Update(ctx context.Context, v *model.Venue) error
	Delete(ctx context.Context, id uint64) error
	ListWithUpcoming(ctx context.Context, now time.Time) ([]model.VenueSummary, error)
	Search(ctx context.Context, term string, now time.Time) ([]model.VenueSummary, error)
	Shows(ctx context.Context, venueID uint64) ([]model.VenueShow, error)
}

// ArtistStore is the persistence the artist handlers need.  It is
// satisfied by *repository.ArtistRepo.
type ArtistStore interface {
	Create(ctx context.Context, a *model.Artist) error
	GetByID(ctx context.Context, id uint64) (*model.Artist, error)
	Update(ctx context.Context, a *model.Artist) error
	Delete(ctx context.Context, id uint64) error
	ListWithUpcoming(ctx context.Context, now time.Time) ([]model.Summary, error)
	Search(ctx context.Context, term string, now time.Time) ([]model.Summary, error)
	Shows(ctx context.Context, artistID uint64) ([]model.ArtistShow, error)
}

// ShowStore is satisfied by *repository.ShowRepo.
type ShowStore interface {
	Create(ctx context.Context, s *model.Show) error
	List(ctx context.Context) ([]model.ShowListing, error)
}

// DirectoryHandler serves every directory page.  All dependencies are
// injected at startup; Now is the clock used to split past and upcoming
// shows and is read once per request.
type DirectoryHandler struct {
	Venues  VenueStore
	Artists ArtistStore
	Shows   ShowStore
	Events  queue.Publisher
	Now     func() time.Time
}

// NewDirectoryHandler constructs a DirectoryHandler and panics if a store
// is nil.  A nil publisher disables events.
func NewDirectoryHandler(venues VenueStore, artists ArtistStore, shows ShowStore, events queue.Publisher) *DirectoryHandler {
	if venues == nil || artists == nil || shows == nil {
		panic("nil store passed to NewDirectoryHandler")
	}
	if events == nil {
		events = queue.NopPublisher{}
	}
	return &DirectoryHandler{
		Venues:  venues,
		Artists: artists,
		Shows:   shows,
		Events:  events,
		Now:     time.Now,
	}
}

func (h *DirectoryHandler) now() time.Time {
	return h.Now().UTC()
}

// publish sends a listing event.  Failures are logged and otherwise
// ignored: the write has already committed.
func (h *DirectoryHandler) publish(c echo.Context, typ string, id uint64, name string) {
	ctx := c.Request().Context()
	ev := queue.NewListingEvent(typ, id, name, h.now())
	if err := h.Events.Publish(ctx, ev); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("type", typ).Uint64("entity_id", id).Msg("publish listing event failed")
	}
}

// pathID parses the :id route parameter.  Anything that is not a
// positive integer identifies nothing.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func errorBody(msg string) echo.Map {
	return echo.Map{"error": msg}
}

// logFailure records the detail of a persistence error.  The detail never
// reaches the client.
func logFailure(c echo.Context, err error, msg string) {
	log.Ctx(c.Request().Context()).Error().Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg(msg)
}

// invalidForm re-renders a rejected submission with its field errors.
// The status stays 200, as for any re-rendered form page.
func invalidForm(c echo.Context, errs form.Errors, f any) error {
	return c.JSON(http.StatusOK, echo.Map{"error": msgInvalidForm, "errors": errs, "form": f})
}

// failedNotice reports a create or delete that could not be saved.  Like
// a successful one it sends the client home, carrying the notice instead
// of the message.
func failedNotice(c echo.Context, notice string) error {
	return c.JSON(http.StatusOK, echo.Map{"error": notice, "redirect": "/"})
}
