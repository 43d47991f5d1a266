package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/venue-directory/internal/handler"
	"github.com/iliyamo/venue-directory/internal/middleware"
)

// New builds the echo instance with the error handler, the request
// logger, panic recovery and any extra middleware (such as the rate
// limiter), then registers every route.
func New(h *handler.DirectoryHandler, mws ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(mws...)

	RegisterRoutes(e)
	RegisterDirectory(e, h)
	return e
}

// RegisterRoutes registers routes that do not touch the directory.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to check the process is up.
	e.GET("/healthz", handler.Health)
}

// RegisterDirectory registers the venue, artist and show pages.  Static
// segments such as /venues/create take precedence over /venues/:id.
func RegisterDirectory(e *echo.Echo, h *handler.DirectoryHandler) {
	e.GET("/", h.Home)

	// ---- Venues ----
	v := e.Group("/venues")
	v.GET("", h.ListVenues)
	v.POST("/search", h.SearchVenues)
	v.GET("/create", h.NewVenueForm)
	v.POST("/create", h.CreateVenue)
	v.GET("/:id", h.ShowVenue)
	v.POST("/:id/delete", h.DeleteVenue)
	v.GET("/:id/edit", h.EditVenueForm)
	v.POST("/:id/edit", h.EditVenue)

	// ---- Artists ----
	a := e.Group("/artists")
	a.GET("", h.ListArtists)
	a.POST("/search", h.SearchArtists)
	a.GET("/create", h.NewArtistForm)
	a.POST("/create", h.CreateArtist)
	a.GET("/:id", h.ShowArtist)
	a.POST("/:id/delete", h.DeleteArtist)
	a.GET("/:id/edit", h.EditArtistForm)
	a.POST("/:id/edit", h.EditArtist)

	// ---- Shows ----
	s := e.Group("/shows")
	s.GET("", h.ListShows)
	s.GET("/create", h.NewShowForm)
	s.POST("/create", h.CreateShow)
}
