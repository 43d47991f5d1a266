package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Home returns the landing payload with links to each section.
func (h *DirectoryHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"links": echo.Map{
			"venues":  "/venues",
			"artists": "/artists",
			"shows":   "/shows",
		},
	})
}

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
