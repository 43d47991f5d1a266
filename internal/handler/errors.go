package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// HTTPErrorHandler renders every error that reaches echo as an
// {"error": ...} envelope.  Unmatched routes give 404, a wrong method
// 405 and anything else 500.  Details of server errors are logged only.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = http.StatusText(code)
		if s, ok := he.Message.(string); ok && code < http.StatusInternalServerError {
			msg = s
		}
	}
	switch code {
	case http.StatusNotFound:
		msg = "not found"
	case http.StatusMethodNotAllowed:
		msg = "method not allowed"
	}

	if code >= http.StatusInternalServerError {
		log.Ctx(c.Request().Context()).Error().Err(err).
			Str("method", c.Request().Method).
			Str("uri", c.Request().RequestURI).
			Msg("request failed")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, echo.Map{"error": msg})
	}
	if err != nil {
		log.Ctx(c.Request().Context()).Error().Err(err).Msg("write error response")
	}
}
