package middleware

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// RequestIDHeader carries the request id back to the client.
const RequestIDHeader = echo.HeaderXRequestID

// RequestLogger assigns every request an id, stores a logger tagged with
// it in the request context and logs the request on entry and exit.
// An id supplied by the client in X-Request-ID is reused.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			requestID := req.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = newRequestID()
			}
			c.Response().Header().Set(RequestIDHeader, requestID)

			ctx := log.With().Str("request_id", requestID).Logger().WithContext(req.Context())
			c.SetRequest(req.WithContext(ctx))

			log.Ctx(ctx).Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", c.RealIP()).
				Msg("incoming request")

			err := next(c)
			if err != nil {
				// Let the error handler write the response so the logged
				// status matches what the client receives.
				c.Error(err)
			}

			log.Ctx(ctx).Info().
				Int("status", c.Response().Status).
				Str("duration", fmt.Sprintf("%dms", time.Since(start).Milliseconds())).
				Msg("request completed")
			return nil
		}
	}
}

func newRequestID() string {
	u, err := uuid.NewRandom()
	if err == nil {
		return u.String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
