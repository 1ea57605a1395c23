package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/panacare/panacare-api/internal/platform/auth"
)

// Logger emits one structured line per request after the handler chain has
// run. Register it after RequestID so the request_id field is populated;
// the user_id field appears once the auth middleware has resolved a caller.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()
			rid, _ := c.Get("request_id").(string)

			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			evt = evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Str("user_agent", req.UserAgent())
			if userID := auth.UserIDFromContext(req.Context()); userID != "" {
				evt = evt.Str("user_id", userID)
			}
			evt.Msg("request")

			return err
		}
	}
}
