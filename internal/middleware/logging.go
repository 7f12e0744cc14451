package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stayloop/hotel-booking/internal/observability"
)

// RequestLogger emits one structured log line per request and feeds the
// request counter and latency histogram. Route is the registered pattern,
// not the raw path, so metric cardinality stays bounded.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			dur := time.Since(start)
			observability.ObserveHTTP(c.Path(), req.Method, status, dur)

			ev := log.Info()
			if status >= 500 {
				ev = log.Error()
			} else if status >= 400 {
				ev = log.Warn()
			}
			ev.Str("method", req.Method).
				Str("route", c.Path()).
				Str("remote", c.RealIP()).
				Int("status", status).
				Dur("duration", dur).
				Msg("request")
			return nil
		}
	}
}
