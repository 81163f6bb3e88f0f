package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/roomshare/api/internal/service"
)

// Metrics records request count and latency labelled by route template.
func Metrics(metrics *service.MetricsService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if metrics == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			metrics.ObserveHTTPRequest(c.Request().Method, path, c.Response().Status, time.Since(start))
			return err
		}
	}
}
