package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/octobees/roomshare/api/internal/config"
	"github.com/octobees/roomshare/api/internal/service"
)

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(contextKeyRequestID, "rid-123")

	err := Logging(logger)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 || entries[0].ContextMap()["request_id"] != "rid-123" {
		t.Fatalf("expected access log entry with request id, got %+v", entries)
	}

	// errors are rendered, logged at error level and propagated
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set(contextKeyRequestID, "rid-456")
	expected := errors.New("boom")
	err = Logging(logger)(func(c echo.Context) error {
		return expected
	})(c)
	if !errors.Is(err, expected) {
		t.Fatalf("expected error to bubble up")
	}
	errorEntries := logs.FilterLevelExact(zap.ErrorLevel).All()
	if len(errorEntries) != 1 || errorEntries[0].ContextMap()["request_id"] != "rid-456" {
		t.Fatalf("expected error entry for rid-456, got %+v", errorEntries)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 from error handler, got %d", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	cfg := config.RateLimitConfig{Requests: 1, Interval: time.Second}
	mw := RateLimiter(cfg)

	e := echo.New()
	nextCalls := 0
	next := func(c echo.Context) error {
		nextCalls++
		return c.NoContent(http.StatusOK)
	}

	serve := func(mw echo.MiddlewareFunc, remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/listings/search", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		_ = mw(next)(e.NewContext(req, rec))
		return rec.Code
	}

	if code := serve(mw, "10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", code)
	}
	if code := serve(mw, "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("expected second request rejected, got %d", code)
	}
	if code := serve(mw, "10.0.0.2:1234"); code != http.StatusOK {
		t.Fatalf("expected other client to have its own bucket, got %d", code)
	}

	// zero config should behave as passthrough
	disabled := RateLimiter(config.RateLimitConfig{})
	for i := 0; i < 3; i++ {
		if code := serve(disabled, "10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("expected passthrough when limiter disabled")
		}
	}
	if nextCalls != 5 {
		t.Fatalf("expected 5 handler invocations, got %d", nextCalls)
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiters := newClientLimiters(config.RateLimitConfig{Requests: 2, Interval: time.Minute}, func() time.Time { return clock })

	for i := 0; i < 500; i++ {
		limiters.allow(fmt.Sprintf("10.1.%d.%d", i/256, i%256))
	}
	if got := limiters.size(); got != 500 {
		t.Fatalf("expected 500 tracked clients, got %d", got)
	}

	limiters.allow("10.9.9.9")
	limiters.allow("10.9.9.9")
	if limiters.allow("10.9.9.9") {
		t.Fatalf("expected busy client to be limited")
	}

	clock = clock.Add(30 * time.Second)
	limiters.allow("10.9.9.9")
	if got := limiters.size(); got != 501 {
		t.Fatalf("clients must survive until idle for a full interval, got %d", got)
	}

	clock = clock.Add(45 * time.Second)
	if !limiters.allow("10.9.9.9") {
		t.Fatalf("expected refilled bucket to allow")
	}
	if got := limiters.size(); got != 1 {
		t.Fatalf("expected idle clients to be evicted, got %d", got)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	metrics := service.NewMetricsService()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/listings/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/listings/:id")

	if err := Metrics(metrics)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count, err := testutil.GatherAndCount(metrics.Registry(), "http_requests_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one request series, got %d", count)
	}

	expected := `
# HELP http_requests_total Total number of HTTP requests
# TYPE http_requests_total counter
http_requests_total{method="GET",path="/api/listings/:id",status="204"} 1
`
	if err := testutil.GatherAndCompare(metrics.Registry(), strings.NewReader(expected), "http_requests_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	mw := RequireRole("admin", "broker")

	t.Run("missing role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = mw(func(c echo.Context) error { return nil })(c)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("incorrect role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		SetIdentity(c, Identity{UserID: uuid.New(), Role: "user"})

		_ = mw(func(c echo.Context) error { return nil })(c)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		SetIdentity(c, Identity{UserID: uuid.New(), Role: "broker"})

		called := false
		if err := mw(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !called {
			t.Fatalf("expected handler to run")
		}
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	handler := RequestID()

	t.Run("reuse incoming header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "incoming")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(func(c echo.Context) error {
			if RequestIDFromContext(c) != "incoming" {
				t.Fatalf("expected request id to be stored")
			}
			return c.NoContent(http.StatusOK)
		})(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rec.Header().Get("X-Request-ID") != "incoming" {
			t.Fatalf("expected response header to propagate request id")
		}
	})

	for name, incoming := range map[string]string{
		"header injection": "abc\r\nX-Evil: 1",
		"spaces":           "two words",
		"too long":         strings.Repeat("a", maxRequestIDLength+1),
	} {
		t.Run("replace "+name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header["X-Request-Id"] = []string{incoming}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handler(func(c echo.Context) error {
				rid := RequestIDFromContext(c)
				if rid == incoming || uuid.Validate(rid) != nil {
					t.Fatalf("expected a generated id, got %q", rid)
				}
				return c.NoContent(http.StatusOK)
			})(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	t.Run("generate when missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(func(c echo.Context) error {
			rid := RequestIDFromContext(c)
			if rid == "" {
				t.Fatalf("expected generated request id")
			}
			return c.NoContent(http.StatusOK)
		})(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("expected response header set")
		}
	})
}
