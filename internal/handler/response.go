package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/roomshare/api/internal/middleware"
)

// APIResponse describes the standard envelope returned by the API.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// Meta carries request correlation and paging details alongside Data.
// Search responses set Cached when the result came from the search cache.
type Meta struct {
	RequestID string `json:"request_id,omitempty"`
	Page      int    `json:"page,omitempty"`
	PerPage   int    `json:"per_page,omitempty"`
	Count     int    `json:"count,omitempty"`
	Cached    bool   `json:"cached,omitempty"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	return respond(c, status, "success", message, data, nil)
}

// SuccessWithMeta is Success for collection endpoints.
func SuccessWithMeta(c echo.Context, status int, message string, data any, meta Meta) error {
	return respond(c, status, "success", message, data, &meta)
}

// Error sends an error response using the shared envelope format. The request
// id is attached so a failing call can be matched to its access log line.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	var meta *Meta
	if rid := middleware.RequestIDFromContext(c); rid != "" {
		meta = &Meta{RequestID: rid}
	}
	return respond(c, status, "error", message, nil, meta)
}

func respond(c echo.Context, status int, outcome, message string, data any, meta *Meta) error {
	if status == 0 {
		status = http.StatusOK
	}
	if meta != nil && meta.RequestID == "" {
		meta.RequestID = middleware.RequestIDFromContext(c)
	}
	return c.JSON(status, APIResponse{
		Status:  outcome,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func searchMeta(count int, cached bool) Meta {
	return Meta{Count: count, Cached: cached}
}
