package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/roomshare/api/internal/dto"
	"github.com/octobees/roomshare/api/internal/service"
)

// RoomRequestsHandler exposes the roommate request endpoints.
type RoomRequestsHandler struct {
	requests *service.RoomRequestsService
}

// NewRoomRequestsHandler constructs a handler instance.
func NewRoomRequestsHandler(requests *service.RoomRequestsService) *RoomRequestsHandler {
	return &RoomRequestsHandler{requests: requests}
}

// Create handles POST /api/room-requests.
func (h *RoomRequestsHandler) Create(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthenticated(c)
	}

	var req dto.CreateRoomRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "invalid payload")
	}

	created, err := h.requests.Create(c.Request().Context(), actor, req)
	if err != nil {
		return respondError(c, err, "failed to create room request")
	}
	return Success(c, http.StatusCreated, "room request created", created)
}

// List handles GET /api/room-requests.
func (h *RoomRequestsHandler) List(c echo.Context) error {
	records, err := h.requests.List(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to fetch room requests")
	}
	return Success(c, http.StatusOK, "room requests retrieved", records)
}

// Search handles GET /api/room-requests/search. Gender is the category filter
// and budget the range spec.
func (h *RoomRequestsHandler) Search(c echo.Context) error {
	resp, err := h.requests.Search(c.Request().Context(), dto.SearchParams{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("gender"),
		Range:    c.QueryParam("budget"),
		Sort:     c.QueryParam("sort"),
	})
	if err != nil {
		return respondError(c, err, "failed to search room requests")
	}
	return SuccessWithMeta(c, http.StatusOK, "room requests retrieved", resp, searchMeta(resp.Count, resp.Cached))
}

// Delete handles DELETE /api/room-requests/:id.
func (h *RoomRequestsHandler) Delete(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.requests.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return respondError(c, err, "failed to delete room request")
	}
	return Success(c, http.StatusOK, "room request deleted", nil)
}
