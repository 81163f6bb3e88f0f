package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/roomshare/api/internal/service"
)

// AdminUploadHandler handles CSV ingestion for administrators.
type AdminUploadHandler struct {
	listings *service.ListingsService
}

// NewAdminUploadHandler wires a handler backed by the listings service.
func NewAdminUploadHandler(listings *service.ListingsService) *AdminUploadHandler {
	return &AdminUploadHandler{listings: listings}
}

// ImportListings handles POST /api/admin/listings/import requests. Imported
// rows are owned by the calling administrator.
func (h *AdminUploadHandler) ImportListings(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthenticated(c)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "missing csv file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to open file")
	}
	defer file.Close()

	summary, err := h.listings.ImportListingsCSV(c.Request().Context(), actor, file)
	if err != nil {
		return respondError(c, err, "failed to process csv")
	}

	return Success(c, http.StatusOK, "listings CSV processed", summary)
}
