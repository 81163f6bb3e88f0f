package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/roomshare/api/internal/middleware"
	"github.com/octobees/roomshare/api/internal/service"
)

func actorFromContext(c echo.Context) (service.Actor, bool) {
	id, ok := middleware.IdentityFromContext(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: id.UserID, Email: id.Email, Role: id.Role}, true
}

func unauthenticated(c echo.Context) error {
	return Error(c, http.StatusUnauthorized, "authentication required")
}
