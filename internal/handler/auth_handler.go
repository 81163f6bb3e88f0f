package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/roomshare/api/internal/dto"
	"github.com/octobees/roomshare/api/internal/service"
)

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	users       *service.UserService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService, users *service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, users: users}
}

// Register handles POST /api/auth/register requests.
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "invalid payload")
	}

	resp, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "unable to register user")
	}

	return Success(c, http.StatusCreated, "registration successful", resp)
}

// Login handles POST /api/auth/login requests.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "invalid payload")
	}

	resp, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "unable to authenticate")
	}

	return Success(c, http.StatusOK, "login successful", resp)
}

// Me handles GET /api/users/me.
func (h *AuthHandler) Me(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthenticated(c)
	}

	profile, err := h.users.Profile(c.Request().Context(), actor.UserID)
	if err != nil {
		return respondError(c, err, "failed to load profile")
	}
	return Success(c, http.StatusOK, "profile retrieved", profile)
}
