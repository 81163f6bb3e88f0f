package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/roomshare/api/internal/repository"
	"github.com/octobees/roomshare/api/internal/search"
	"github.com/octobees/roomshare/api/internal/service"
)

var errInvalidPayload = errors.New("invalid payload")

// bindAndValidate decodes the request body into dst and runs struct validation.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errInvalidPayload
	}
	return c.Validate(dst)
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognised is
// reported as a 500 with the fallback message.
func respondError(c echo.Context, err error, fallback string) error {
	var (
		validationErr service.ValidationError
		fieldErr      *FieldValidationError
		filterErr     *search.InvalidFilterValueError
	)

	switch {
	case errors.Is(err, errInvalidPayload):
		return Error(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &validationErr):
		return Error(c, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &fieldErr):
		return Error(c, http.StatusBadRequest, fieldErr.Error())
	case errors.As(err, &filterErr):
		return Error(c, http.StatusBadRequest, filterErr.Error())
	case errors.Is(err, service.ErrInvalidID):
		return Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return Error(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrForbidden):
		return Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrEmailAlreadyExists), errors.Is(err, repository.ErrEmailDuplicate):
		return Error(c, http.StatusConflict, "email already exists")
	case errors.Is(err, repository.ErrPlanNameDuplicate):
		return Error(c, http.StatusConflict, "plan name already exists")
	case errors.Is(err, repository.ErrListingDuplicate):
		return Error(c, http.StatusConflict, "listing already exists")
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrListingNotFound),
		errors.Is(err, repository.ErrRoomRequestNotFound),
		errors.Is(err, repository.ErrPlanNotFound):
		return Error(c, http.StatusNotFound, err.Error())
	default:
		return Error(c, http.StatusInternalServerError, fallback)
	}
}
