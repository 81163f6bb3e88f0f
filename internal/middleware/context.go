package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextKeyIdentity  = "identity"
	contextKeyRequestID = "request_id"
)

// Identity is the authenticated caller decoded from a bearer token.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// SetIdentity stores the caller for downstream handlers.
func SetIdentity(c echo.Context, id Identity) {
	c.Set(contextKeyIdentity, id)
}

// IdentityFromContext returns the caller stored by JWT, if any.
func IdentityFromContext(c echo.Context) (Identity, bool) {
	id, ok := c.Get(contextKeyIdentity).(Identity)
	if !ok || id.UserID == uuid.Nil {
		return Identity{}, false
	}
	return id, true
}

// RequestIDFromContext extracts the request identifier if available.
func RequestIDFromContext(c echo.Context) string {
	if val, ok := c.Get(contextKeyRequestID).(string); ok {
		return val
	}
	return ""
}
