package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"rite-api/core/cache"
	"rite-api/core/controller"
	"rite-api/core/errors"
	"rite-api/core/utils"
)

const ContextKeyUserID = "user_id"

type Middleware struct {
	jwtSecret string
	cache     cache.Cache
}

func NewMiddleware(jwtSecret string, c cache.Cache) *Middleware {
	return &Middleware{jwtSecret: jwtSecret, cache: c}
}

// AuthMiddleware guards the private organizer routes. It verifies the Bearer
// token, rejects blacklisted (logged out) sessions, and stores the user id
// on the request context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "missing authorization header")
			}
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "authorization header must be a bearer token")
			}

			blacklisted, err := m.cache.IsTokenBlacklisted(c.Request().Context(), tokenString)
			if err != nil {
				return controller.NewErrorResponse(500, errors.ErrInternalServer, "failed to check session")
			}
			if blacklisted {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "session has been revoked")
			}

			claims, err := utils.ValidateAndParseToken(m.jwtSecret, tokenString)
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "invalid or expired token")
			}

			c.Set(ContextKeyUserID, claims.UserID)
			return next(c)
		}
	}
}

// UserID reads the authenticated user id set by AuthMiddleware.
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextKeyUserID).(uuid.UUID)
	return id, ok
}
