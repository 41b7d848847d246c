package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/labstack/echo/v4"
)

// Context keys the auth middleware populates for protected handlers.
const (
	ctxUserID = "userID"
	ctxEmail  = "email"
)

const bearerPrefix = "Bearer "

// requireAuth gates a route behind a valid bearer token. On any failure —
// missing header, wrong scheme, bad signature, expiry — the handler never
// runs and the client gets a 401 envelope. The middleware has no side
// effects on the stores.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return fail(c, http.StatusUnauthorized, "Access token is required!")
		}

		userID, email, err := auth.ParseToken(strings.TrimPrefix(header, bearerPrefix), s.jwtSecret)
		if err != nil {
			return fail(c, http.StatusUnauthorized, "Invalid or expired token!")
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxEmail, email)

		return next(c)
	}
}

// callerID returns the identity the auth middleware resolved.
func callerID(c echo.Context) string {
	id, _ := c.Get(ctxUserID).(string)
	return id
}
