package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratemystore/rating-system/internal/api/middleware"
)

// ctxIdentity extracts the authenticated identity injected by the Auth
// middleware and fast-fails before any service call: a missing user id means
// the middleware did not run (or the token carried no subject) and the
// request must not proceed.
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get(middleware.CtxRole).(string)
	return userID, role, nil
}
