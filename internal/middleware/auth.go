package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"taskmanager/internal/session"
)

// ContextUserKey is the echo context key under which RequireLogin stores
// the authenticated username.
const ContextUserKey = "user"

// RequireLogin gates a route behind an authenticated session. Anonymous
// requests are redirected to the login page with the originally requested
// path preserved in the next parameter.
func RequireLogin(mgr *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, err := mgr.User(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session lookup failed")
			}
			if username == "" {
				return c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request().RequestURI))
			}
			c.Set(ContextUserKey, username)
			return next(c)
		}
	}
}

// RequireLogout gates a route to anonymous visitors only, so a logged-in
// session cannot re-register or re-login.
func RequireLogout(mgr *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, err := mgr.User(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session lookup failed")
			}
			if username != "" {
				return c.Redirect(http.StatusFound, "/")
			}
			return next(c)
		}
	}
}
