package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Manager ties browser cookies to Store records. The cookie carries only
// an opaque session ID; the username lives server-side.
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
}

// NewManager creates a session manager.
func NewManager(store Store, cookieName string, ttl time.Duration) *Manager {
	return &Manager{
		store:      store,
		cookieName: cookieName,
		ttl:        ttl,
	}
}

// User returns the username bound to the request's session, or "" when the
// request carries no cookie or the session has expired.
func (m *Manager) User(c echo.Context) (string, error) {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return "", nil
	}
	rec, err := m.store.Get(c.Request().Context(), cookie.Value)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", nil
	}
	return rec.User, nil
}

// SetUser binds a username to a fresh session and writes the cookie. A new
// session ID is minted on every login so a pre-login cookie can never be
// promoted to an authenticated one.
func (m *Manager) SetUser(c echo.Context, username string) error {
	id := uuid.New().String()
	if err := m.store.Set(c.Request().Context(), id, &Record{User: username}, m.ttl); err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear deletes the session record and expires the cookie.
func (m *Manager) Clear(c echo.Context) error {
	cookie, err := c.Cookie(m.cookieName)
	if err == nil && cookie.Value != "" {
		if err := m.store.Delete(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
