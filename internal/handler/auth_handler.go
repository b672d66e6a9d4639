package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"taskmanager/internal/errors"
	"taskmanager/internal/metrics"
	"taskmanager/internal/service"
	"taskmanager/internal/session"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService service.AuthService
	sessions    *session.Manager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// RegisterRequest represents a registration form submission.
type RegisterRequest struct {
	Username       string `form:"username" validate:"required"`
	Password       string `form:"password" validate:"required"`
	PasswordRepeat string `form:"password-repeat"`
}

// LoginRequest represents a login form submission.
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// RegisterForm answers the registration page fetch. Rendering is the
// client's concern; there is no data to hand it.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// Register creates a user and logs it in. Conflicts answer with redirects,
// matching the form flow: a taken username points at the login page, a
// password mismatch back at registration.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.PasswordRepeat)
	if err != nil {
		switch err {
		case service.ErrUsernameTaken:
			metrics.IncrementRegistration("duplicate")
			return c.Redirect(http.StatusFound, "/login")
		case service.ErrPasswordMismatch:
			metrics.IncrementRegistration("mismatch")
			return c.Redirect(http.StatusFound, "/register")
		default:
			metrics.IncrementRegistration("error")
			return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
				Error: "failed to register user",
				Code:  "REGISTRATION_FAILED",
			})
		}
	}

	if err := h.sessions.SetUser(c, user.Username); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to start session")
	}
	metrics.IncrementRegistration("success")
	return c.Redirect(http.StatusFound, "/")
}

// LoginForm answers the login page fetch.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// Login authenticates a user. An unknown username redirects to
// registration, a wrong password back to login; neither carries an error
// payload the caller could distinguish.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch err {
		case service.ErrUnknownUsername:
			metrics.IncrementLogin("unknown_user")
			return c.Redirect(http.StatusFound, "/register")
		case service.ErrWrongPassword:
			metrics.IncrementLogin("wrong_password")
			return c.Redirect(http.StatusFound, "/login")
		default:
			metrics.IncrementLogin("error")
			return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
				Error: "failed to login",
				Code:  "LOGIN_FAILED",
			})
		}
	}

	if err := h.sessions.SetUser(c, user.Username); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to start session")
	}
	metrics.IncrementLogin("success")
	return c.Redirect(http.StatusFound, nextTarget(c))
}

// Logout clears the whole session then sends the visitor home, where the
// login gate picks them up.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Clear(c); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to clear session")
	}
	return c.Redirect(http.StatusFound, "/")
}

// nextTarget returns the post-login redirect target preserved by the login
// gate. Only same-site paths are honored.
func nextTarget(c echo.Context) string {
	next := c.QueryParam("next")
	if next == "" {
		next = c.FormValue("next")
	}
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
