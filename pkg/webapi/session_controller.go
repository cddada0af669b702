package webapi

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/dukahub/dukaweb/pkg/session"
	"github.com/labstack/echo/v4"
)

const ServiceTokenHeader = "X-Duka-Service-Token"

// SessionController exchanges an identity asserted by the upstream login service for a session
// token. Only callers holding the service token may log in; without one, login stays closed.
type SessionController struct {
	sessions     *session.Manager
	serviceToken string
}

func NewSessionController(sessions *session.Manager, serviceToken string) *SessionController {
	return &SessionController{sessions: sessions, serviceToken: serviceToken}
}

type LoginRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type LoginResponse struct {
	Token        string   `json:"token"`
	UserID       string   `json:"user_id"`
	Username     string   `json:"username"`
	Language     string   `json:"language"`
	Capabilities []string `json:"capabilities"`
}

func (c *SessionController) Login(ctx echo.Context) error {
	if c.serviceToken == "" {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "login is disabled: no service token configured")
	}

	given := ctx.Request().Header.Get(ServiceTokenHeader)
	if subtle.ConstantTimeCompare([]byte(given), []byte(c.serviceToken)) != 1 {
		return echo.ErrUnauthorized
	}

	var req LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if strings.TrimSpace(req.UserID) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	s, err := c.sessions.Login(req.UserID, req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusCreated, LoginResponse{
		Token:        s.Token,
		UserID:       s.UserID,
		Username:     s.Username,
		Language:     string(s.PreferredLanguage()),
		Capabilities: s.Capabilities.Strings(),
	})
}

func (c *SessionController) Logout(ctx echo.Context) error {
	s, err := sessionFrom(ctx)
	if err != nil {
		return err
	}

	if err := c.sessions.Logout(s.Token); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.NoContent(http.StatusNoContent)
}
