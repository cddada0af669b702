package apimiddleware

import (
	"fmt"
	"net/http"

	"github.com/dukahub/dukaweb/pkg/capability"
	"github.com/dukahub/dukaweb/pkg/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	DefaultTokenHeader = "X-Duka-Token"
	DefaultTokenQuery  = "token"
	SessionKey         = "session"
)

type GetSessionByTokenFN func(string) (*session.Session, error)

type SessionConfig struct {
	Skipper           middleware.Skipper
	Header            string
	QueryParam        string
	GetSessionByToken GetSessionByTokenFN
}

// SessionAuth resolves the request's session token and stores the session under SessionKey.
func SessionAuth(config SessionConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	if config.Header == "" {
		config.Header = DefaultTokenHeader
	}

	if config.QueryParam == "" {
		config.QueryParam = DefaultTokenQuery
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			token, err := tokenFromRequest(config, c)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}

			s, err := config.GetSessionByToken(token)
			switch {
			case err != nil:
				return echo.ErrUnauthorized
			case s == nil:
				return echo.ErrUnauthorized
			default:
				c.Set(SessionKey, s)
				return next(c)
			}
		}
	}
}

func tokenFromRequest(config SessionConfig, c echo.Context) (string, error) {
	if value := c.Request().Header.Get(config.Header); value != "" {
		return value, nil
	}

	if value := c.QueryParam(config.QueryParam); value != "" {
		return value, nil
	}

	return "", fmt.Errorf("no session token as header '%s' or query param '%s'", config.Header, config.QueryParam)
}

// SessionFrom returns the session SessionAuth stored, or nil.
func SessionFrom(c echo.Context) *session.Session {
	s, _ := c.Get(SessionKey).(*session.Session)
	return s
}

// RequireCapability rejects requests whose session lacks c. It must run after SessionAuth.
func RequireCapability(c capability.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if !SessionFrom(ctx).Can(c) {
				return echo.ErrForbidden
			}

			return next(ctx)
		}
	}
}
