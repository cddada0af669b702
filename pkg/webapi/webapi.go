// Package webapi holds the echo controllers of dukawebd.
package webapi

import (
	"net/http"

	"github.com/dukahub/dukaweb/pkg/apiv1"
	"github.com/dukahub/dukaweb/pkg/session"
	"github.com/dukahub/dukaweb/pkg/webapi/apimiddleware"
	"github.com/labstack/echo/v4"
)

func sessionFrom(c echo.Context) (*session.Session, error) {
	s := apimiddleware.SessionFrom(c)
	if s == nil {
		return nil, echo.ErrUnauthorized
	}

	return s, nil
}

func noAccess(tr func(string) string) error {
	return echo.NewHTTPError(http.StatusForbidden, tr("no access"))
}

// backendError surfaces the backend's own message, the same text a detail page would notify.
func backendError(err error) error {
	return echo.NewHTTPError(http.StatusBadGateway, apiv1.UserMessage(err))
}
