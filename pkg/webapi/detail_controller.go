package webapi

import (
	"net/http"

	"github.com/dukahub/dukaweb/pkg/apiv1"
	"github.com/dukahub/dukaweb/pkg/capability"
	"github.com/dukahub/dukaweb/pkg/notify"
	"github.com/dukahub/dukaweb/pkg/translate"
	"github.com/dukahub/dukaweb/pkg/views"
	"github.com/labstack/echo/v4"
)

type DetailController struct {
	api        apiv1.API
	registry   *views.Registry
	translator *translate.Translator
	hub        *notify.Hub
}

func NewDetailController(api apiv1.API, registry *views.Registry, translator *translate.Translator, hub *notify.Hub) *DetailController {
	return &DetailController{
		api:        api,
		registry:   registry,
		translator: translator,
		hub:        hub,
	}
}

type DetailResponse struct {
	View          *views.View           `json:"view,omitempty"`
	Navigate      string                `json:"navigate,omitempty"`
	Notifications []notify.Notification `json:"notifications,omitempty"`
}

// ShowEntity runs one detail screen for the request: mount, render, unmount. Navigation the screen
// asks for comes back as the navigate field.
func (c *DetailController) ShowEntity(ctx echo.Context) error {
	s, err := sessionFrom(ctx)
	if err != nil {
		return err
	}

	e, ok := capability.ParseEntity(ctx.Param("entity"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no such entity")
	}

	page, ok := c.registry.Lookup(e)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no such entity")
	}

	nav := &views.NavRecorder{}
	notifier := c.hub.For(s.UserID)
	detail := views.NewDetail(page, views.Deps{
		API:          c.api,
		Capabilities: s,
		Navigator:    nav,
		Notifier:     notifier,
		Translate:    c.translator.For(s),
	})
	defer detail.Unmount()

	switch detail.Mount(ctx.Request().Context(), views.NavState{ID: ctx.QueryParam("id")}) {
	case views.Denied:
		return ctx.JSON(http.StatusForbidden, DetailResponse{Navigate: nav.Target, Notifications: notifier.Sent()})
	case views.WentBack:
		return ctx.JSON(http.StatusOK, DetailResponse{Navigate: "back"})
	case views.Failed:
		return ctx.JSON(http.StatusBadGateway, DetailResponse{Notifications: notifier.Sent()})
	case views.Abandoned:
		// The client is gone.
		return nil
	}

	view, ok := detail.Render()
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "nothing to render")
	}

	return ctx.JSON(http.StatusOK, DetailResponse{View: &view, Notifications: notifier.Sent()})
}
