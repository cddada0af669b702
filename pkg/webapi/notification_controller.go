package webapi

import (
	"github.com/dukahub/dukaweb/pkg/notify"
	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	hub *notify.Hub
}

func NewNotificationController(hub *notify.Hub) *NotificationController {
	return &NotificationController{hub: hub}
}

// Stream holds the connection open and writes the session user's notifications as SSE events.
func (c *NotificationController) Stream(ctx echo.Context) error {
	s, err := sessionFrom(ctx)
	if err != nil {
		return err
	}

	c.hub.ServeSSE(ctx.Response(), ctx.Request(), s.UserID)
	return nil
}
