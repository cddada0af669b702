package cmd

import (
	"github.com/dukahub/dukaweb/pkg/apiv1"
	"github.com/dukahub/dukaweb/pkg/capability"
	"github.com/dukahub/dukaweb/pkg/datalist"
	"github.com/dukahub/dukaweb/pkg/dukadb/stor"
	"github.com/dukahub/dukaweb/pkg/notify"
	"github.com/dukahub/dukaweb/pkg/session"
	"github.com/dukahub/dukaweb/pkg/translate"
	"github.com/dukahub/dukaweb/pkg/views"
	"github.com/dukahub/dukaweb/pkg/webapi"
	"github.com/dukahub/dukaweb/pkg/webapi/apimiddleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type RouteDependencies struct {
	e            *echo.Echo
	api          apiv1.API
	stors        *stor.Stors
	sessions     *session.Manager
	translator   *translate.Translator
	hub          *notify.Hub
	registry     *views.Registry
	catalog      *datalist.Catalog
	logLevel     string
	serviceToken string
}

func setupRoutes(deps RouteDependencies) {
	deps.e.Use(middleware.Recover())

	sessionController := webapi.NewSessionController(deps.sessions, deps.serviceToken)
	deps.e.POST("/sessions", sessionController.Login)

	g := deps.e.Group("", apimiddleware.SessionAuth(apimiddleware.SessionConfig{
		GetSessionByToken: deps.sessions.GetSessionByToken,
	}))

	g.DELETE("/sessions", sessionController.Logout)

	detailController := webapi.NewDetailController(deps.api, deps.registry, deps.translator, deps.hub)
	g.GET("/views/:entity", detailController.ShowEntity)

	datalistController := webapi.NewDatalistController(deps.api, deps.catalog, deps.translator)
	g.GET("/datalists/:name", datalistController.Search)
	g.POST("/datalists/:name/resolve", datalistController.Resolve)

	translateController := webapi.NewTranslateController(deps.translator, deps.sessions)
	g.GET("/translate", translateController.Translate)
	g.PUT("/preferences/language", translateController.SetLanguage)

	entityController := webapi.NewEntityController(deps.api, deps.translator, deps.hub)
	g.GET("/entities/:schema", entityController.Index)
	g.POST("/entities/:schema", entityController.Create)
	g.PUT("/entities/:schema", entityController.Update)
	g.DELETE("/entities/:schema", entityController.Delete)

	notificationController := webapi.NewNotificationController(deps.hub)
	g.GET("/notifications", notificationController.Stream)

	roleController := webapi.NewRoleController(deps.stors.RoleStor, deps.sessions, deps.translator)
	g.GET("/roles", roleController.Index)
	g.POST("/roles", roleController.Create)
	g.PUT("/roles/:id/permissions", roleController.SetPermissions)
	g.PUT("/users/:id/role", roleController.AssignToUser)

	logController := webapi.NewLogController(deps.logLevel)
	admin := g.Group("/admin", apimiddleware.RequireCapability(capability.For(capability.Edit, capability.Role)))
	admin.GET("/logging", logController.ShowCurrentLogging)
	admin.POST("/logging", logController.SetLogging)
}
