package webapi

import (
	"encoding/json"
	"net/http"

	"github.com/dukahub/dukaweb/pkg/apiv1"
	"github.com/dukahub/dukaweb/pkg/capability"
	"github.com/dukahub/dukaweb/pkg/clog"
	"github.com/dukahub/dukaweb/pkg/notify"
	"github.com/dukahub/dukaweb/pkg/session"
	"github.com/dukahub/dukaweb/pkg/translate"
	"github.com/labstack/echo/v4"
)

// EntityController passes create/read/update/delete through to the backend once the session holds
// the matching capability for the schema.
type EntityController struct {
	api        apiv1.API
	translator *translate.Translator
	hub        *notify.Hub
}

func NewEntityController(api apiv1.API, translator *translate.Translator, hub *notify.Hub) *EntityController {
	return &EntityController{api: api, translator: translator, hub: hub}
}

func (c *EntityController) authorize(ctx echo.Context, action capability.Action) (*session.Session, capability.Entity, error) {
	s, err := sessionFrom(ctx)
	if err != nil {
		return nil, "", err
	}

	e, ok := capability.ParseEntity(ctx.Param("schema"))
	if !ok {
		return nil, "", echo.NewHTTPError(http.StatusNotFound, "no such schema")
	}

	if !s.Can(capability.For(action, e)) {
		return nil, "", noAccess(c.translator.For(s))
	}

	return s, e, nil
}

// Index answers GET /entities/:schema. With ?id= it reads one record (view capability), with
// ?count=true it counts, otherwise it lists. condition and sort are JSON query params.
func (c *EntityController) Index(ctx echo.Context) error {
	action := capability.List
	if ctx.QueryParam("id") != "" {
		action = capability.View
	}

	_, e, err := c.authorize(ctx, action)
	if err != nil {
		return err
	}

	q := apiv1.Query{Schema: string(e), JoinForeignKeys: true}
	if err := decodeQueryParam(ctx, "condition", &q.Condition); err != nil {
		return err
	}

	if err := decodeQueryParam(ctx, "sort", &q.Sort); err != nil {
		return err
	}

	rctx := ctx.Request().Context()
	switch {
	case ctx.QueryParam("id") != "":
		record, err := c.api.Read(rctx, apiv1.ByID(string(e), ctx.QueryParam("id")))
		if err != nil {
			return backendError(err)
		}
		return ctx.JSON(http.StatusOK, record)

	case ctx.QueryParam("count") == "true":
		count, err := c.api.CountAll(rctx, q)
		if err != nil {
			return backendError(err)
		}
		return ctx.JSON(http.StatusOK, map[string]int{"count": count})

	default:
		records, err := c.api.ListAll(rctx, q)
		if err != nil {
			return backendError(err)
		}
		return ctx.JSON(http.StatusOK, records)
	}
}

func (c *EntityController) Create(ctx echo.Context) error {
	s, e, err := c.authorize(ctx, capability.Create)
	if err != nil {
		return err
	}

	// BindBody keeps path params out of the document.
	var doc apiv1.Record
	if err := (&echo.DefaultBinder{}).BindBody(ctx, &doc); err != nil {
		return err
	}

	created, err := c.api.Create(ctx.Request().Context(), string(e), doc)
	if err != nil {
		return c.failed(s, err)
	}

	c.hub.For(s.UserID).Notify(notify.Success, c.translator.For(s)("saved"))
	return ctx.JSON(http.StatusCreated, created)
}

type UpdateRequest struct {
	Condition apiv1.Condition `json:"condition"`
	Document  apiv1.Record    `json:"document"`
	// Restore un-archives the matched records and needs the restore capability instead of edit.
	Restore bool `json:"restore"`
}

func (c *EntityController) Update(ctx echo.Context) error {
	var req UpdateRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	action := capability.Edit
	if req.Restore {
		action = capability.Restore
		req.Document = apiv1.Record{"visible": true}
	}

	s, e, err := c.authorize(ctx, action)
	if err != nil {
		return err
	}

	if len(req.Condition) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "condition is required")
	}

	updated, err := c.api.Update(ctx.Request().Context(), string(e), req.Condition, req.Document)
	if err != nil {
		return c.failed(s, err)
	}

	c.hub.For(s.UserID).Notify(notify.Success, c.translator.For(s)("saved"))
	return ctx.JSON(http.StatusOK, updated)
}

func (c *EntityController) Delete(ctx echo.Context) error {
	s, e, err := c.authorize(ctx, capability.Delete)
	if err != nil {
		return err
	}

	var req struct {
		Condition apiv1.Condition `json:"condition"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if len(req.Condition) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "condition is required")
	}

	if err := c.api.Delete(ctx.Request().Context(), string(e), req.Condition); err != nil {
		return c.failed(s, err)
	}

	c.hub.For(s.UserID).Notify(notify.Success, c.translator.For(s)("deleted"))
	return ctx.NoContent(http.StatusNoContent)
}

func (c *EntityController) failed(s *session.Session, err error) error {
	clog.UsingCtx("webapi").WithField("user_id", s.UserID).Warnf("backend call failed: %s", err)
	c.hub.For(s.UserID).Notify(notify.Error, apiv1.UserMessage(err))
	return backendError(err)
}

func decodeQueryParam(ctx echo.Context, name string, into any) error {
	value := ctx.QueryParam(name)
	if value == "" {
		return nil
	}

	if err := json.Unmarshal([]byte(value), into); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+": "+err.Error())
	}

	return nil
}
