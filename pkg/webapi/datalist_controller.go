package webapi

import (
	"net/http"

	"github.com/dukahub/dukaweb/pkg/apiv1"
	"github.com/dukahub/dukaweb/pkg/datalist"
	"github.com/dukahub/dukaweb/pkg/session"
	"github.com/dukahub/dukaweb/pkg/translate"
	"github.com/labstack/echo/v4"
)

type DatalistController struct {
	api        apiv1.API
	catalog    *datalist.Catalog
	translator *translate.Translator
}

func NewDatalistController(api apiv1.API, catalog *datalist.Catalog, translator *translate.Translator) *DatalistController {
	return &DatalistController{api: api, catalog: catalog, translator: translator}
}

func (c *DatalistController) resolverFor(ctx echo.Context) (*datalist.Resolver, *session.Session, error) {
	s, err := sessionFrom(ctx)
	if err != nil {
		return nil, nil, err
	}

	tr := c.translator.For(s)
	cfg, required, ok := c.catalog.Lookup(ctx.Param("name"))
	if !ok {
		return nil, nil, echo.NewHTTPError(http.StatusNotFound, "no such datalist")
	}

	if !s.Can(required) {
		return nil, nil, noAccess(tr)
	}

	return datalist.NewResolver(cfg, c.api, tr), s, nil
}

// Search answers GET /datalists/:name?q=. Debouncing is the browser's job.
func (c *DatalistController) Search(ctx echo.Context) error {
	resolver, _, err := c.resolverFor(ctx)
	if err != nil {
		return err
	}

	options, err := resolver.Search(ctx.Request().Context(), ctx.QueryParam("q"))
	if err != nil {
		return backendError(err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{"options": options})
}

type ResolveRequest struct {
	// ID, when set, picks an option directly instead of matching Text.
	ID     string         `json:"id"`
	Text   string         `json:"text"`
	Values map[string]any `json:"values"`
}

type ResolveResponse struct {
	Selected bool           `json:"selected"`
	Form     *datalist.Form `json:"form"`
}

// Resolve answers POST /datalists/:name/resolve. The option list is rebuilt from the typed text
// before matching, so no state is kept between requests.
func (c *DatalistController) Resolve(ctx echo.Context) error {
	resolver, _, err := c.resolverFor(ctx)
	if err != nil {
		return err
	}

	var req ResolveRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if _, err := resolver.Search(ctx.Request().Context(), req.Text); err != nil {
		return backendError(err)
	}

	form := datalist.NewForm()
	for k, v := range req.Values {
		form.Values[k] = v
	}

	var selected bool
	if req.ID != "" {
		selected = resolver.Select(form, req.ID)
	} else {
		selected = resolver.Resolve(form, req.Text)
	}

	return ctx.JSON(http.StatusOK, ResolveResponse{Selected: selected, Form: form})
}
