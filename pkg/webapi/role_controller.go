package webapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dukahub/dukaweb/pkg/capability"
	"github.com/dukahub/dukaweb/pkg/dukadb/stor"
	"github.com/dukahub/dukaweb/pkg/session"
	"github.com/dukahub/dukaweb/pkg/translate"
	"github.com/labstack/echo/v4"
)

// RoleController administers the role table that sessions derive their capabilities from.
type RoleController struct {
	roleStor   stor.RoleStor
	sessions   *session.Manager
	translator *translate.Translator
}

func NewRoleController(roleStor stor.RoleStor, sessions *session.Manager, translator *translate.Translator) *RoleController {
	return &RoleController{roleStor: roleStor, sessions: sessions, translator: translator}
}

func (c *RoleController) require(ctx echo.Context, a capability.Action, e capability.Entity) error {
	s, err := sessionFrom(ctx)
	if err != nil {
		return err
	}

	if !s.Can(capability.For(a, e)) {
		return noAccess(c.translator.For(s))
	}

	return nil
}

func (c *RoleController) Index(ctx echo.Context) error {
	if err := c.require(ctx, capability.List, capability.Role); err != nil {
		return err
	}

	roles, err := c.roleStor.ListRoles()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusOK, roles)
}

type roleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// validatePermissions rejects strings that don't name a capability, so the role table only ever
// holds values sessions can use.
func validatePermissions(perms []string) ([]string, error) {
	caps, unknown := capability.ParseSet(perms)
	if len(unknown) != 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"unknown_permissions": unknown})
	}

	return caps.Strings(), nil
}

func (c *RoleController) Create(ctx echo.Context) error {
	if err := c.require(ctx, capability.Create, capability.Role); err != nil {
		return err
	}

	var req roleRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	perms, err := validatePermissions(req.Permissions)
	if err != nil {
		return err
	}

	role, err := c.roleStor.CreateRole(req.Name, perms)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusCreated, role)
}

func (c *RoleController) SetPermissions(ctx echo.Context) error {
	if err := c.require(ctx, capability.Edit, capability.Role); err != nil {
		return err
	}

	roleID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role id")
	}

	var req roleRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	perms, err := validatePermissions(req.Permissions)
	if err != nil {
		return err
	}

	if err := c.roleStor.SetRolePermissions(roleID, perms); err != nil {
		return storError(err)
	}

	// Any number of users may hold the role.
	c.sessions.InvalidateAll()

	role, err := c.roleStor.GetRoleByID(roleID)
	if err != nil {
		return storError(err)
	}

	return ctx.JSON(http.StatusOK, role)
}

// AssignToUser needs edit_role on top of edit_user, since picking a role hands out its
// capabilities.
func (c *RoleController) AssignToUser(ctx echo.Context) error {
	if err := c.require(ctx, capability.Edit, capability.User); err != nil {
		return err
	}

	if err := c.require(ctx, capability.Edit, capability.Role); err != nil {
		return err
	}

	var req struct {
		RoleID int `json:"role_id"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	userID := ctx.Param("id")
	if err := c.roleStor.AssignRoleToUser(userID, req.RoleID); err != nil {
		return storError(err)
	}

	c.sessions.InvalidateUser(userID)
	return ctx.NoContent(http.StatusNoContent)
}

func storError(err error) error {
	if errors.Is(err, stor.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
