package http

import (
	"net/http"

	"storehouse/internal/core/application/usecases/commands"
	"storehouse/internal/core/application/usecases/queries"
	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

// CreateUser handles POST /api/v1/users.
func (s *Server) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, err)
	}

	kind, err := user.KindFromString(req.Kind)
	if err != nil {
		return fail(c, err)
	}

	roles := lo.Map(req.Roles, func(r string, _ int) user.Role { return user.Role(r) })
	cmd, err := commands.NewCreateUserCommand(kind, req.Name, req.Email, roles...)
	if err != nil {
		return fail(c, err)
	}

	created, err := s.h.CreateUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, toUserResponse(created))
}

// FindUsers handles GET /api/v1/users?name=&kind= plus pagination parameters.
func (s *Server) FindUsers(c echo.Context) error {
	f := filter.UserFilter{Name: c.QueryParam("name")}

	if raw := c.QueryParam("kind"); raw != "" {
		kind, err := user.KindFromString(raw)
		if err != nil {
			return fail(c, err)
		}
		f.Kind = &kind
	}

	generic, err := genericFilterFrom(c)
	if err != nil {
		return fail(c, err)
	}
	f.GenericFilter = generic

	page, err := s.h.FindUsers.Handle(c.Request().Context(), queries.NewFindUsersQuery(f))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toUserResponse))
}

// GetUserByEmail handles GET /api/v1/users/by-email?email=.
func (s *Server) GetUserByEmail(c echo.Context) error {
	query, err := queries.NewGetUserByEmailQuery(c.QueryParam("email"))
	if err != nil {
		return fail(c, err)
	}

	found, err := s.h.GetUserByEmail.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(found))
}
