package http

import (
	"strconv"
	"strings"

	"storehouse/internal/core/application/authz"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerCallerID    = "X-Caller-ID"
	headerCallerRoles = "X-Caller-Roles"
)

func callerFrom(c echo.Context) (authz.Caller, error) {
	raw := strings.TrimSpace(c.Request().Header.Get(headerCallerID))
	if raw == "" {
		return authz.Caller{}, errMissingCaller
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return authz.Caller{}, errs.NewFieldNotValidErrorWithCause(headerCallerID, err)
	}

	var roles []user.Role
	for _, r := range strings.Split(c.Request().Header.Get(headerCallerRoles), ",") {
		if r = strings.ToUpper(strings.TrimSpace(r)); r != "" {
			roles = append(roles, user.Role(r))
		}
	}

	caller, err := authz.NewCaller(user.ID(id), roles...)
	if err != nil {
		return authz.Caller{}, errs.NewFieldNotValidErrorWithCause("caller", err)
	}
	return caller, nil
}
