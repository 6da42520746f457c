package middleware

import (
	"net/http"

	"medstore/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// AdminRoleGuard rejects everyone whose token role is not admin. The role is
// trusted from the signed token and not re-read from the account store.
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if role != string(model.RoleAdmin) {
				return c.JSON(http.StatusForbidden, errorJSON("admins only"))
			}

			return next(c)
		}
	}
}
