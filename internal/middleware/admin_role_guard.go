package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"warmdelights/internal/domain/model"
)

// contextのroleがadminかどうかを確認する
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Not authorized, no token"))
			}

			if role != string(model.RoleAdmin) {
				return c.JSON(http.StatusForbidden, errorJSON("Not authorized as admin"))
			}

			return next(c)
		}
	}
}
