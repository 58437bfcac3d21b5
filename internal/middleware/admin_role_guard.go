package middleware

import (
	"app/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// AdminRoleGuard は/admin配下の最終関門。roleクレームがADMIN以外なら403。
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role == "" {
				return unauthorized(c)
			}
			if role != string(model.RoleAdmin) {
				return forbidden(c, "admin only")
			}
			return next(c)
		}
	}
}
