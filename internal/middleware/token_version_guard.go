package middleware

import (
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

// TokenVersionGuard はJWTのtvクレームをDBのtoken_versionと突き合わせる。
// 強制ログアウト後の古いアクセストークンをここで落とす。AuthJWTの後段に置くこと。
func TokenVersionGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, okID := c.Get(CtxUserIDKey).(int64)
			tv, okTV := c.Get(CtxTokenVersionKey).(int)
			if !okID || userID <= 0 || !okTV || tv < 0 {
				return unauthorized(c)
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil || user == nil {
				return unauthorized(c)
			}

			//不一致＝発行後に強制ログアウトされたtoken
			if user.TokenVersion != tv {
				return unauthorized(c)
			}

			return next(c)
		}
	}
}
