package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// APIの共通封筒。statusにはHTTPステータスコードをそのまま入れる。
type APIResponse struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondOK(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, APIResponse{Status: code, Data: data})
}

func respondMessage(c echo.Context, code int, message string) error {
	return c.JSON(code, APIResponse{Status: code, Message: message})
}

func respondError(c echo.Context, code int, message string) error {
	return c.JSON(code, APIResponse{Status: code, Message: message})
}

// usecaseのHTTPErrorをそのままステータスに落とす
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return respondError(c, he.Status, he.Message)
	}

	//500
	return respondError(c, http.StatusInternalServerError, "internal error")
}

//middleware.AuthJWT が c.Set("user_id", int64) した値を取り出す

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get("user_id")
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

func isAdminFromContext(c echo.Context) bool {
	role, _ := c.Get("user_role").(string)
	return role == "ADMIN"
}
