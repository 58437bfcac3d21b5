package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /tests の公開API + /admin/tests の管理API
type LabTestHandler struct {
	uc *usecase.LabTestUsecase
}

func NewLabTestHandler(uc *usecase.LabTestUsecase) *LabTestHandler {
	return &LabTestHandler{uc: uc}
}

func (h *LabTestHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.GET("/tests", h.list)
	e.GET("/tests/:id", h.detail)

	admin := e.Group(
		"/admin",
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
		middleware.AdminRoleGuard(),
	)
	admin.POST("/tests", h.create)
	admin.PATCH("/tests/:id", h.update)
}

func (h *LabTestHandler) list(c echo.Context) error {
	q, err := listQueryFromContext(c)
	if err != nil {
		return err
	}

	out, uerr := h.uc.List(c.Request().Context(), q)
	if uerr != nil {
		return writeError(c, uerr)
	}
	return respondOK(c, http.StatusOK, out)
}

func (h *LabTestHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	out, uerr := h.uc.Get(c.Request().Context(), id)
	if uerr != nil {
		return writeError(c, uerr)
	}
	return respondOK(c, http.StatusOK, out)
}

func (h *LabTestHandler) create(c echo.Context) error {
	var req usecase.CreateLabTestInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, http.StatusCreated, out)
}

func (h *LabTestHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	var req usecase.LabTestPatch
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	out, uerr := h.uc.Update(c.Request().Context(), id, req)
	if uerr != nil {
		return writeError(c, uerr)
	}
	return respondOK(c, http.StatusOK, out)
}
