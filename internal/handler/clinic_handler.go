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

type ClinicHandler struct {
	uc *usecase.ClinicUsecase
}

func NewClinicHandler(uc *usecase.ClinicUsecase) *ClinicHandler {
	return &ClinicHandler{uc: uc}
}

func (h *ClinicHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.GET("/clinics", h.list)
	e.GET("/clinics/:id", h.detail)

	admin := e.Group(
		"/admin",
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
		middleware.AdminRoleGuard(),
	)
	admin.POST("/clinics", h.create)
	admin.PATCH("/clinics/:id", h.update)
}

func (h *ClinicHandler) list(c echo.Context) error {
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

func (h *ClinicHandler) detail(c echo.Context) error {
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

func (h *ClinicHandler) create(c echo.Context) error {
	var req usecase.CreateClinicInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, http.StatusCreated, out)
}

func (h *ClinicHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	var req usecase.ClinicPatch
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	out, uerr := h.uc.Update(c.Request().Context(), id, req)
	if uerr != nil {
		return writeError(c, uerr)
	}
	return respondOK(c, http.StatusOK, out)
}
