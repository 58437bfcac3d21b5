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

// /medicines の公開API + /admin/medicines の管理API
type MedicineHandler struct {
	uc *usecase.MedicineUsecase
}

// DI
func NewMedicineHandler(uc *usecase.MedicineUsecase) *MedicineHandler {
	return &MedicineHandler{uc: uc}
}

func (h *MedicineHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.GET("/medicines", h.list)
	e.GET("/medicines/:id", h.detail)

	admin := e.Group(
		"/admin",
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
		middleware.AdminRoleGuard(),
	)
	admin.POST("/medicines", h.create)
	admin.PATCH("/medicines/:id", h.update)
	admin.PATCH("/medicines/:id/stock", h.updateStock)
	admin.DELETE("/medicines/:id", h.remove)
}

func listQueryFromContext(c echo.Context) (repository.CatalogListQuery, error) {
	q := repository.CatalogListQuery{Page: 1, Limit: 10, Q: c.QueryParam("q")}
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return q, respondError(c, http.StatusBadRequest, "invalid page")
		}
		q.Page = p
	}
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return q, respondError(c, http.StatusBadRequest, "invalid limit")
		}
		q.Limit = l
	}
	return q, nil
}

func (h *MedicineHandler) list(c echo.Context) error {
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

func (h *MedicineHandler) detail(c echo.Context) error {
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

func (h *MedicineHandler) create(c echo.Context) error {
	var req usecase.CreateMedicineInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, http.StatusCreated, out)
}

func (h *MedicineHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	var req usecase.MedicinePatch
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	out, uerr := h.uc.Update(c.Request().Context(), id, req)
	if uerr != nil {
		return writeError(c, uerr)
	}
	return respondOK(c, http.StatusOK, out)
}

type updateStockRequest struct {
	Stock int64 `json:"stock"`
}

func (h *MedicineHandler) updateStock(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	var req updateStockRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	out, uerr := h.uc.SetStock(c.Request().Context(), adminID, id, req.Stock)
	if uerr != nil {
		return writeError(c, uerr)
	}
	return respondOK(c, http.StatusOK, out)
}

func (h *MedicineHandler) remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	if uerr := h.uc.Delete(c.Request().Context(), id); uerr != nil {
		return writeError(c, uerr)
	}
	return respondMessage(c, http.StatusOK, "medicine deleted")
}
