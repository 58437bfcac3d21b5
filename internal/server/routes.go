package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

// ルート登録に必要なハンドラ一式
type Handlers struct {
	Auth     *handler.AuthHandler
	Medicine *handler.MedicineHandler
	LabTest  *handler.LabTestHandler
	Clinic   *handler.ClinicHandler
	Address  *handler.AddressHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	AdmOrder *handler.AdminOrderHandler
	Webhook  *handler.WebhookHandler
}

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers, userRepo repository.UserRepository) {
	h.Auth.RegisterRoutes(e)
	h.Medicine.RegisterRoutes(e, cfg, userRepo)
	h.LabTest.RegisterRoutes(e, cfg, userRepo)
	h.Clinic.RegisterRoutes(e, cfg, userRepo)
	h.Address.RegisterRoutes(e, cfg, userRepo)
	h.Cart.RegisterRoutes(e, cfg, userRepo)
	h.Order.RegisterRoutes(e, cfg, userRepo)
	h.AdmOrder.RegisterRoutes(e, cfg, userRepo)
	h.Webhook.RegisterRoutes(e)
}
