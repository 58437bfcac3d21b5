package handler

import (
	"io"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 決済ゲートウェイからのwebhook受け口。認証はJWTではなく署名検証。
type WebhookHandler struct {
	uc *usecase.PaymentWebhookUsecase
}

func NewWebhookHandler(uc *usecase.PaymentWebhookUsecase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/webhook/razorpay", h.razorpay)
}

func (h *WebhookHandler) razorpay(c echo.Context) error {
	// 署名はraw bodyに対するもの。bindせずそのまま読む。
	rawBody, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "failed to read body")
	}

	signature := c.Request().Header.Get("X-Razorpay-Signature")

	out, uerr := h.uc.HandleEvent(c.Request().Context(), rawBody, signature)
	if uerr != nil {
		return writeError(c, uerr)
	}

	return respondOK(c, http.StatusOK, out)
}
