package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

const testWebhookSecret = "whsec_test"

// 使うメソッドだけ差し替えられるstub
type stubOrderRepo struct {
	repo.OrderRepository
	markCaptured func(gatewayOrderID, gatewayPaymentID string) (model.Order, bool, error)
}

func (s *stubOrderRepo) MarkPaymentCaptured(_ context.Context, gatewayOrderID string, gatewayPaymentID string) (model.Order, bool, error) {
	return s.markCaptured(gatewayOrderID, gatewayPaymentID)
}

type stubUserRepo struct {
	repo.UserRepository
}

func (s *stubUserRepo) FindByID(_ context.Context, userID int64) (*model.User, error) {
	return &model.User{ID: userID, Email: "u@example.com"}, nil
}

type stubMailer struct{ sent int }

func (s *stubMailer) Send(to, subject, body string) error {
	s.sent++
	return nil
}

func signBody(body string) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func newWebhookEcho(orders repo.OrderRepository, users repo.UserRepository, mail *stubMailer) *echo.Echo {
	log := logrus.New()
	log.SetOutput(io.Discard)
	uc := usecase.NewPaymentWebhookUsecase(testWebhookSecret, orders, users, mail, log)
	e := echo.New()
	NewWebhookHandler(uc).RegisterRoutes(e)
	return e
}

func TestWebhookEndpoint_RejectsBadSignature(t *testing.T) {
	e := newWebhookEcho(&stubOrderRepo{}, &stubUserRepo{}, &stubMailer{})

	body := `{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/razorpay", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Razorpay-Signature", "deadbeef")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var res APIResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "invalid signature", res.Message)
}

func TestWebhookEndpoint_AppliesCapturedEvent(t *testing.T) {
	var gotOrderID string
	orders := &stubOrderRepo{
		markCaptured: func(gatewayOrderID, gatewayPaymentID string) (model.Order, bool, error) {
			gotOrderID = gatewayOrderID
			return model.Order{ID: 100, UserID: 1, PaymentStatus: model.PaymentStatusSuccess}, true, nil
		},
	}
	mail := &stubMailer{}
	e := newWebhookEcho(orders, &stubUserRepo{}, mail)

	body := `{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/razorpay", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Razorpay-Signature", signBody(body))
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "order_1", gotOrderID)
	assert.Equal(t, 1, mail.sent)

	var res APIResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, http.StatusOK, res.Status)
}
