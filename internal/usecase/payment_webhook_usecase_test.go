package usecase_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const webhookSecret = "whsec_test"

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func newWebhookFixture() (*usecase.PaymentWebhookUsecase, *OrderRepoMock, *UserRepoMock, *MailerMock) {
	orders := new(OrderRepoMock)
	users := new(UserRepoMock)
	mail := new(MailerMock)
	log := logrus.New()
	log.SetOutput(io.Discard)
	uc := usecase.NewPaymentWebhookUsecase(webhookSecret, orders, users, mail, log)
	return uc, orders, users, mail
}

func capturedBody(orderID, paymentID string) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"payment.captured","payload":{"payment":{"entity":{"id":%q,"order_id":%q,"amount":70000}}}}`,
		paymentID, orderID,
	))
}

func TestWebhook_TamperedSignatureRejected(t *testing.T) {
	uc, orders, _, mail := newWebhookFixture()
	body := capturedBody("order_rzp123", "pay_abc")

	_, err := uc.HandleEvent(context.Background(), body, "deadbeef")

	assertStatus(t, err, http.StatusBadRequest)
	orders.AssertNotCalled(t, "MarkPaymentCaptured", mock.Anything, mock.Anything, mock.Anything)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhook_MissingSignatureRejected(t *testing.T) {
	uc, _, _, _ := newWebhookFixture()
	body := capturedBody("order_rzp123", "pay_abc")

	_, err := uc.HandleEvent(context.Background(), body, "")
	assertStatus(t, err, http.StatusBadRequest)
}

func TestWebhook_PaymentCapturedAppliesAndMailsOnce(t *testing.T) {
	uc, orders, users, mail := newWebhookFixture()
	ctx := context.Background()
	body := capturedBody("order_rzp123", "pay_abc")

	orders.On("MarkPaymentCaptured", ctx, "order_rzp123", "pay_abc").
		Return(model.Order{ID: 100, UserID: 1, PaymentStatus: model.PaymentStatusSuccess}, true, nil)
	users.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, Email: "u@example.com"}, nil)
	mail.On("Send", "u@example.com", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.HandleEvent(ctx, body, sign(body))

	assert.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, int64(100), out.OrderID)
	mail.AssertNumberOfCalls(t, "Send", 1)
}

func TestWebhook_ReplayIsIdempotent(t *testing.T) {
	uc, orders, _, mail := newWebhookFixture()
	ctx := context.Background()
	body := capturedBody("order_rzp123", "pay_abc")

	// 再送：すでにSuccess → applied=false
	orders.On("MarkPaymentCaptured", ctx, "order_rzp123", "pay_abc").
		Return(model.Order{ID: 100, UserID: 1, PaymentStatus: model.PaymentStatusSuccess}, false, nil)

	out, err := uc.HandleEvent(ctx, body, sign(body))

	assert.NoError(t, err)
	assert.False(t, out.Applied)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhook_UnknownOrderNotFound(t *testing.T) {
	uc, orders, _, _ := newWebhookFixture()
	ctx := context.Background()
	body := capturedBody("order_unknown", "pay_abc")

	orders.On("MarkPaymentCaptured", ctx, "order_unknown", "pay_abc").
		Return(model.Order{}, false, repo.ErrNotFound)

	_, err := uc.HandleEvent(ctx, body, sign(body))
	assertStatus(t, err, http.StatusNotFound)
}

func TestWebhook_PaymentFailed(t *testing.T) {
	uc, orders, users, mail := newWebhookFixture()
	ctx := context.Background()
	body := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_abc","order_id":"order_rzp123"}}}}`)

	orders.On("MarkPaymentFailed", ctx, "order_rzp123").
		Return(model.Order{ID: 100, UserID: 1, PaymentStatus: model.PaymentStatusFailed}, true, nil)
	users.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, Email: "u@example.com"}, nil)
	mail.On("Send", "u@example.com", "Payment Failed", mock.Anything).Return(nil)

	out, err := uc.HandleEvent(ctx, body, sign(body))

	assert.NoError(t, err)
	assert.True(t, out.Applied)
	mail.AssertCalled(t, "Send", "u@example.com", "Payment Failed", mock.Anything)
}

func TestWebhook_RefundLifecycle(t *testing.T) {
	cases := []struct {
		event  string
		expect string
	}{
		{"refund.created", "MarkRefundCreated"},
		{"refund.processed", "MarkRefundProcessed"},
		{"refund.failed", "MarkRefundFailed"},
	}

	for _, tc := range cases {
		t.Run(tc.event, func(t *testing.T) {
			uc, orders, users, mail := newWebhookFixture()
			ctx := context.Background()
			body := []byte(fmt.Sprintf(
				`{"event":%q,"payload":{"refund":{"entity":{"id":"rfnd_1","payment_id":"pay_abc","amount":70000}}}}`,
				tc.event,
			))

			order := model.Order{ID: 100, UserID: 1}
			switch tc.expect {
			case "MarkRefundCreated":
				orders.On("MarkRefundCreated", ctx, "pay_abc", "rfnd_1").Return(order, true, nil)
			case "MarkRefundProcessed":
				orders.On("MarkRefundProcessed", ctx, "pay_abc").Return(order, true, nil)
			case "MarkRefundFailed":
				orders.On("MarkRefundFailed", ctx, "pay_abc").Return(order, true, nil)
			}
			users.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, Email: "u@example.com"}, nil)
			mail.On("Send", "u@example.com", mock.Anything, mock.Anything).Return(nil)

			out, err := uc.HandleEvent(ctx, body, sign(body))

			assert.NoError(t, err)
			assert.True(t, out.Applied)
			orders.AssertExpectations(t)
			mail.AssertNumberOfCalls(t, "Send", 1)
		})
	}
}

func TestWebhook_UnsupportedEvent(t *testing.T) {
	uc, orders, _, _ := newWebhookFixture()
	body := []byte(`{"event":"order.paid","payload":{}}`)

	_, err := uc.HandleEvent(context.Background(), body, sign(body))

	assertStatus(t, err, http.StatusBadRequest)
	orders.AssertNotCalled(t, "MarkPaymentCaptured", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhook_MalformedPayload(t *testing.T) {
	uc, _, _, _ := newWebhookFixture()
	body := []byte(`{not json`)

	_, err := uc.HandleEvent(context.Background(), body, sign(body))
	assertStatus(t, err, http.StatusBadRequest)
}

func TestWebhook_MailFailureStillSucceeds(t *testing.T) {
	uc, orders, users, mail := newWebhookFixture()
	ctx := context.Background()
	body := capturedBody("order_rzp123", "pay_abc")

	orders.On("MarkPaymentCaptured", ctx, "order_rzp123", "pay_abc").
		Return(model.Order{ID: 100, UserID: 1}, true, nil)
	users.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, Email: "u@example.com"}, nil)
	mail.On("Send", "u@example.com", mock.Anything, mock.Anything).Return(assert.AnError)

	out, err := uc.HandleEvent(ctx, body, sign(body))

	assert.NoError(t, err)
	assert.True(t, out.Applied)
}
