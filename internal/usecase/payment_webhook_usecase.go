package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"app/internal/domain/model"
	"app/internal/gateway"
	"app/internal/mailer"
	"app/internal/repository"
)

// ゲートウェイから届くイベント封筒。必要なフィールドだけ読む。
type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity webhookPayment `json:"entity"`
		} `json:"payment"`
		Refund struct {
			Entity webhookRefund `json:"entity"`
		} `json:"refund"`
	} `json:"payload"`
}

type webhookPayment struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
}

type webhookRefund struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
}

type WebhookResult struct {
	Event   string `json:"event"`
	OrderID int64  `json:"orderId"`
	// falseなら再送（すでに適用済み）
	Applied bool `json:"applied"`
}

type PaymentWebhookUsecase struct {
	secret    string
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	mail      mailer.Mailer
	log       *logrus.Logger
}

func NewPaymentWebhookUsecase(
	secret string,
	or repository.OrderRepository,
	ur repository.UserRepository,
	mail mailer.Mailer,
	log *logrus.Logger,
) *PaymentWebhookUsecase {
	return &PaymentWebhookUsecase{secret: secret, orderRepo: or, userRepo: ur, mail: mail, log: log}
}

// HandleEvent はwebhookを検証して支払いステータスへ反映する。
// 同じイベントの再送は状態を変えず、メールも送らない（成功を返すだけ）。
func (u *PaymentWebhookUsecase) HandleEvent(ctx context.Context, rawBody []byte, signature string) (WebhookResult, error) {
	if signature == "" || !gateway.VerifyWebhookSignature(rawBody, signature, u.secret) {
		return WebhookResult{}, NewHTTPError(http.StatusBadRequest, "invalid signature")
	}

	var env webhookEnvelope
	if err := json.Unmarshal(rawBody, &env); err != nil {
		return WebhookResult{}, NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var (
		order   model.Order
		applied bool
		err     error
		notify  func() (string, string)
	)

	switch env.Event {
	case "payment.captured":
		p := env.Payload.Payment.Entity
		if p.OrderID == "" {
			return WebhookResult{}, NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		order, applied, err = u.orderRepo.MarkPaymentCaptured(ctx, p.OrderID, p.ID)
		notify = func() (string, string) { return mailer.PaymentCapturedMail(order.ID) }
	case "payment.failed":
		p := env.Payload.Payment.Entity
		if p.OrderID == "" {
			return WebhookResult{}, NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		order, applied, err = u.orderRepo.MarkPaymentFailed(ctx, p.OrderID)
		notify = func() (string, string) { return mailer.PaymentFailedMail(order.ID) }
	case "refund.created":
		r := env.Payload.Refund.Entity
		if r.PaymentID == "" {
			return WebhookResult{}, NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		order, applied, err = u.orderRepo.MarkRefundCreated(ctx, r.PaymentID, r.ID)
		notify = func() (string, string) { return mailer.RefundCreatedMail(r.Amount / 100) }
	case "refund.processed":
		r := env.Payload.Refund.Entity
		if r.PaymentID == "" {
			return WebhookResult{}, NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		order, applied, err = u.orderRepo.MarkRefundProcessed(ctx, r.PaymentID)
		notify = func() (string, string) { return mailer.RefundProcessedMail(r.Amount / 100) }
	case "refund.failed":
		r := env.Payload.Refund.Entity
		if r.PaymentID == "" {
			return WebhookResult{}, NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		order, applied, err = u.orderRepo.MarkRefundFailed(ctx, r.PaymentID)
		notify = func() (string, string) { return mailer.RefundFailedMail(r.Amount / 100) }
	default:
		return WebhookResult{}, NewHTTPError(http.StatusBadRequest, "unsupported event type")
	}

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return WebhookResult{}, NewHTTPError(http.StatusNotFound, "order not found")
		}
		u.log.WithError(err).WithField("event", env.Event).Error("failed to apply webhook event")
		return WebhookResult{}, NewHTTPError(http.StatusInternalServerError, "failed to process event")
	}

	// 初回適用のときだけ通知する
	if applied {
		u.notifyUser(ctx, order, notify)
	}
	return WebhookResult{Event: env.Event, OrderID: order.ID, Applied: applied}, nil
}

// 通知は送れなくてもwebhookの応答は変えない
func (u *PaymentWebhookUsecase) notifyUser(ctx context.Context, order model.Order, build func() (string, string)) {
	user, err := u.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		u.log.WithError(err).WithField("order_id", order.ID).Warn("failed to resolve user for notification")
		return
	}
	subject, body := build()
	if err := u.mail.Send(user.Email, subject, body); err != nil {
		u.log.WithError(err).WithField("order_id", order.ID).Warn("failed to send notification mail")
	}
}
