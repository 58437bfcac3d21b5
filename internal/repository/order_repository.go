package repository

import (
	"context"

	"app/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	//item名スナップショットの部分一致
	Q string
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error

	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)

	// webhook用の条件付き更新。突合キーで注文を特定し、
	// まだ目標の支払いステータスでないときだけ遷移させる。
	// appliedがfalseのときは再送（すでに適用済み）。
	MarkPaymentCaptured(ctx context.Context, gatewayOrderID string, gatewayPaymentID string) (model.Order, bool, error)
	MarkPaymentFailed(ctx context.Context, gatewayOrderID string) (model.Order, bool, error)
	MarkRefundCreated(ctx context.Context, gatewayPaymentID string, gatewayRefundID string) (model.Order, bool, error)
	MarkRefundProcessed(ctx context.Context, gatewayPaymentID string) (model.Order, bool, error)
	MarkRefundFailed(ctx context.Context, gatewayPaymentID string) (model.Order, bool, error)
}
