package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending         PaymentStatus = "Pending"
	PaymentStatusSuccess         PaymentStatus = "Success"
	PaymentStatusFailed          PaymentStatus = "Failed"
	PaymentStatusRefundCreated   PaymentStatus = "Refund_Created"
	PaymentStatusRefundProcessed PaymentStatus = "Refund_Processed"
	PaymentStatusRefundFailed    PaymentStatus = "Refund_Failed"
)

type PaymentMode string

const (
	PaymentModeCOD  PaymentMode = "COD"
	PaymentModeUPI  PaymentMode = "UPI"
	PaymentModeCard PaymentMode = "Card"
)

// 注文。確定時点の価格スナップショットで、以後再計算しない。
// 削除はしない（台帳として残す）。
type Order struct {
	ID          int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64         `gorm:"not null;index" json:"user_id"`
	AddressID   int64         `gorm:"not null" json:"address_id"`
	Status      OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentMode PaymentMode   `gorm:"type:varchar(10);not null" json:"payment_mode"`

	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;index" json:"payment_status"`

	TotalAmount int64 `gorm:"not null" json:"total_amount"`

	//決済ゲートウェイとの突合キー（webhookが埋める）
	GatewayOrderID   string `gorm:"type:varchar(64);index" json:"gateway_order_id,omitempty"`
	GatewayPaymentID string `gorm:"type:varchar(64);index" json:"gateway_payment_id,omitempty"`
	GatewayRefundID  string `gorm:"type:varchar(64)" json:"gateway_refund_id,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// ステータスが変更不能な終端かどうか
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusDelivered
}
