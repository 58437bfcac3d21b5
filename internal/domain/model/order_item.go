package model

import "time"

// 注文明細（確定時点のコピー）
type OrderItem struct {
	ID           int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      int64    `gorm:"not null;index" json:"order_id"`
	ItemID       int64    `gorm:"not null;index" json:"item_id"`
	ItemType     ItemType `gorm:"type:varchar(20);not null" json:"item_type"`
	NameSnapshot string   `gorm:"type:varchar(255);not null" json:"name_snapshot"`

	//確定時点の単価
	UnitPriceSnapshot int64 `gorm:"not null" json:"unit_price_snapshot"`

	Quantity int64      `json:"quantity,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	TimeSlot string     `gorm:"type:varchar(30)" json:"time_slot,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
