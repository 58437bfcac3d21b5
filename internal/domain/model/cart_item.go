package model

import "time"

type ItemType string

const (
	ItemTypeMedicine ItemType = "Medicine"
	ItemTypeTest     ItemType = "Test"
)

// カートの明細。Medicineは数量、Testは予約日＋時間枠を持つ。
// 同一商品の明細は追加時に数量加算でマージする（重複行は作らない）。
type CartItem struct {
	ID       int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID   int64    `gorm:"not null;index" json:"cart_id"`
	ItemID   int64    `gorm:"not null;index" json:"item_id"`
	ItemType ItemType `gorm:"type:varchar(20);not null" json:"item_type"`

	//Medicineのみ（1以上）
	Quantity int64 `json:"quantity,omitempty"`

	//Testのみ
	Date     *time.Time `json:"date,omitempty"`
	TimeSlot string     `gorm:"type:varchar(30)" json:"time_slot,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
