package model

import "time"

// 1ユーザーにつきカートは1つ（user_id unique）
// TotalAmountは明細合計と常に一致させる
type Cart struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	TotalAmount int64     `gorm:"not null" json:"total_amount"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
