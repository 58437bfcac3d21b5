package model

import "time"

// 配送先住所
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//宛名
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	//電話番号
	Mobile string `gorm:"type:varchar(10);not null" json:"mobile"`

	//番地など
	Line string `gorm:"type:varchar(255);not null" json:"line"`

	City string `gorm:"type:varchar(255);not null" json:"city"`

	//州
	State string `gorm:"type:varchar(100)" json:"state"`

	//郵便番号（6桁）
	Pincode string `gorm:"type:varchar(6);not null" json:"pincode"`

	Landmark string `gorm:"type:varchar(255)" json:"landmark"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
