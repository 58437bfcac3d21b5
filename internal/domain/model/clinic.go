package model

import "time"

type Clinic struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null;index" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	Website     string `gorm:"type:varchar(255)" json:"website"`

	//所在地
	Line     string `gorm:"type:varchar(255);not null" json:"line"`
	City     string `gorm:"type:varchar(255);not null" json:"city"`
	State    string `gorm:"type:varchar(100)" json:"state"`
	Pincode  string `gorm:"type:varchar(6)" json:"pincode"`
	Landmark string `gorm:"type:varchar(255)" json:"landmark"`

	//営業時間（"09:00 AM" 形式）
	OpeningTime string `gorm:"type:varchar(20)" json:"opening_time"`
	ClosingTime string `gorm:"type:varchar(20)" json:"closing_time"`

	Images    []string  `gorm:"serializer:json" json:"images"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
