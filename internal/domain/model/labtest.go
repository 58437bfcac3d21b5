package model

import "time"

// 検査（固定価格・予約枠あり）
type LabTest struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicID    *int64    `gorm:"index" json:"clinic_id"`
	Name        string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       int64     `gorm:"not null" json:"price"`
	Images      []string  `gorm:"serializer:json" json:"images"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
