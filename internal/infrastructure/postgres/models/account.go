package models

import "time"

type AccountModel struct {
	UserID    string `gorm:"primaryKey"`
	Token     string `gorm:"primaryKey"`
	Balance   string `gorm:"type:numeric(78,0)"`
	UpdatedAt time.Time
}

type AllowanceModel struct {
	OwnerID   string `gorm:"primaryKey"`
	SpenderID string `gorm:"primaryKey"`
	Token     string `gorm:"primaryKey"`
	Amount    string `gorm:"type:numeric(78,0)"`
	UpdatedAt time.Time
}
