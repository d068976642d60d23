package models

import (
	"time"
)

type DisputeModel struct {
	ID         string `gorm:"primaryKey"`
	DealID     string `gorm:"type:uuid;index"`
	RaisedBy   string
	Reason     string
	ProofUrl   string
	Status     string
	WinnerID   string
	Deal       DealModel `gorm:"foreignKey:DealID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt  time.Time
	ResolvedAt *time.Time
}
