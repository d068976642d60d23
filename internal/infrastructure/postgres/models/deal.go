package models

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

type DealModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	Seq         uint64 `gorm:"autoIncrement;uniqueIndex:idx_deal_seq"`
	PayerID     string `gorm:"index:idx_payer"`
	PayeeID     string `gorm:"index:idx_payee"`
	ArbiterID   string
	AssetKind   string
	Token       string
	Amount      string `gorm:"type:numeric(78,0)"`
	HeldBalance string `gorm:"type:numeric(78,0)"`
	Status      domain.DealStatus `gorm:"index:idx_status_deadline"`
	Paused      bool
	DeadlineAt  *time.Time `gorm:"index:idx_status_deadline"`
	CreatedAt   time.Time  `gorm:"index:idx_created_at"`
	UpdatedAt   time.Time
}
