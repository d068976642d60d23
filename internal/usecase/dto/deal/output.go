package dealdto

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

type DealOutput struct {
	DealID      string
	Seq         uint64
	PayerID     string
	PayeeID     string
	ArbiterID   string
	AssetKind   string
	Token       string
	Amount      string
	HeldBalance string
	Status      string
	Paused      bool
	DeadlineAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ToDealOutput(deal *domain.Deal) *DealOutput {
	amount := "0"
	if deal.Amount != nil {
		amount = deal.Amount.String()
	}
	held := "0"
	if deal.HeldBalance != nil {
		held = deal.HeldBalance.String()
	}
	return &DealOutput{
		DealID:      deal.ID,
		Seq:         deal.Seq,
		PayerID:     deal.PayerID,
		PayeeID:     deal.PayeeID,
		ArbiterID:   deal.ArbiterID,
		AssetKind:   string(deal.AssetKind),
		Token:       deal.Token,
		Amount:      amount,
		HeldBalance: held,
		Status:      string(deal.Status),
		Paused:      deal.Paused,
		DeadlineAt:  deal.DeadlineAt,
		CreatedAt:   deal.CreatedAt,
		UpdatedAt:   deal.UpdatedAt,
	}
}
