package domain

import (
	"math/big"
	"time"
)

type DealStatus string

const (
	StatusAwaitingPayment  DealStatus = "AWAITING_PAYMENT"
	StatusAwaitingDelivery DealStatus = "AWAITING_DELIVERY"
	StatusShipped          DealStatus = "SHIPPED"
	StatusDisputed         DealStatus = "DISPUTED"
	StatusComplete         DealStatus = "COMPLETE"
	StatusRefunded         DealStatus = "REFUNDED"
	StatusResolved         DealStatus = "RESOLVED"
)

// Terminal reports whether no further transition is permitted from the status.
func (s DealStatus) Terminal() bool {
	switch s {
	case StatusComplete, StatusRefunded, StatusResolved:
		return true
	default:
		return false
	}
}

type AssetKind string

const (
	AssetNative AssetKind = "NATIVE"
	AssetToken  AssetKind = "TOKEN"
)

// NativeToken is the ledger symbol used for native-value accounts.
const NativeToken = "NATIVE"

// Deal is one escrow agreement: two parties, an optional arbiter and the
// value held in custody until settlement. ArbiterID == "" means no
// arbitration is available for the deal.
type Deal struct {
	ID          string
	Seq         uint64
	PayerID     string
	PayeeID     string
	ArbiterID   string
	AssetKind   AssetKind
	Token       string
	Amount      *big.Int
	HeldBalance *big.Int
	Status      DealStatus
	Paused      bool
	DeadlineAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (d *Deal) HasArbiter() bool {
	return d != nil && d.ArbiterID != ""
}

// AssetToken returns the ledger symbol the deal's custody is denominated in.
func (d *Deal) AssetToken() string {
	if d == nil || d.AssetKind == AssetNative {
		return NativeToken
	}
	return d.Token
}

// Clone returns a deep copy so callers can mutate the copy without touching
// the stored instance.
func (d *Deal) Clone() *Deal {
	if d == nil {
		return nil
	}
	clone := *d
	if d.Amount != nil {
		clone.Amount = new(big.Int).Set(d.Amount)
	}
	if d.HeldBalance != nil {
		clone.HeldBalance = new(big.Int).Set(d.HeldBalance)
	}
	if d.DeadlineAt != nil {
		deadline := *d.DeadlineAt
		clone.DeadlineAt = &deadline
	}
	return &clone
}

// DealVaultID is the ledger account holding a deal's custody.
func DealVaultID(dealID string) string {
	return "deal:" + dealID
}
