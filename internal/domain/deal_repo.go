package domain

import (
	"context"
	"math/big"
	"time"
)

// DealTransition describes one state-machine step applied atomically by the
// repository. Nil optional fields are left untouched on the deal row.
type DealTransition struct {
	DealID      string
	FromStatus  DealStatus
	ToStatus    DealStatus
	HeldBalance *big.Int
	Amount      *big.Int
	DeadlineAt  *time.Time
}

type DealFilters struct {
	Statuses []DealStatus
	PartyID  string
}

type DealRepository interface {
	CreateDeal(ctx context.Context, deal *Deal) error
	GetDealByID(ctx context.Context, dealID string) (*Deal, error)

	// ApplyTransition runs the checks-effects-interaction sequence for one
	// transition in a single transaction: the status move is a compare-and-set
	// against FromStatus, the deal row is mutated, and only then transfer is
	// invoked with a transaction-scoped ledger. Any transfer error rolls the
	// whole transition back, leaving the deal exactly as it was.
	ApplyTransition(ctx context.Context, tr *DealTransition, transfer func(vt ValueTransfer) error) error

	SetPaused(ctx context.Context, dealID string, paused bool) error

	ListDealIDs(ctx context.Context) ([]string, error)
	GetDealsByParty(ctx context.Context, partyID string, page, limit int64) ([]*Deal, int64, error)
	FindOverdueDeals(ctx context.Context, now time.Time) ([]*Deal, error)
	CountDealsByStatus(ctx context.Context) (map[DealStatus]int64, error)
}
