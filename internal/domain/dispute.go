package domain

import (
	"context"
	"time"
)

type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "DISPUTE_OPEN"
	DisputeResolved DisputeStatus = "DISPUTE_RESOLVED"
)

// DisputeRecord is the historical bookkeeping row kept alongside a deal's
// DISPUTED state: who raised it, why, and how the arbiter settled it.
type DisputeRecord struct {
	ID         string
	DealID     string
	RaisedBy   string
	Reason     string
	ProofUrl   string
	Status     DisputeStatus
	WinnerID   string
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

type DisputeRepository interface {
	CreateDispute(ctx context.Context, dispute *DisputeRecord) error
	ResolveDispute(ctx context.Context, disputeID, winnerID string, resolvedAt time.Time) error
	GetDisputeByDealID(ctx context.Context, dealID string) (*DisputeRecord, error)
	GetDisputes(ctx context.Context, page, limit int64, status string) ([]*DisputeRecord, int64, error)
}
