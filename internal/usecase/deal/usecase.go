package usecase

import (
	"context"
	"math/big"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-escrow-service/internal/policy"
	dealdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/deal"
)

type DealUsecase interface {
	CreateDeal(ctx context.Context, input *dealdto.CreateDealInput) (*dealdto.DealOutput, error)

	Deposit(ctx context.Context, input *dealdto.DepositInput) error
	ConfirmShipment(ctx context.Context, dealID, callerID string) error
	Release(ctx context.Context, dealID, callerID string) error
	Refund(ctx context.Context, dealID, callerID string) error
	RaiseDispute(ctx context.Context, input *dealdto.RaiseDisputeInput) error
	ResolveDispute(ctx context.Context, input *dealdto.ResolveDisputeInput) error
	ClaimExpired(ctx context.Context, dealID, callerID string) error
	Pause(ctx context.Context, dealID, callerID string) error
	Unpause(ctx context.Context, dealID, callerID string) error

	ApproveAllowance(ctx context.Context, input *dealdto.ApproveAllowanceInput) error

	GetDealByID(ctx context.Context, dealID string) (*dealdto.DealOutput, error)
	GetDealBalance(ctx context.Context, dealID string) (*big.Int, error)
	GetAccountBalance(ctx context.Context, userID, token string) (*big.Int, error)
	ListDealIDs(ctx context.Context) ([]string, error)
	GetDealsByParty(ctx context.Context, partyID string, page, limit int64) ([]*dealdto.DealOutput, int64, error)
	FindOverdueDeals(ctx context.Context) ([]*dealdto.DealOutput, error)
	CountDealsByStatus(ctx context.Context) (map[domain.DealStatus]int64, error)
}

type DefaultDealUsecase struct {
	DealRepo    domain.DealRepository
	DisputeRepo domain.DisputeRepository
	Ledger      domain.LedgerRepository
	Publisher   domain.PublisherPort
	AuditLogger logger.DealAuditLogger
	Metrics     *metrics.DealMetrics
	Policy      policy.Policy

	Topic      string
	DepositTTL time.Duration

	nowFn func() time.Time
}

func NewDefaultDealUsecase(
	dealRepo domain.DealRepository,
	disputeRepo domain.DisputeRepository,
	ledger domain.LedgerRepository,
	kafkaPublisher domain.PublisherPort,
	auditLogger logger.DealAuditLogger,
	dealMetrics *metrics.DealMetrics,
	dealPolicy policy.Policy,
	topic string,
	depositTTL time.Duration) *DefaultDealUsecase {

	return &DefaultDealUsecase{
		DealRepo:    dealRepo,
		DisputeRepo: disputeRepo,
		Ledger:      ledger,
		Publisher:   kafkaPublisher,
		AuditLogger: auditLogger,
		Metrics:     dealMetrics,
		Policy:      dealPolicy,
		Topic:       topic,
		DepositTTL:  depositTTL,
		nowFn:       time.Now,
	}
}

// SetNowFunc overrides the time source. Primarily intended for tests to
// provide deterministic timestamps.
func (uc *DefaultDealUsecase) SetNowFunc(now func() time.Time) {
	if now == nil {
		uc.nowFn = time.Now
		return
	}
	uc.nowFn = now
}

func (uc *DefaultDealUsecase) now() time.Time {
	if uc.nowFn == nil {
		return time.Now()
	}
	return uc.nowFn()
}
