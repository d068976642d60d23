package usecase

import (
	"context"
	"math/big"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	publisher "github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-escrow-service/internal/policy"
)

// Release settles the deal in favour of the payee. Checks, then effects
// (status COMPLETE, custody zeroed), then the transfer; a rejected transfer
// rolls everything back so the deal keeps its funds and stays retryable.
func (uc *DefaultDealUsecase) Release(ctx context.Context, dealID, callerID string) error {
	deal, err := uc.DealRepo.GetDealByID(ctx, dealID)
	if err != nil {
		return err
	}
	if err := uc.Policy.Allowed(deal, callerID, policy.ActionRelease); err != nil {
		return err
	}

	op := &dealOperation{
		Operation: "release",
		CallerID:  callerID,
		Transition: &domain.DealTransition{
			DealID:      deal.ID,
			FromStatus:  deal.Status,
			ToStatus:    domain.StatusComplete,
			HeldBalance: big.NewInt(0),
		},
		Transfer: uc.disburse(deal, deal.PayeeID),
		Event:    publisher.EventDealReleased,
	}
	if err := uc.processDealOperation(ctx, deal, op); err != nil {
		return err
	}

	uc.recordDealSettledMetrics(deal, "completed", "")
	return nil
}
