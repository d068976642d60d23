package usecase

import (
	"context"
	"math/big"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	publisher "github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-escrow-service/internal/policy"
)

// ClaimExpired is the payer's time-based fallback: once the deadline has
// passed and the payee never confirmed delivery, the payer can pull the
// funds back without anyone's cooperation. Nothing fires at the deadline by
// itself; the claim has to be invoked.
func (uc *DefaultDealUsecase) ClaimExpired(ctx context.Context, dealID, callerID string) error {
	deal, err := uc.DealRepo.GetDealByID(ctx, dealID)
	if err != nil {
		return err
	}
	if err := uc.Policy.Allowed(deal, callerID, policy.ActionClaimExpired); err != nil {
		return err
	}
	if deal.DeadlineAt == nil || uc.now().Before(*deal.DeadlineAt) {
		return domain.ErrDeadlineNotReached
	}

	op := &dealOperation{
		Operation: "claim_expired",
		CallerID:  callerID,
		Transition: &domain.DealTransition{
			DealID:      deal.ID,
			FromStatus:  domain.StatusAwaitingDelivery,
			ToStatus:    domain.StatusRefunded,
			HeldBalance: big.NewInt(0),
		},
		Transfer: uc.disburse(deal, deal.PayerID),
		Event:    publisher.EventDealExpiredClaimed,
	}
	if err := uc.processDealOperation(ctx, deal, op); err != nil {
		return err
	}

	uc.recordExpiredClaimMetrics(deal)
	return nil
}
