package usecase

import (
	"context"
	"math/big"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	publisher "github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-escrow-service/internal/policy"
)

// Refund returns custody to the payer before delivery was confirmed. Same
// disbursement discipline as Release, opposite recipient.
func (uc *DefaultDealUsecase) Refund(ctx context.Context, dealID, callerID string) error {
	deal, err := uc.DealRepo.GetDealByID(ctx, dealID)
	if err != nil {
		return err
	}
	if err := uc.Policy.Allowed(deal, callerID, policy.ActionRefund); err != nil {
		return err
	}

	op := &dealOperation{
		Operation: "refund",
		CallerID:  callerID,
		Transition: &domain.DealTransition{
			DealID:      deal.ID,
			FromStatus:  domain.StatusAwaitingDelivery,
			ToStatus:    domain.StatusRefunded,
			HeldBalance: big.NewInt(0),
		},
		Transfer: uc.disburse(deal, deal.PayerID),
		Event:    publisher.EventDealRefunded,
	}
	if err := uc.processDealOperation(ctx, deal, op); err != nil {
		return err
	}

	uc.recordDealSettledMetrics(deal, "refunded", "explicit")
	return nil
}
