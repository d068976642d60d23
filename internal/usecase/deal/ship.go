package usecase

import (
	"context"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	publisher "github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-escrow-service/internal/policy"
)

// ConfirmShipment is the payee's delivery confirmation. No funds move; the
// deal just becomes eligible for release under the delivery-gated model.
func (uc *DefaultDealUsecase) ConfirmShipment(ctx context.Context, dealID, callerID string) error {
	deal, err := uc.DealRepo.GetDealByID(ctx, dealID)
	if err != nil {
		return err
	}
	if err := uc.Policy.Allowed(deal, callerID, policy.ActionConfirmShipment); err != nil {
		return err
	}

	op := &dealOperation{
		Operation: "confirm_shipment",
		CallerID:  callerID,
		Transition: &domain.DealTransition{
			DealID:     deal.ID,
			FromStatus: domain.StatusAwaitingDelivery,
			ToStatus:   domain.StatusShipped,
		},
		Event: publisher.EventDealShipped,
	}
	return uc.processDealOperation(ctx, deal, op)
}
