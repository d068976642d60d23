package usecase

import (
	"context"

	publisher "github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-escrow-service/internal/policy"
)

// Pause is the operator's halt switch: while set, every custody-affecting
// action on the deal is denied. State and custody are untouched.
func (uc *DefaultDealUsecase) Pause(ctx context.Context, dealID, callerID string) error {
	return uc.setPaused(ctx, dealID, callerID, true)
}

func (uc *DefaultDealUsecase) Unpause(ctx context.Context, dealID, callerID string) error {
	return uc.setPaused(ctx, dealID, callerID, false)
}

func (uc *DefaultDealUsecase) setPaused(ctx context.Context, dealID, callerID string, paused bool) error {
	deal, err := uc.DealRepo.GetDealByID(ctx, dealID)
	if err != nil {
		return err
	}
	action := policy.ActionPause
	event := publisher.EventDealPaused
	if !paused {
		action = policy.ActionUnpause
		event = publisher.EventDealUnpaused
	}
	if err := uc.Policy.Allowed(deal, callerID, action); err != nil {
		return err
	}

	if err := uc.DealRepo.SetPaused(ctx, dealID, paused); err != nil {
		return err
	}

	amount := "0"
	if deal.Amount != nil {
		amount = deal.Amount.String()
	}
	uc.publishDealEvent(publisher.DealEvent{
		Event:     event,
		DealID:    deal.ID,
		PayerID:   deal.PayerID,
		PayeeID:   deal.PayeeID,
		ArbiterID: deal.ArbiterID,
		AssetKind: string(deal.AssetKind),
		Token:     deal.Token,
		Amount:    amount,
		Status:    string(deal.Status),
	})
	return nil
}
