package usecase

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	publisher "github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-escrow-service/internal/policy"
	dealdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/deal"
	"github.com/jaevor/go-nanoid"
)

// RaiseDispute freezes the settlement path: from DISPUTED the only exit is
// the arbiter's ResolveDispute. No funds move here.
func (uc *DefaultDealUsecase) RaiseDispute(ctx context.Context, input *dealdto.RaiseDisputeInput) error {
	deal, err := uc.DealRepo.GetDealByID(ctx, input.DealID)
	if err != nil {
		return err
	}
	if err := uc.Policy.Allowed(deal, input.CallerID, policy.ActionRaiseDispute); err != nil {
		return err
	}

	op := &dealOperation{
		Operation: "raise_dispute",
		CallerID:  input.CallerID,
		Transition: &domain.DealTransition{
			DealID:     deal.ID,
			FromStatus: domain.StatusAwaitingDelivery,
			ToStatus:   domain.StatusDisputed,
		},
		Event: publisher.EventDealDisputeRaised,
	}
	if err := uc.processDealOperation(ctx, deal, op); err != nil {
		return err
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return err
	}
	dispute := &domain.DisputeRecord{
		ID:        idGenerator(),
		DealID:    deal.ID,
		RaisedBy:  input.CallerID,
		Reason:    input.Reason,
		ProofUrl:  input.ProofUrl,
		Status:    domain.DisputeOpen,
		CreatedAt: uc.now(),
	}
	if err := uc.DisputeRepo.CreateDispute(ctx, dispute); err != nil {
		// The deal is already DISPUTED; the bookkeeping row is best-effort.
		slog.Error("failed to persist dispute record", "deal_id", deal.ID, "error", err.Error())
	}

	uc.recordDisputeRaisedMetrics(deal, input.CallerID)
	return nil
}

// ResolveDispute is the arbiter's verdict: the whole custody goes to the
// winner, which must be one of the two parties.
func (uc *DefaultDealUsecase) ResolveDispute(ctx context.Context, input *dealdto.ResolveDisputeInput) error {
	deal, err := uc.DealRepo.GetDealByID(ctx, input.DealID)
	if err != nil {
		return err
	}
	if err := uc.Policy.Allowed(deal, input.CallerID, policy.ActionResolveDispute); err != nil {
		return err
	}
	if err := policy.ValidateWinner(deal, input.WinnerID); err != nil {
		return err
	}

	op := &dealOperation{
		Operation: "resolve_dispute",
		CallerID:  input.CallerID,
		Transition: &domain.DealTransition{
			DealID:      deal.ID,
			FromStatus:  domain.StatusDisputed,
			ToStatus:    domain.StatusResolved,
			HeldBalance: big.NewInt(0),
		},
		Transfer: uc.disburse(deal, input.WinnerID),
		Event:    publisher.EventDealDisputeResolved,
		WinnerID: input.WinnerID,
	}
	if err := uc.processDealOperation(ctx, deal, op); err != nil {
		return err
	}

	if dispute, err := uc.DisputeRepo.GetDisputeByDealID(ctx, deal.ID); err == nil {
		if err := uc.DisputeRepo.ResolveDispute(ctx, dispute.ID, input.WinnerID, uc.now()); err != nil {
			slog.Error("failed to close dispute record", "deal_id", deal.ID, "dispute_id", dispute.ID, "error", err.Error())
		}
	}

	uc.recordDealResolvedMetrics(deal, input.WinnerID)
	return nil
}
