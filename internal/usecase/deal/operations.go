package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	publisher "github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
)

////////////////////// Safe deal transitions //////////////////////////

// dealOperation describes one state-machine step: the compare-and-set status
// move plus the optional ledger interaction that settles it. The repository
// applies both inside one transaction, effects before interaction, so a
// rejected transfer rolls the status move back and the deal keeps its funds.
type dealOperation struct {
	Operation  string
	CallerID   string
	Transition *domain.DealTransition
	Transfer   func(vt domain.ValueTransfer) error
	Event      string
	WinnerID   string
}

func (uc *DefaultDealUsecase) processDealOperation(ctx context.Context, deal *domain.Deal, op *dealOperation) error {
	if err := uc.DealRepo.ApplyTransition(ctx, op.Transition, op.Transfer); err != nil {
		if errors.Is(err, domain.ErrFailedToSendValue) {
			uc.recordDisbursementFailure(op.Operation)
		}
		return err
	}

	uc.logTransition(ctx, deal, op)
	uc.publishDealEvent(uc.dealEvent(deal, op))
	return nil
}

// disburse builds the interaction step of a disbursing transition: move the
// whole held balance from the deal vault to the recipient. Transfer rejection
// is surfaced as ErrFailedToSendValue so the caller can retry later.
func (uc *DefaultDealUsecase) disburse(deal *domain.Deal, recipientID string) func(vt domain.ValueTransfer) error {
	dealID := deal.ID
	token := deal.AssetToken()
	amount := new(big.Int)
	if deal.HeldBalance != nil {
		amount.Set(deal.HeldBalance)
	}
	return func(vt domain.ValueTransfer) error {
		if err := vt.Transfer(context.Background(), domain.DealVaultID(dealID), recipientID, token, amount); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrFailedToSendValue, err)
		}
		return nil
	}
}

func (uc *DefaultDealUsecase) dealEvent(deal *domain.Deal, op *dealOperation) publisher.DealEvent {
	amount := "0"
	if deal.Amount != nil {
		amount = deal.Amount.String()
	}
	return publisher.DealEvent{
		Event:     op.Event,
		DealID:    deal.ID,
		PayerID:   deal.PayerID,
		PayeeID:   deal.PayeeID,
		ArbiterID: deal.ArbiterID,
		AssetKind: string(deal.AssetKind),
		Token:     deal.Token,
		Amount:    amount,
		Status:    string(op.Transition.ToStatus),
		WinnerID:  op.WinnerID,
	}
}

func (uc *DefaultDealUsecase) publishDealEvent(event publisher.DealEvent) {
	if uc.Publisher == nil {
		return
	}
	go func(event publisher.DealEvent) {
		value, err := json.Marshal(event)
		if err != nil {
			slog.Error("failed to marshal DealEvent", "event", event.Event, "deal_id", event.DealID, "error", err.Error())
			return
		}
		if err := uc.Publisher.Publish(uc.Topic, domain.Message{Key: []byte(event.DealID), Value: value}); err != nil {
			slog.Error("failed to publish kafka DealEvent", "event", event.Event, "deal_id", event.DealID, "error", err.Error())
		}
	}(event)
}

func (uc *DefaultDealUsecase) logTransition(ctx context.Context, deal *domain.Deal, op *dealOperation) {
	if uc.AuditLogger == nil {
		return
	}
	amount := "0"
	if deal.Amount != nil {
		amount = deal.Amount.String()
	}
	if err := uc.AuditLogger.LogDealTransition(ctx, logger.DealTransitionEvent{
		DealID:     deal.ID,
		Operation:  op.Operation,
		CallerID:   op.CallerID,
		FromStatus: string(op.Transition.FromStatus),
		ToStatus:   string(op.Transition.ToStatus),
		Amount:     amount,
		Timestamp:  uc.now(),
	}); err != nil {
		slog.Error("failed to write deal audit record", "deal_id", deal.ID, "operation", op.Operation, "error", err.Error())
	}
}
