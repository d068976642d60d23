package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	publisher "github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
	dealdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/deal"
	"github.com/google/uuid"
)

// CreateDeal is the factory entry point: it validates the parties, persists a
// new deal in AWAITING_PAYMENT and appends it to the registry. The caller
// becomes the payer. The factory never touches custody after creation.
func (uc *DefaultDealUsecase) CreateDeal(ctx context.Context, input *dealdto.CreateDealInput) (*dealdto.DealOutput, error) {
	if err := uc.Policy.ValidateParties(input.CallerID, input.PayeeID, input.ArbiterID); err != nil {
		return nil, err
	}

	assetKind := domain.AssetKind(input.AssetKind)
	if assetKind == "" {
		assetKind = domain.AssetNative
	}

	amount := big.NewInt(0)
	switch assetKind {
	case domain.AssetNative:
		// Native deals escrow whatever the deposit actually carries; an
		// up-front amount has nothing to validate against.
		if input.Amount != nil && input.Amount.Sign() != 0 {
			return nil, fmt.Errorf("native deal: amount is fixed at deposit time")
		}
	case domain.AssetToken:
		if input.Token == "" {
			return nil, fmt.Errorf("token deal: token symbol is required")
		}
		if input.Amount == nil || input.Amount.Sign() <= 0 {
			return nil, fmt.Errorf("token deal: amount must be positive")
		}
		amount = new(big.Int).Set(input.Amount)
	default:
		return nil, fmt.Errorf("unknown asset kind: %s", input.AssetKind)
	}

	now := uc.now()
	deal := &domain.Deal{
		ID:          uuid.New().String(),
		PayerID:     input.CallerID,
		PayeeID:     input.PayeeID,
		ArbiterID:   input.ArbiterID,
		AssetKind:   assetKind,
		Token:       input.Token,
		Amount:      amount,
		HeldBalance: big.NewInt(0),
		Status:      domain.StatusAwaitingPayment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.DealRepo.CreateDeal(ctx, deal); err != nil {
		return nil, err
	}

	uc.publishDealEvent(publisher.DealEvent{
		Event:     publisher.EventDealCreated,
		DealID:    deal.ID,
		PayerID:   deal.PayerID,
		PayeeID:   deal.PayeeID,
		ArbiterID: deal.ArbiterID,
		AssetKind: string(deal.AssetKind),
		Token:     deal.Token,
		Amount:    amount.String(),
		Status:    string(deal.Status),
	})
	uc.recordDealCreatedMetrics(deal)

	return dealdto.ToDealOutput(deal), nil
}
