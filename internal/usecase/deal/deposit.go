package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	publisher "github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-escrow-service/internal/policy"
	dealdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/deal"
)

// Deposit locks the payer's value into the deal vault and starts the
// deadline clock. Exactly one deposit can ever succeed: the transition is a
// compare-and-set from AWAITING_PAYMENT, so a second attempt fails the state
// check regardless of interleaving.
//
// Native deals escrow the value carried by the call. Token deals ignore the
// call value and pull the pre-agreed amount through the allowance the payer
// granted the deal beforehand.
func (uc *DefaultDealUsecase) Deposit(ctx context.Context, input *dealdto.DepositInput) error {
	deal, err := uc.DealRepo.GetDealByID(ctx, input.DealID)
	if err != nil {
		return err
	}
	if err := uc.Policy.Allowed(deal, input.CallerID, policy.ActionDeposit); err != nil {
		return err
	}

	var amount *big.Int
	switch deal.AssetKind {
	case domain.AssetNative:
		if input.Value == nil || input.Value.Sign() <= 0 {
			return fmt.Errorf("deposit value must be positive")
		}
		amount = new(big.Int).Set(input.Value)
	case domain.AssetToken:
		amount = new(big.Int).Set(deal.Amount)
	default:
		return fmt.Errorf("unknown asset kind: %s", deal.AssetKind)
	}

	deadline := uc.now().Add(uc.DepositTTL)
	transition := &domain.DealTransition{
		DealID:      deal.ID,
		FromStatus:  domain.StatusAwaitingPayment,
		ToStatus:    domain.StatusAwaitingDelivery,
		HeldBalance: amount,
		Amount:      amount,
		DeadlineAt:  &deadline,
	}

	payerID := deal.PayerID
	dealID := deal.ID
	token := deal.AssetToken()
	var transfer func(vt domain.ValueTransfer) error
	if deal.AssetKind == domain.AssetToken {
		transfer = func(vt domain.ValueTransfer) error {
			return vt.TransferFrom(ctx, payerID, dealID, domain.DealVaultID(dealID), token, amount)
		}
	} else {
		transfer = func(vt domain.ValueTransfer) error {
			return vt.Transfer(ctx, payerID, domain.DealVaultID(dealID), token, amount)
		}
	}

	op := &dealOperation{
		Operation:  "deposit",
		CallerID:   input.CallerID,
		Transition: transition,
		Transfer:   transfer,
		Event:      publisher.EventDealDeposited,
	}
	deal.Amount = amount
	if err := uc.processDealOperation(ctx, deal, op); err != nil {
		return err
	}

	uc.recordDealDepositedMetrics(deal)
	return nil
}

// ApproveAllowance lets the payer pre-authorise the token pull a later
// Deposit will perform. The deal never draws more than its amount and never
// moves the payer's tokens outside of Deposit.
func (uc *DefaultDealUsecase) ApproveAllowance(ctx context.Context, input *dealdto.ApproveAllowanceInput) error {
	deal, err := uc.DealRepo.GetDealByID(ctx, input.DealID)
	if err != nil {
		return err
	}
	if deal.AssetKind != domain.AssetToken {
		return fmt.Errorf("allowance applies to token deals only")
	}
	if input.CallerID != deal.PayerID {
		return domain.ErrUnauthorized
	}
	return uc.Ledger.Approve(ctx, input.CallerID, deal.ID, deal.Token, input.Amount)
}
