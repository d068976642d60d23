package usecase

import (
	"context"
	"math/big"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	dealdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/deal"
)

func (uc *DefaultDealUsecase) GetDealByID(ctx context.Context, dealID string) (*dealdto.DealOutput, error) {
	deal, err := uc.DealRepo.GetDealByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	return dealdto.ToDealOutput(deal), nil
}

// GetDealBalance reports the custody balance the state machine tracks, not
// the ambient ledger balance of the vault account.
func (uc *DefaultDealUsecase) GetDealBalance(ctx context.Context, dealID string) (*big.Int, error) {
	deal, err := uc.DealRepo.GetDealByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.HeldBalance == nil {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(deal.HeldBalance), nil
}

// GetAccountBalance reads a party's ledger balance. An empty token means the
// native one.
func (uc *DefaultDealUsecase) GetAccountBalance(ctx context.Context, userID, token string) (*big.Int, error) {
	if token == "" {
		token = domain.NativeToken
	}
	return uc.Ledger.GetBalance(ctx, userID, token)
}

// ListDealIDs returns the registry snapshot in creation order.
func (uc *DefaultDealUsecase) ListDealIDs(ctx context.Context) ([]string, error) {
	return uc.DealRepo.ListDealIDs(ctx)
}

func (uc *DefaultDealUsecase) GetDealsByParty(ctx context.Context, partyID string, page, limit int64) ([]*dealdto.DealOutput, int64, error) {
	deals, total, err := uc.DealRepo.GetDealsByParty(ctx, partyID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	outputs := make([]*dealdto.DealOutput, len(deals))
	for i, deal := range deals {
		outputs[i] = dealdto.ToDealOutput(deal)
	}
	return outputs, total, nil
}

func (uc *DefaultDealUsecase) FindOverdueDeals(ctx context.Context) ([]*dealdto.DealOutput, error) {
	deals, err := uc.DealRepo.FindOverdueDeals(ctx, uc.now())
	if err != nil {
		return nil, err
	}
	outputs := make([]*dealdto.DealOutput, len(deals))
	for i, deal := range deals {
		outputs[i] = dealdto.ToDealOutput(deal)
	}
	return outputs, nil
}

func (uc *DefaultDealUsecase) CountDealsByStatus(ctx context.Context) (map[domain.DealStatus]int64, error) {
	return uc.DealRepo.CountDealsByStatus(ctx)
}
