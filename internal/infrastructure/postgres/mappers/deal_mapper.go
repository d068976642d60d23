package mappers

import (
	"math/big"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
)

func ToGORMDeal(deal *domain.Deal) *models.DealModel {
	return &models.DealModel{
		ID:          deal.ID,
		Seq:         deal.Seq,
		PayerID:     deal.PayerID,
		PayeeID:     deal.PayeeID,
		ArbiterID:   deal.ArbiterID,
		AssetKind:   string(deal.AssetKind),
		Token:       deal.Token,
		Amount:      AmountToColumn(deal.Amount),
		HeldBalance: AmountToColumn(deal.HeldBalance),
		Status:      deal.Status,
		Paused:      deal.Paused,
		DeadlineAt:  deal.DeadlineAt,
		CreatedAt:   deal.CreatedAt,
		UpdatedAt:   deal.UpdatedAt,
	}
}

func ToDomainDeal(model *models.DealModel) *domain.Deal {
	return &domain.Deal{
		ID:          model.ID,
		Seq:         model.Seq,
		PayerID:     model.PayerID,
		PayeeID:     model.PayeeID,
		ArbiterID:   model.ArbiterID,
		AssetKind:   domain.AssetKind(model.AssetKind),
		Token:       model.Token,
		Amount:      ColumnToAmount(model.Amount),
		HeldBalance: ColumnToAmount(model.HeldBalance),
		Status:      model.Status,
		Paused:      model.Paused,
		DeadlineAt:  model.DeadlineAt,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMDispute(dispute *domain.DisputeRecord) *models.DisputeModel {
	return &models.DisputeModel{
		ID:         dispute.ID,
		DealID:     dispute.DealID,
		RaisedBy:   dispute.RaisedBy,
		Reason:     dispute.Reason,
		ProofUrl:   dispute.ProofUrl,
		Status:     string(dispute.Status),
		WinnerID:   dispute.WinnerID,
		CreatedAt:  dispute.CreatedAt,
		ResolvedAt: dispute.ResolvedAt,
	}
}

func ToDomainDispute(model *models.DisputeModel) *domain.DisputeRecord {
	return &domain.DisputeRecord{
		ID:         model.ID,
		DealID:     model.DealID,
		RaisedBy:   model.RaisedBy,
		Reason:     model.Reason,
		ProofUrl:   model.ProofUrl,
		Status:     domain.DisputeStatus(model.Status),
		WinnerID:   model.WinnerID,
		CreatedAt:  model.CreatedAt,
		ResolvedAt: model.ResolvedAt,
	}
}

// AmountToColumn serialises a custody amount for the numeric column. A nil
// amount is stored as zero so the column never goes NULL.
func AmountToColumn(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}

// ColumnToAmount parses the numeric column back into a big.Int. An
// unparseable value is treated as zero rather than poisoning reads.
func ColumnToAmount(column string) *big.Int {
	amount, ok := new(big.Int).SetString(column, 10)
	if !ok {
		return big.NewInt(0)
	}
	return amount
}
