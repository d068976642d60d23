package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDealRepository struct {
	DB *gorm.DB
}

func NewDefaultDealRepository(db *gorm.DB) *DefaultDealRepository {
	return &DefaultDealRepository{DB: db}
}

func (r *DefaultDealRepository) CreateDeal(ctx context.Context, deal *domain.Deal) error {
	dealModel := mappers.ToGORMDeal(deal)
	if err := r.DB.WithContext(ctx).Create(dealModel).Error; err != nil {
		return err
	}
	// Seq is assigned by the database; reflect it back for the registry entry.
	deal.Seq = dealModel.Seq
	return nil
}

func (r *DefaultDealRepository) GetDealByID(ctx context.Context, dealID string) (*domain.Deal, error) {
	var dealModel models.DealModel
	if err := r.DB.WithContext(ctx).First(&dealModel, "id = ?", dealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDealNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDeal(&dealModel), nil
}

// ApplyTransition commits one state-machine step atomically. The status move
// is a compare-and-set so a concurrent or re-entrant invocation that lost the
// race observes the already-advanced state and fails the state check. The
// ledger interaction runs last, inside the same transaction: a rejected
// transfer rolls back the status move and the custody mutation together.
func (r *DefaultDealRepository) ApplyTransition(ctx context.Context, tr *domain.DealTransition, transfer func(vt domain.ValueTransfer) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":     tr.ToStatus,
			"updated_at": time.Now(),
		}
		if tr.HeldBalance != nil {
			updates["held_balance"] = mappers.AmountToColumn(tr.HeldBalance)
		}
		if tr.Amount != nil {
			updates["amount"] = mappers.AmountToColumn(tr.Amount)
		}
		if tr.DeadlineAt != nil {
			updates["deadline_at"] = tr.DeadlineAt
		}

		result := tx.Model(&models.DealModel{}).
			Where("id = ? AND status = ?", tr.DealID, tr.FromStatus).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.DealModel{}).Where("id = ?", tr.DealID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrDealNotFound
			}
			return domain.ErrInvalidState
		}

		if transfer != nil {
			if err := transfer(NewDefaultLedgerRepository(tx)); err != nil {
				return fmt.Errorf("transition %s -> %s: %w", tr.FromStatus, tr.ToStatus, err)
			}
		}
		return nil
	})
}

func (r *DefaultDealRepository) SetPaused(ctx context.Context, dealID string, paused bool) error {
	result := r.DB.WithContext(ctx).Model(&models.DealModel{}).
		Where("id = ?", dealID).
		Updates(map[string]interface{}{"paused": paused, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDealNotFound
	}
	return nil
}

// ListDealIDs returns the registry: every deal ever created, in creation
// order. The sequence is append-only so the listing is stable.
func (r *DefaultDealRepository) ListDealIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.DB.WithContext(ctx).Model(&models.DealModel{}).
		Order("seq ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *DefaultDealRepository) GetDealsByParty(ctx context.Context, partyID string, page, limit int64) ([]*domain.Deal, int64, error) {
	var dealModels []models.DealModel
	var total int64

	baseQuery := r.DB.WithContext(ctx).Model(&models.DealModel{}).
		Where("payer_id = ? OR payee_id = ? OR arbiter_id = ?", partyID, partyID, partyID)

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count deals: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit
	if err := baseQuery.
		Order("seq ASC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&dealModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find deals: %w", err)
	}

	deals := make([]*domain.Deal, len(dealModels))
	for i := range dealModels {
		deals[i] = mappers.ToDomainDeal(&dealModels[i])
	}
	return deals, total, nil
}

func (r *DefaultDealRepository) FindOverdueDeals(ctx context.Context, now time.Time) ([]*domain.Deal, error) {
	var dealModels []models.DealModel
	if err := r.DB.WithContext(ctx).
		Where("status = ?", domain.StatusAwaitingDelivery).
		Where("deadline_at IS NOT NULL AND deadline_at <= ?", now).
		Find(&dealModels).Error; err != nil {
		return nil, err
	}

	deals := make([]*domain.Deal, len(dealModels))
	for i := range dealModels {
		deals[i] = mappers.ToDomainDeal(&dealModels[i])
	}
	return deals, nil
}

func (r *DefaultDealRepository) CountDealsByStatus(ctx context.Context) (map[domain.DealStatus]int64, error) {
	type statusCount struct {
		Status domain.DealStatus
		Count  int64
	}
	var rows []statusCount
	if err := r.DB.WithContext(ctx).Model(&models.DealModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[domain.DealStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
