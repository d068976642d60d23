package repository

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDisputeRepository struct {
	DB *gorm.DB
}

func NewDefaultDisputeRepository(db *gorm.DB) *DefaultDisputeRepository {
	return &DefaultDisputeRepository{DB: db}
}

func (r *DefaultDisputeRepository) CreateDispute(ctx context.Context, dispute *domain.DisputeRecord) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMDispute(dispute)).Error
}

func (r *DefaultDisputeRepository) ResolveDispute(ctx context.Context, disputeID, winnerID string, resolvedAt time.Time) error {
	return r.DB.WithContext(ctx).Model(&models.DisputeModel{}).
		Where("id = ?", disputeID).
		Updates(map[string]interface{}{
			"status":      string(domain.DisputeResolved),
			"winner_id":   winnerID,
			"resolved_at": resolvedAt,
		}).Error
}

func (r *DefaultDisputeRepository) GetDisputeByDealID(ctx context.Context, dealID string) (*domain.DisputeRecord, error) {
	var disputeModel models.DisputeModel
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		First(&disputeModel, "deal_id = ?", dealID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrDealNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainDispute(&disputeModel), nil
}

func (r *DefaultDisputeRepository) GetDisputes(ctx context.Context, page, limit int64, status string) ([]*domain.DisputeRecord, int64, error) {
	var disputeModels []models.DisputeModel
	var total int64

	query := r.DB.WithContext(ctx).Model(&models.DisputeModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if err := query.
		Order("created_at DESC").
		Offset(int((page - 1) * limit)).
		Limit(int(limit)).
		Find(&disputeModels).Error; err != nil {
		return nil, 0, err
	}

	disputes := make([]*domain.DisputeRecord, len(disputeModels))
	for i := range disputeModels {
		disputes[i] = mappers.ToDomainDispute(&disputeModels[i])
	}
	return disputes, total, nil
}
