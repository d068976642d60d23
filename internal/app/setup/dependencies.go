package setup

import (
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/config"
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	publisher "github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/repository"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config        *config.EscrowConfig
	DB            *gorm.DB
	DealPublisher *publisher.DefaultKafkaPublisher
	AuditLogger   logger.DealAuditLogger
	Metrics       *metrics.DealMetrics
	Repositories  *Repositories
}

type Repositories struct {
	DealRepo    domain.DealRepository
	DisputeRepo domain.DisputeRepository
	LedgerRepo  domain.LedgerRepository
}

func InitializeDependencies(cfg *config.EscrowConfig) (*Dependencies, error) {
	db := postgres.MustInitDB(cfg)

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	dealPublisher := publisher.NewDefaultKafkaPublisher(brokers)

	repos := &Repositories{
		DealRepo:    repository.NewDefaultDealRepository(db),
		DisputeRepo: repository.NewDefaultDisputeRepository(db),
		LedgerRepo:  repository.NewDefaultLedgerRepository(db),
	}

	return &Dependencies{
		Config:        cfg,
		DB:            db,
		DealPublisher: dealPublisher,
		AuditLogger:   logger.NewPGDealAuditLogger(db),
		Metrics:       metrics.NewDealMetrics(),
		Repositories:  repos,
	}, nil
}
