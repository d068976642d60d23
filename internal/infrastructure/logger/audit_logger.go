package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DealTransitionEvent is the append-only audit row written for every
// successful state transition, so a deal's history survives as an immutable
// record even after it reaches a terminal state.
type DealTransitionEvent struct {
	ID         uint `gorm:"primaryKey"`
	DealID     string
	Operation  string
	CallerID   string
	FromStatus string
	ToStatus   string
	Amount     string
	Timestamp  time.Time
}

type DealAuditLogger interface {
	LogDealTransition(ctx context.Context, event DealTransitionEvent) error
}

type PGDealAuditLogger struct {
	db *gorm.DB
}

func NewPGDealAuditLogger(db *gorm.DB) *PGDealAuditLogger {
	return &PGDealAuditLogger{db: db}
}

func (l *PGDealAuditLogger) LogDealTransition(ctx context.Context, event DealTransitionEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}
