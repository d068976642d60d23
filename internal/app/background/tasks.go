package background

import (
	"context"
	"log/slog"
	"sync"
	"time"

	publisher "github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
	usecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/deal"
)

type BackgroundTasks struct {
	DealUsecase usecase.DealUsecase
	Publisher   *publisher.DefaultKafkaPublisher
	Metrics     *metrics.DealMetrics
	Topic       string

	mu       sync.Mutex
	notified map[string]struct{}
}

func NewBackgroundTasks(
	dealUC usecase.DealUsecase,
	pub *publisher.DefaultKafkaPublisher,
	dealMetrics *metrics.DealMetrics,
	topic string,
) *BackgroundTasks {
	return &BackgroundTasks{
		DealUsecase: dealUC,
		Publisher:   pub,
		Metrics:     dealMetrics,
		Topic:       topic,
		notified:    make(map[string]struct{}),
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startDeadlineMonitor(ctx)
	go bt.startStatusMetricsRefresh(ctx)
}

// startDeadlineMonitor watches for funded deals whose deposit deadline has
// elapsed and announces them. No funds move here: the refund itself stays a
// caller-initiated claim.
func (bt *BackgroundTasks) startDeadlineMonitor(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deals, err := bt.DealUsecase.FindOverdueDeals(ctx)
			if err != nil {
				slog.Error("deadline monitor scan failed", "error", err.Error())
				continue
			}

			if bt.Metrics != nil {
				bt.Metrics.OverdueDeals.Set(float64(len(deals)))
			}

			for _, deal := range deals {
				if bt.alreadyNotified(deal.DealID) {
					continue
				}
				event := publisher.DealEvent{
					Event:     publisher.EventDealDeadlineElapsed,
					DealID:    deal.DealID,
					PayerID:   deal.PayerID,
					PayeeID:   deal.PayeeID,
					ArbiterID: deal.ArbiterID,
					AssetKind: deal.AssetKind,
					Token:     deal.Token,
					Amount:    deal.Amount,
					Status:    deal.Status,
				}
				if err := bt.Publisher.PublishDeal(bt.Topic, event); err != nil {
					slog.Error("failed to publish deadline event",
						"deal_id", deal.DealID,
						"error", err.Error())
					continue
				}
				bt.markNotified(deal.DealID)
			}
		}
	}
}

func (bt *BackgroundTasks) startStatusMetricsRefresh(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			counts, err := bt.DealUsecase.CountDealsByStatus(ctx)
			if err != nil {
				slog.Error("status metrics refresh failed", "error", err.Error())
				continue
			}
			if bt.Metrics == nil {
				continue
			}
			for status, count := range counts {
				bt.Metrics.DealsByStatus.WithLabelValues(string(status)).Set(float64(count))
			}
		}
	}
}

func (bt *BackgroundTasks) alreadyNotified(dealID string) bool {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	_, ok := bt.notified[dealID]
	return ok
}

func (bt *BackgroundTasks) markNotified(dealID string) {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	bt.notified[dealID] = struct{}{}
}
