package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DealMetrics собирает метрики жизненного цикла сделок
type DealMetrics struct {
	DealsCreatedTotal   *prometheus.CounterVec
	DealsDepositedTotal *prometheus.CounterVec

	DealsCompletedTotal *prometheus.CounterVec
	DealsRefundedTotal  *prometheus.CounterVec
	DealsResolvedTotal  *prometheus.CounterVec

	DisputesRaisedTotal *prometheus.CounterVec

	ExpiredClaimsTotal prometheus.Counter

	// Отклоненные выплаты: транзакция откатилась, средства остались в custody
	DisbursementFailuresTotal *prometheus.CounterVec

	DealsByStatus *prometheus.GaugeVec
	OverdueDeals  prometheus.Gauge

	SettlementDuration prometheus.Histogram
}

func NewDealMetrics() *DealMetrics {
	return &DealMetrics{
		DealsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_deals_created_total",
			Help: "Total escrow deals created",
		}, []string{"asset_kind"}),
		DealsDepositedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_deals_deposited_total",
			Help: "Total deals funded by the payer",
		}, []string{"asset_kind"}),
		DealsCompletedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_deals_completed_total",
			Help: "Total deals released to the payee",
		}, []string{"asset_kind"}),
		DealsRefundedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_deals_refunded_total",
			Help: "Total deals refunded to the payer",
		}, []string{"asset_kind", "trigger"}),
		DealsResolvedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_deals_resolved_total",
			Help: "Total disputed deals settled by the arbiter",
		}, []string{"asset_kind", "winner_role"}),
		DisputesRaisedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_disputes_raised_total",
			Help: "Total disputes raised",
		}, []string{"raised_by_role"}),
		ExpiredClaimsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "escrow_expired_claims_total",
			Help: "Total refunds claimed after the deadline",
		}),
		DisbursementFailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_disbursement_failures_total",
			Help: "Disbursement transfers rejected and rolled back",
		}, []string{"operation"}),
		DealsByStatus: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "escrow_deals_by_status",
			Help: "Current number of deals per status",
		}, []string{"status"}),
		OverdueDeals: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "escrow_overdue_deals",
			Help: "Funded deals past their deadline and still unclaimed",
		}),
		SettlementDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "escrow_settlement_duration_seconds",
			Help:    "Time from deal creation to a terminal state",
			Buckets: prometheus.ExponentialBuckets(60, 4, 10),
		}),
	}
}
