package usecase

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

func (uc *DefaultDealUsecase) recordDealCreatedMetrics(deal *domain.Deal) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.DealsCreatedTotal.WithLabelValues(string(deal.AssetKind)).Inc()
}

func (uc *DefaultDealUsecase) recordDealDepositedMetrics(deal *domain.Deal) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.DealsDepositedTotal.WithLabelValues(string(deal.AssetKind)).Inc()
}

func (uc *DefaultDealUsecase) recordDealSettledMetrics(deal *domain.Deal, outcome, trigger string) {
	if uc.Metrics == nil {
		return
	}
	switch outcome {
	case "completed":
		uc.Metrics.DealsCompletedTotal.WithLabelValues(string(deal.AssetKind)).Inc()
	case "refunded":
		uc.Metrics.DealsRefundedTotal.WithLabelValues(string(deal.AssetKind), trigger).Inc()
	}
	uc.Metrics.SettlementDuration.Observe(uc.now().Sub(deal.CreatedAt).Seconds())
}

func (uc *DefaultDealUsecase) recordDealResolvedMetrics(deal *domain.Deal, winnerID string) {
	if uc.Metrics == nil {
		return
	}
	role := "payee"
	if winnerID == deal.PayerID {
		role = "payer"
	}
	uc.Metrics.DealsResolvedTotal.WithLabelValues(string(deal.AssetKind), role).Inc()
	uc.Metrics.SettlementDuration.Observe(uc.now().Sub(deal.CreatedAt).Seconds())
}

func (uc *DefaultDealUsecase) recordDisputeRaisedMetrics(deal *domain.Deal, raisedBy string) {
	if uc.Metrics == nil {
		return
	}
	role := "payee"
	if raisedBy == deal.PayerID {
		role = "payer"
	}
	uc.Metrics.DisputesRaisedTotal.WithLabelValues(role).Inc()
}

func (uc *DefaultDealUsecase) recordExpiredClaimMetrics(deal *domain.Deal) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.ExpiredClaimsTotal.Inc()
	uc.Metrics.DealsRefundedTotal.WithLabelValues(string(deal.AssetKind), "deadline").Inc()
	uc.Metrics.SettlementDuration.Observe(uc.now().Sub(deal.CreatedAt).Seconds())
}

func (uc *DefaultDealUsecase) recordDisbursementFailure(operation string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.DisbursementFailuresTotal.WithLabelValues(operation).Inc()
}
