// Package policy holds the pure authorization rules of the escrow state
// machine: which caller may perform which action in which deal state. It
// never mutates anything, so every rule is testable in isolation.
package policy

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

type Action string

const (
	ActionDeposit         Action = "deposit"
	ActionConfirmShipment Action = "confirm_shipment"
	ActionRelease         Action = "release"
	ActionRefund          Action = "refund"
	ActionRaiseDispute    Action = "raise_dispute"
	ActionResolveDispute  Action = "resolve_dispute"
	ActionClaimExpired    Action = "claim_expired"
	ActionPause           Action = "pause"
	ActionUnpause         Action = "unpause"
)

// custodyActions move value in or out of the deal's custody and are the ones
// denied while a deal is paused.
var custodyActions = map[Action]bool{
	ActionDeposit:        true,
	ActionRelease:        true,
	ActionRefund:         true,
	ActionResolveDispute: true,
	ActionClaimExpired:   true,
}

// Policy carries the configurable trust-model knobs:
//   - ReleaseRequiresShipment picks the delivery-confirmation model (release
//     only from SHIPPED) over the buyer-trust model (release directly from
//     AWAITING_DELIVERY).
//   - AllowSamePayerPayee relaxes the payer != payee creation rule.
//   - OperatorID is the administrative owner allowed to pause and unpause.
type Policy struct {
	OperatorID              string
	ReleaseRequiresShipment bool
	AllowSamePayerPayee     bool
}

// Allowed checks caller identity and deal state for the requested action.
// It returns nil when the action is permitted, domain.ErrPaused while the
// deal is administratively halted, domain.ErrUnauthorized for a wrong
// caller, and domain.ErrInvalidState for a state the action is illegal in.
func (p Policy) Allowed(deal *domain.Deal, callerID string, action Action) error {
	if deal == nil {
		return domain.ErrDealNotFound
	}
	if deal.Paused && custodyActions[action] {
		return domain.ErrPaused
	}

	switch action {
	case ActionDeposit:
		if callerID != deal.PayerID {
			return domain.ErrUnauthorized
		}
		return p.requireStatus(deal, domain.StatusAwaitingPayment)

	case ActionConfirmShipment:
		if callerID != deal.PayeeID {
			return domain.ErrUnauthorized
		}
		return p.requireStatus(deal, domain.StatusAwaitingDelivery)

	case ActionRelease:
		if callerID != deal.PayerID && !p.isArbiter(deal, callerID) {
			return domain.ErrUnauthorized
		}
		if p.ReleaseRequiresShipment {
			return p.requireStatus(deal, domain.StatusShipped)
		}
		return p.requireStatus(deal, domain.StatusAwaitingDelivery, domain.StatusShipped)

	case ActionRefund:
		if callerID != deal.PayerID && !p.isArbiter(deal, callerID) {
			return domain.ErrUnauthorized
		}
		return p.requireStatus(deal, domain.StatusAwaitingDelivery)

	case ActionRaiseDispute:
		if callerID != deal.PayerID && callerID != deal.PayeeID {
			return domain.ErrUnauthorized
		}
		return p.requireStatus(deal, domain.StatusAwaitingDelivery)

	case ActionResolveDispute:
		if !p.isArbiter(deal, callerID) {
			return domain.ErrUnauthorized
		}
		return p.requireStatus(deal, domain.StatusDisputed)

	case ActionClaimExpired:
		if callerID != deal.PayerID {
			return domain.ErrUnauthorized
		}
		return p.requireStatus(deal, domain.StatusAwaitingDelivery)

	case ActionPause:
		if callerID != p.OperatorID {
			return domain.ErrUnauthorized
		}
		if deal.Paused || deal.Status.Terminal() {
			return domain.ErrInvalidState
		}
		return nil

	case ActionUnpause:
		if callerID != p.OperatorID {
			return domain.ErrUnauthorized
		}
		if !deal.Paused {
			return domain.ErrInvalidState
		}
		return nil

	default:
		return domain.ErrUnauthorized
	}
}

// ValidateParties applies the creation-time identity rules.
func (p Policy) ValidateParties(payerID, payeeID, arbiterID string) error {
	if payerID == "" || payeeID == "" {
		return domain.ErrUnauthorized
	}
	if !p.AllowSamePayerPayee && payerID == payeeID {
		return domain.ErrUnauthorized
	}
	if arbiterID != "" && (arbiterID == payerID || arbiterID == payeeID) {
		return domain.ErrUnauthorized
	}
	return nil
}

// ValidateWinner gates resolveDispute targets.
func ValidateWinner(deal *domain.Deal, winnerID string) error {
	if winnerID != deal.PayerID && winnerID != deal.PayeeID {
		return domain.ErrInvalidWinner
	}
	return nil
}

func (p Policy) isArbiter(deal *domain.Deal, callerID string) bool {
	return deal.HasArbiter() && callerID == deal.ArbiterID
}

func (p Policy) requireStatus(deal *domain.Deal, allowed ...domain.DealStatus) error {
	for _, status := range allowed {
		if deal.Status == status {
			return nil
		}
	}
	return domain.ErrInvalidState
}
