package publisher

const (
	EventDealCreated         = "deal.created"
	EventDealDeposited       = "deal.deposited"
	EventDealShipped         = "deal.shipped"
	EventDealReleased        = "deal.released"
	EventDealDisputeRaised   = "deal.dispute_raised"
	EventDealDisputeResolved = "deal.dispute_resolved"
	EventDealRefunded        = "deal.refunded"
	EventDealExpiredClaimed  = "deal.expired_claimed"
	EventDealDeadlineElapsed = "deal.deadline_elapsed"
	EventDealPaused          = "deal.paused"
	EventDealUnpaused        = "deal.unpaused"
)

type DealEvent struct {
	Event     string `json:"event"`
	DealID    string `json:"deal_id"`
	PayerID   string `json:"payer_id"`
	PayeeID   string `json:"payee_id"`
	ArbiterID string `json:"arbiter_id,omitempty"`
	AssetKind string `json:"asset_kind"`
	Token     string `json:"token,omitempty"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
	WinnerID  string `json:"winner_id,omitempty"`
}
