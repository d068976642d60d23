package dealapi

type CreateDealRequest struct {
	PayeeID   string `json:"payee_id"`
	ArbiterID string `json:"arbiter_id,omitempty"`
	AssetKind string `json:"asset_kind"`
	Token     string `json:"token,omitempty"`
	Amount    string `json:"amount,omitempty"`
}

type DepositRequest struct {
	Value string `json:"value,omitempty"`
}

type ApproveAllowanceRequest struct {
	Amount string `json:"amount"`
}

type RaiseDisputeRequest struct {
	Reason   string `json:"reason,omitempty"`
	ProofUrl string `json:"proof_url,omitempty"`
}

type ResolveDisputeRequest struct {
	WinnerID string `json:"winner_id"`
}
