package dealdto

import "math/big"

type CreateDealInput struct {
	CallerID  string
	PayeeID   string
	ArbiterID string
	AssetKind string
	Token     string
	Amount    *big.Int
}

type DepositInput struct {
	DealID   string
	CallerID string
	Value    *big.Int
}

type RaiseDisputeInput struct {
	DealID   string
	CallerID string
	Reason   string
	ProofUrl string
}

type ResolveDisputeInput struct {
	DealID   string
	CallerID string
	WinnerID string
}

type ApproveAllowanceInput struct {
	CallerID string
	DealID   string
	Amount   *big.Int
}
