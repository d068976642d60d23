package dealapi

import (
	"time"

	dealdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/deal"
)

type DealResponse struct {
	DealID      string     `json:"deal_id"`
	Seq         uint64     `json:"seq"`
	PayerID     string     `json:"payer_id"`
	PayeeID     string     `json:"payee_id"`
	ArbiterID   string     `json:"arbiter_id,omitempty"`
	AssetKind   string     `json:"asset_kind"`
	Token       string     `json:"token,omitempty"`
	Amount      string     `json:"amount"`
	HeldBalance string     `json:"held_balance"`
	Status      string     `json:"status"`
	Paused      bool       `json:"paused"`
	DeadlineAt  *time.Time `json:"deadline_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToDealResponse(out *dealdto.DealOutput) *DealResponse {
	return &DealResponse{
		DealID:      out.DealID,
		Seq:         out.Seq,
		PayerID:     out.PayerID,
		PayeeID:     out.PayeeID,
		ArbiterID:   out.ArbiterID,
		AssetKind:   out.AssetKind,
		Token:       out.Token,
		Amount:      out.Amount,
		HeldBalance: out.HeldBalance,
		Status:      out.Status,
		Paused:      out.Paused,
		DeadlineAt:  out.DeadlineAt,
		CreatedAt:   out.CreatedAt,
		UpdatedAt:   out.UpdatedAt,
	}
}

func ToDealResponses(outs []*dealdto.DealOutput) []*DealResponse {
	responses := make([]*DealResponse, 0, len(outs))
	for _, out := range outs {
		responses = append(responses, ToDealResponse(out))
	}
	return responses
}

type AccountBalanceResponse struct {
	UserID  string `json:"user_id"`
	Token   string `json:"token,omitempty"`
	Balance string `json:"balance"`
}

type BalanceResponse struct {
	DealID      string `json:"deal_id"`
	HeldBalance string `json:"held_balance"`
}

type DealListResponse struct {
	DealIDs []string `json:"deal_ids"`
	Total   int      `json:"total"`
}

type DealPageResponse struct {
	Deals []*DealResponse `json:"deals"`
	Total int64           `json:"total"`
	Page  int64           `json:"page"`
	Limit int64           `json:"limit"`
}
