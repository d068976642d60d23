package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	dealapi "github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/deal"
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	dealdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/deal"
	usecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/deal"
)

// CallerHeader carries the authenticated party ID. The gateway in front of
// the service is responsible for verifying it.
const CallerHeader = "X-Caller-ID"

type DealHandler struct {
	uc usecase.DealUsecase
}

func NewDealHandler(uc usecase.DealUsecase) *DealHandler {
	return &DealHandler{uc: uc}
}

func (h *DealHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet)

	r.HandleFunc("/deals", h.CreateDeal).Methods(http.MethodPost)
	r.HandleFunc("/deals", h.ListDeals).Methods(http.MethodGet)
	r.HandleFunc("/deals/overdue", h.OverdueDeals).Methods(http.MethodGet)
	r.HandleFunc("/deals/{id}", h.GetDeal).Methods(http.MethodGet)
	r.HandleFunc("/deals/{id}/balance", h.GetBalance).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}/balance", h.GetAccountBalance).Methods(http.MethodGet)

	r.HandleFunc("/deals/{id}/deposit", h.Deposit).Methods(http.MethodPost)
	r.HandleFunc("/deals/{id}/approve", h.ApproveAllowance).Methods(http.MethodPost)
	r.HandleFunc("/deals/{id}/ship", h.ConfirmShipment).Methods(http.MethodPost)
	r.HandleFunc("/deals/{id}/release", h.Release).Methods(http.MethodPost)
	r.HandleFunc("/deals/{id}/refund", h.Refund).Methods(http.MethodPost)
	r.HandleFunc("/deals/{id}/dispute", h.RaiseDispute).Methods(http.MethodPost)
	r.HandleFunc("/deals/{id}/resolve", h.ResolveDispute).Methods(http.MethodPost)
	r.HandleFunc("/deals/{id}/claim", h.ClaimExpired).Methods(http.MethodPost)
	r.HandleFunc("/deals/{id}/pause", h.Pause).Methods(http.MethodPost)
	r.HandleFunc("/deals/{id}/unpause", h.Unpause).Methods(http.MethodPost)
}

func (h *DealHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DealHandler) CreateDeal(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req dealapi.CreateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}
	if req.PayeeID == "" {
		respondWithError(w, http.StatusBadRequest, "payee_id required")
		return
	}

	var amount *big.Int
	if req.Amount != "" {
		parsed, err := parseAmount(req.Amount)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "amount must be a non-negative integer")
			return
		}
		amount = parsed
	}

	out, err := h.uc.CreateDeal(r.Context(), &dealdto.CreateDealInput{
		CallerID:  callerID,
		PayeeID:   req.PayeeID,
		ArbiterID: req.ArbiterID,
		AssetKind: req.AssetKind,
		Token:     req.Token,
		Amount:    amount,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, dealapi.ToDealResponse(out))
}

func (h *DealHandler) GetDeal(w http.ResponseWriter, r *http.Request) {
	dealID := mux.Vars(r)["id"]
	out, err := h.uc.GetDealByID(r.Context(), dealID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, dealapi.ToDealResponse(out))
}

func (h *DealHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	dealID := mux.Vars(r)["id"]
	balance, err := h.uc.GetDealBalance(r.Context(), dealID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, dealapi.BalanceResponse{
		DealID:      dealID,
		HeldBalance: balance.String(),
	})
}

func (h *DealHandler) GetAccountBalance(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	token := r.URL.Query().Get("token")
	balance, err := h.uc.GetAccountBalance(r.Context(), userID, token)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, dealapi.AccountBalanceResponse{
		UserID:  userID,
		Token:   token,
		Balance: balance.String(),
	})
}

// ListDeals returns every deal ID in creation order, or a paginated page of
// deals for a single party when ?party= is set.
func (h *DealHandler) ListDeals(w http.ResponseWriter, r *http.Request) {
	party := r.URL.Query().Get("party")
	if party == "" {
		ids, err := h.uc.ListDealIDs(r.Context())
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, dealapi.DealListResponse{DealIDs: ids, Total: len(ids)})
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 50)
	deals, total, err := h.uc.GetDealsByParty(r.Context(), party, page, limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, dealapi.DealPageResponse{
		Deals: dealapi.ToDealResponses(deals),
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (h *DealHandler) OverdueDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := h.uc.FindOverdueDeals(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, dealapi.ToDealResponses(deals))
}

func (h *DealHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	dealID := mux.Vars(r)["id"]

	var req dealapi.DepositRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	var value *big.Int
	if req.Value != "" {
		parsed, err := parseAmount(req.Value)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "value must be a non-negative integer")
			return
		}
		value = parsed
	}

	err := h.uc.Deposit(r.Context(), &dealdto.DepositInput{
		DealID:   dealID,
		CallerID: callerID,
		Value:    value,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deposited"})
}

func (h *DealHandler) ApproveAllowance(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	dealID := mux.Vars(r)["id"]

	var req dealapi.ApproveAllowanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "amount must be a non-negative integer")
		return
	}

	err = h.uc.ApproveAllowance(r.Context(), &dealdto.ApproveAllowanceInput{
		CallerID: callerID,
		DealID:   dealID,
		Amount:   amount,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

func (h *DealHandler) ConfirmShipment(w http.ResponseWriter, r *http.Request) {
	h.simpleTransition(w, r, h.uc.ConfirmShipment, "shipped")
}

func (h *DealHandler) Release(w http.ResponseWriter, r *http.Request) {
	h.simpleTransition(w, r, h.uc.Release, "released")
}

func (h *DealHandler) Refund(w http.ResponseWriter, r *http.Request) {
	h.simpleTransition(w, r, h.uc.Refund, "refunded")
}

func (h *DealHandler) ClaimExpired(w http.ResponseWriter, r *http.Request) {
	h.simpleTransition(w, r, h.uc.ClaimExpired, "claimed")
}

func (h *DealHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.simpleTransition(w, r, h.uc.Pause, "paused")
}

func (h *DealHandler) Unpause(w http.ResponseWriter, r *http.Request) {
	h.simpleTransition(w, r, h.uc.Unpause, "unpaused")
}

func (h *DealHandler) RaiseDispute(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	dealID := mux.Vars(r)["id"]

	var req dealapi.RaiseDisputeRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	err := h.uc.RaiseDispute(r.Context(), &dealdto.RaiseDisputeInput{
		DealID:   dealID,
		CallerID: callerID,
		Reason:   req.Reason,
		ProofUrl: req.ProofUrl,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "disputed"})
}

func (h *DealHandler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	dealID := mux.Vars(r)["id"]

	var req dealapi.ResolveDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}
	if req.WinnerID == "" {
		respondWithError(w, http.StatusBadRequest, "winner_id required")
		return
	}

	err := h.uc.ResolveDispute(r.Context(), &dealdto.ResolveDisputeInput{
		DealID:   dealID,
		CallerID: callerID,
		WinnerID: req.WinnerID,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "resolved"})
}

func (h *DealHandler) simpleTransition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, dealID, callerID string) error,
	status string,
) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	dealID := mux.Vars(r)["id"]

	if err := op(r.Context(), dealID, callerID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": status})
}

func callerFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	callerID := r.Header.Get(CallerHeader)
	if callerID == "" {
		respondWithError(w, http.StatusUnauthorized, "Missing "+CallerHeader+" header")
		return "", false
	}
	return callerID, true
}

func parseAmount(raw string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok || amount.Sign() < 0 {
		return nil, errors.New("invalid amount")
	}
	return amount, nil
}

func queryInt(r *http.Request, key string, fallback int64) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func decodeOptionalBody(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return nil
}

func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDealNotFound):
		respondWithError(w, http.StatusNotFound, "Deal not found")
	case errors.Is(err, domain.ErrUnauthorized):
		respondWithError(w, http.StatusForbidden, "Caller is not allowed to perform this operation")
	case errors.Is(err, domain.ErrInvalidState):
		respondWithError(w, http.StatusConflict, "Deal is not in the required state")
	case errors.Is(err, domain.ErrPaused):
		respondWithError(w, http.StatusLocked, "Deal is paused")
	case errors.Is(err, domain.ErrDeadlineNotReached):
		respondWithError(w, http.StatusConflict, "Deposit deadline has not elapsed")
	case errors.Is(err, domain.ErrInvalidWinner):
		respondWithError(w, http.StatusUnprocessableEntity, "Winner must be the payer or the payee")
	case errors.Is(err, domain.ErrInsufficientAllowance):
		respondWithError(w, http.StatusUnprocessableEntity, "Insufficient allowance")
	case errors.Is(err, domain.ErrInsufficientFunds):
		respondWithError(w, http.StatusUnprocessableEntity, "Insufficient funds")
	case errors.Is(err, domain.ErrFailedToSendValue):
		respondWithError(w, http.StatusUnprocessableEntity, "Disbursement failed, funds remain in custody")
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}
