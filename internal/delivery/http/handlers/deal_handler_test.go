package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	dealdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/deal"
)

// stubUsecase lets each test wire just the calls it expects.
type stubUsecase struct {
	createDeal   func(ctx context.Context, input *dealdto.CreateDealInput) (*dealdto.DealOutput, error)
	deposit      func(ctx context.Context, input *dealdto.DepositInput) error
	release      func(ctx context.Context, dealID, callerID string) error
	getDeal      func(ctx context.Context, dealID string) (*dealdto.DealOutput, error)
	getBalance   func(ctx context.Context, dealID string) (*big.Int, error)
	listDealIDs  func(ctx context.Context) ([]string, error)
	claimExpired func(ctx context.Context, dealID, callerID string) error
}

func (s *stubUsecase) CreateDeal(ctx context.Context, input *dealdto.CreateDealInput) (*dealdto.DealOutput, error) {
	return s.createDeal(ctx, input)
}
func (s *stubUsecase) Deposit(ctx context.Context, input *dealdto.DepositInput) error {
	return s.deposit(ctx, input)
}
func (s *stubUsecase) ConfirmShipment(ctx context.Context, dealID, callerID string) error { return nil }
func (s *stubUsecase) Release(ctx context.Context, dealID, callerID string) error {
	return s.release(ctx, dealID, callerID)
}
func (s *stubUsecase) Refund(ctx context.Context, dealID, callerID string) error { return nil }
func (s *stubUsecase) RaiseDispute(ctx context.Context, input *dealdto.RaiseDisputeInput) error {
	return nil
}
func (s *stubUsecase) ResolveDispute(ctx context.Context, input *dealdto.ResolveDisputeInput) error {
	return nil
}
func (s *stubUsecase) ClaimExpired(ctx context.Context, dealID, callerID string) error {
	return s.claimExpired(ctx, dealID, callerID)
}
func (s *stubUsecase) Pause(ctx context.Context, dealID, callerID string) error   { return nil }
func (s *stubUsecase) Unpause(ctx context.Context, dealID, callerID string) error { return nil }
func (s *stubUsecase) ApproveAllowance(ctx context.Context, input *dealdto.ApproveAllowanceInput) error {
	return nil
}
func (s *stubUsecase) GetDealByID(ctx context.Context, dealID string) (*dealdto.DealOutput, error) {
	return s.getDeal(ctx, dealID)
}
func (s *stubUsecase) GetDealBalance(ctx context.Context, dealID string) (*big.Int, error) {
	return s.getBalance(ctx, dealID)
}
func (s *stubUsecase) GetAccountBalance(ctx context.Context, userID, token string) (*big.Int, error) {
	return big.NewInt(0), nil
}
func (s *stubUsecase) ListDealIDs(ctx context.Context) ([]string, error) {
	return s.listDealIDs(ctx)
}
func (s *stubUsecase) GetDealsByParty(ctx context.Context, partyID string, page, limit int64) ([]*dealdto.DealOutput, int64, error) {
	return nil, 0, nil
}
func (s *stubUsecase) FindOverdueDeals(ctx context.Context) ([]*dealdto.DealOutput, error) {
	return nil, nil
}
func (s *stubUsecase) CountDealsByStatus(ctx context.Context) (map[domain.DealStatus]int64, error) {
	return nil, nil
}

func newTestRouter(stub *stubUsecase) *mux.Router {
	router := mux.NewRouter()
	NewDealHandler(stub).RegisterRoutes(router)
	return router
}

func doRequest(router *mux.Router, method, path, caller string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if caller != "" {
		req.Header.Set(CallerHeader, caller)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateDealHandler(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubUsecase{
		createDeal: func(ctx context.Context, input *dealdto.CreateDealInput) (*dealdto.DealOutput, error) {
			require.Equal(t, "payer-1", input.CallerID)
			require.Equal(t, "payee-1", input.PayeeID)
			return &dealdto.DealOutput{
				DealID:      "deal-1",
				Seq:         1,
				PayerID:     input.CallerID,
				PayeeID:     input.PayeeID,
				AssetKind:   string(domain.AssetNative),
				Amount:      "0",
				HeldBalance: "0",
				Status:      string(domain.StatusAwaitingPayment),
				CreatedAt:   now,
				UpdatedAt:   now,
			}, nil
		},
	}
	router := newTestRouter(stub)

	recorder := doRequest(router, http.MethodPost, "/deals", "payer-1", map[string]string{
		"payee_id": "payee-1",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Equal(t, "deal-1", resp["deal_id"])
	require.Equal(t, string(domain.StatusAwaitingPayment), resp["status"])
}

func TestCreateDealHandlerRejectsBadInput(t *testing.T) {
	stub := &stubUsecase{}
	router := newTestRouter(stub)

	// missing caller header
	recorder := doRequest(router, http.MethodPost, "/deals", "", map[string]string{"payee_id": "p"})
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	// missing payee
	recorder = doRequest(router, http.MethodPost, "/deals", "payer-1", map[string]string{})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	// non-numeric amount
	recorder = doRequest(router, http.MethodPost, "/deals", "payer-1", map[string]string{
		"payee_id": "payee-1",
		"amount":   "not-a-number",
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDepositHandlerParsesValue(t *testing.T) {
	var got *dealdto.DepositInput
	stub := &stubUsecase{
		deposit: func(ctx context.Context, input *dealdto.DepositInput) error {
			got = input
			return nil
		},
	}
	router := newTestRouter(stub)

	recorder := doRequest(router, http.MethodPost, "/deals/deal-1/deposit", "payer-1", map[string]string{
		"value": "123456789012345678901234567890",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, got)
	require.Equal(t, "deal-1", got.DealID)
	require.Equal(t, "payer-1", got.CallerID)

	want, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.Equal(t, want, got.Value)
}

func TestDomainErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not found", domain.ErrDealNotFound, http.StatusNotFound},
		{"unauthorized", domain.ErrUnauthorized, http.StatusForbidden},
		{"invalid state", domain.ErrInvalidState, http.StatusConflict},
		{"paused", domain.ErrPaused, http.StatusLocked},
		{"failed disbursement", domain.ErrFailedToSendValue, http.StatusUnprocessableEntity},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubUsecase{
				release: func(ctx context.Context, dealID, callerID string) error {
					return tc.err
				},
			}
			router := newTestRouter(stub)

			recorder := doRequest(router, http.MethodPost, "/deals/deal-1/release", "payer-1", nil)
			require.Equal(t, tc.wantCode, recorder.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
			require.NotEmpty(t, resp["error"])
		})
	}
}

func TestClaimHandlerDeadlineNotReached(t *testing.T) {
	stub := &stubUsecase{
		claimExpired: func(ctx context.Context, dealID, callerID string) error {
			return domain.ErrDeadlineNotReached
		},
	}
	router := newTestRouter(stub)

	recorder := doRequest(router, http.MethodPost, "/deals/deal-1/claim", "payer-1", nil)
	require.Equal(t, http.StatusConflict, recorder.Code)
}

func TestGetDealAndBalanceHandlers(t *testing.T) {
	stub := &stubUsecase{
		getDeal: func(ctx context.Context, dealID string) (*dealdto.DealOutput, error) {
			if dealID != "deal-1" {
				return nil, domain.ErrDealNotFound
			}
			return &dealdto.DealOutput{DealID: dealID, Status: string(domain.StatusShipped), Amount: "10", HeldBalance: "10"}, nil
		},
		getBalance: func(ctx context.Context, dealID string) (*big.Int, error) {
			return big.NewInt(10), nil
		},
		listDealIDs: func(ctx context.Context) ([]string, error) {
			return []string{"deal-1", "deal-2"}, nil
		},
	}
	router := newTestRouter(stub)

	recorder := doRequest(router, http.MethodGet, "/deals/deal-1", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/deals/missing", "", nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/deals/deal-1/balance", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var balance map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &balance))
	require.Equal(t, "10", balance["held_balance"])

	recorder = doRequest(router, http.MethodGet, "/deals", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var list map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &list))
	require.Equal(t, float64(2), list["total"])
}
