package domain

import (
	"context"
	"math/big"
)

// Account is one ledger balance row. Token is NativeToken for native value.
type Account struct {
	UserID  string
	Token   string
	Balance *big.Int
}

// ValueTransfer moves value between ledger accounts and reports failure
// instead of panicking, so a rejected transfer never destabilises the caller.
type ValueTransfer interface {
	// Transfer debits fromID and credits toID. Fails with
	// ErrInsufficientFunds when the source balance is too small.
	Transfer(ctx context.Context, fromID, toID, token string, amount *big.Int) error

	// TransferFrom is the allowance-gated pull: it spends spenderID's
	// allowance on ownerID's balance. Fails with ErrInsufficientAllowance
	// before any balance is touched.
	TransferFrom(ctx context.Context, ownerID, spenderID, toID, token string, amount *big.Int) error
}

type LedgerRepository interface {
	ValueTransfer

	GetBalance(ctx context.Context, userID, token string) (*big.Int, error)
	Credit(ctx context.Context, userID, token string, amount *big.Int) error

	// Approve sets (not adds to) spenderID's allowance on ownerID's balance.
	Approve(ctx context.Context, ownerID, spenderID, token string, amount *big.Int) error
	Allowance(ctx context.Context, ownerID, spenderID, token string) (*big.Int, error)
}
