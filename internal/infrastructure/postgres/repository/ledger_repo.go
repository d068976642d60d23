package repository

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultLedgerRepository keeps account balances and token allowances in
// Postgres. Amounts are decimal-string big.Ints; balance arithmetic happens in
// Go and both sides of a movement are written in one transaction.
type DefaultLedgerRepository struct {
	DB *gorm.DB
}

func NewDefaultLedgerRepository(db *gorm.DB) *DefaultLedgerRepository {
	return &DefaultLedgerRepository{DB: db}
}

func (r *DefaultLedgerRepository) Transfer(ctx context.Context, fromID, toID, token string, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	if amount.Sign() < 0 {
		return fmt.Errorf("ledger: negative transfer amount")
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return move(tx, fromID, toID, token, amount)
	})
}

func (r *DefaultLedgerRepository) TransferFrom(ctx context.Context, ownerID, spenderID, toID, token string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return fmt.Errorf("ledger: transfer amount must be positive")
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var allowanceModel models.AllowanceModel
		err := tx.First(&allowanceModel, "owner_id = ? AND spender_id = ? AND token = ?", ownerID, spenderID, token).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInsufficientAllowance
		}
		if err != nil {
			return err
		}
		allowance := mappers.ColumnToAmount(allowanceModel.Amount)
		if allowance.Cmp(amount) < 0 {
			return domain.ErrInsufficientAllowance
		}

		remaining := new(big.Int).Sub(allowance, amount)
		if err := tx.Model(&models.AllowanceModel{}).
			Where("owner_id = ? AND spender_id = ? AND token = ?", ownerID, spenderID, token).
			Updates(map[string]interface{}{"amount": remaining.String(), "updated_at": time.Now()}).Error; err != nil {
			return err
		}

		return move(tx, ownerID, toID, token, amount)
	})
}

func (r *DefaultLedgerRepository) GetBalance(ctx context.Context, userID, token string) (*big.Int, error) {
	var accountModel models.AccountModel
	err := r.DB.WithContext(ctx).First(&accountModel, "user_id = ? AND token = ?", userID, token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return big.NewInt(0), nil
	}
	if err != nil {
		return nil, err
	}
	return mappers.ColumnToAmount(accountModel.Balance), nil
}

func (r *DefaultLedgerRepository) Credit(ctx context.Context, userID, token string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return fmt.Errorf("ledger: credit amount must be positive")
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return credit(tx, userID, token, amount)
	})
}

func (r *DefaultLedgerRepository) Approve(ctx context.Context, ownerID, spenderID, token string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("ledger: allowance must be non-negative")
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var allowanceModel models.AllowanceModel
		err := tx.First(&allowanceModel, "owner_id = ? AND spender_id = ? AND token = ?", ownerID, spenderID, token).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.AllowanceModel{
				OwnerID:   ownerID,
				SpenderID: spenderID,
				Token:     token,
				Amount:    amount.String(),
				UpdatedAt: time.Now(),
			}).Error
		}
		if err != nil {
			return err
		}
		// Approve overwrites, it never accumulates.
		return tx.Model(&models.AllowanceModel{}).
			Where("owner_id = ? AND spender_id = ? AND token = ?", ownerID, spenderID, token).
			Updates(map[string]interface{}{"amount": amount.String(), "updated_at": time.Now()}).Error
	})
}

func (r *DefaultLedgerRepository) Allowance(ctx context.Context, ownerID, spenderID, token string) (*big.Int, error) {
	var allowanceModel models.AllowanceModel
	err := r.DB.WithContext(ctx).First(&allowanceModel, "owner_id = ? AND spender_id = ? AND token = ?", ownerID, spenderID, token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return big.NewInt(0), nil
	}
	if err != nil {
		return nil, err
	}
	return mappers.ColumnToAmount(allowanceModel.Amount), nil
}

func move(tx *gorm.DB, fromID, toID, token string, amount *big.Int) error {
	var fromAccount models.AccountModel
	err := tx.First(&fromAccount, "user_id = ? AND token = ?", fromID, token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrInsufficientFunds
	}
	if err != nil {
		return err
	}

	balance := mappers.ColumnToAmount(fromAccount.Balance)
	if balance.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}

	remaining := new(big.Int).Sub(balance, amount)
	if err := tx.Model(&models.AccountModel{}).
		Where("user_id = ? AND token = ?", fromID, token).
		Updates(map[string]interface{}{"balance": remaining.String(), "updated_at": time.Now()}).Error; err != nil {
		return err
	}

	return credit(tx, toID, token, amount)
}

func credit(tx *gorm.DB, userID, token string, amount *big.Int) error {
	var account models.AccountModel
	err := tx.First(&account, "user_id = ? AND token = ?", userID, token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.AccountModel{
			UserID:    userID,
			Token:     token,
			Balance:   amount.String(),
			UpdatedAt: time.Now(),
		}).Error
	}
	if err != nil {
		return err
	}

	balance := mappers.ColumnToAmount(account.Balance)
	updated := new(big.Int).Add(balance, amount)
	return tx.Model(&models.AccountModel{}).
		Where("user_id = ? AND token = ?", userID, token).
		Updates(map[string]interface{}{"balance": updated.String(), "updated_at": time.Now()}).Error
}
