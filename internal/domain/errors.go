package domain

import "errors"

var (
	ErrUnauthorized          = errors.New("caller is not allowed to perform this action")
	ErrInvalidState          = errors.New("action is not legal in the current deal state")
	ErrInvalidWinner         = errors.New("dispute winner must be the payer or the payee")
	ErrInsufficientAllowance = errors.New("token allowance is below the deal amount")
	ErrInsufficientFunds     = errors.New("account balance is below the transfer amount")
	ErrFailedToSendValue     = errors.New("disbursement transfer rejected")
	ErrPaused                = errors.New("deal is administratively paused")
	ErrDeadlineNotReached    = errors.New("deal deadline has not been reached")
	ErrDealNotFound          = errors.New("deal not found")
)
