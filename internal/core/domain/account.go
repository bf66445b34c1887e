package domain

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidTransferSum = errors.New("transfer amount must be positive")
)

// Account is a row of the transaction template table used to check that the
// database commits and rolls back transfers atomically.
type Account struct {
	ID      int    `json:"id"`
	User    string `json:"user"`
	Balance int    `json:"balance"`
}
