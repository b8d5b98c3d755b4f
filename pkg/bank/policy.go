package bank

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Policy holds the advisory per-operation ceilings applied before a
// deposit or withdrawal is sent. The server re-validates independently.
type Policy struct {
	// DepositLimit is the largest accepted deposit. Zero disables the check.
	DepositLimit decimal.Decimal

	// WithdrawalLimit is the largest accepted withdrawal. Zero disables the check.
	WithdrawalLimit decimal.Decimal
}

// DefaultPolicy returns the ceilings shown on the teller forms.
func DefaultPolicy() Policy {
	return Policy{
		DepositLimit:    decimal.NewFromInt(20000),
		WithdrawalLimit: decimal.NewFromInt(10000),
	}
}

// Validate checks that the ceilings are not negative.
func (p Policy) Validate() error {
	if p.DepositLimit.IsNegative() {
		return errors.New("policy: deposit limit must not be negative")
	}
	if p.WithdrawalLimit.IsNegative() {
		return errors.New("policy: withdrawal limit must not be negative")
	}
	return nil
}

// LimitFor returns the ceiling for txType, or zero if none applies.
func (p Policy) LimitFor(txType TransactionType) decimal.Decimal {
	switch txType {
	case TransactionTypeDeposit:
		return p.DepositLimit
	case TransactionTypeWithdrawal:
		return p.WithdrawalLimit
	default:
		return decimal.Zero
	}
}
