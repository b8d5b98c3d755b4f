package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the product an account was opened as.
type AccountType string

const (
	AccountTypeSavings      AccountType = "SAVINGS"
	AccountTypeCurrent      AccountType = "CURRENT"
	AccountTypeFixedDeposit AccountType = "FIXED_DEPOSIT"
)

// AccountTypes lists the account types the backend recognizes.
var AccountTypes = []AccountType{AccountTypeSavings, AccountTypeCurrent, AccountTypeFixedDeposit}

// Valid reports whether t is one of the recognized account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeSavings, AccountTypeCurrent, AccountTypeFixedDeposit:
		return true
	default:
		return false
	}
}

// ParseAccountType converts user input such as "savings" or " Fixed_Deposit "
// into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", NewValidationError("parse account type", "accountType",
			fmt.Sprintf("account type must be one of SAVINGS, CURRENT, FIXED_DEPOSIT (got %q)", s))
	}
	return t, nil
}

// AccountStatus is the lifecycle state of an account. Accounts only move
// from ACTIVE to CLOSED.
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "ACTIVE"
	AccountStatusClosed AccountStatus = "CLOSED"
)

// TransactionType encodes the direction of a transaction. Amounts are
// always positive.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// Customer is a bank customer as returned by the backend.
type Customer struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedDate Timestamp `json:"createdDate"`
}

// NewCustomer holds the fields accepted when creating a customer.
type NewCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Account is a bank account as returned by the backend.
type Account struct {
	AccountNumber string          `json:"accountNumber"`
	CustomerID    int64           `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	AccountType   AccountType     `json:"accountType"`
	Status        AccountStatus   `json:"status"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedDate   Timestamp       `json:"createdDate"`
}

// IsClosed reports whether the account no longer accepts transactions.
func (a *Account) IsClosed() bool {
	return a.Status == AccountStatusClosed
}

// Transaction is a single deposit or withdrawal.
type Transaction struct {
	ID              int64           `json:"id"`
	AccountNumber   string          `json:"accountNumber"`
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter"`
	Description     string          `json:"description,omitempty"`
	TransactionDate Timestamp       `json:"transactionDate"`
}

// ConnectivityStatus is the answer to "is the backend reachable".
type ConnectivityStatus struct {
	Connected     bool   `json:"connected"`
	Message       string `json:"message"`
	CustomerCount *int64 `json:"customerCount,omitempty"`
}

// Timestamp decodes both RFC 3339 and zone-less ISO local date-times, which
// is what Java backends emit for LocalDateTime fields.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if raw == "" {
		ts.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognized format %q", raw)
}

// MarshalJSON implements json.Marshaler. The zero time encodes as null.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Time.Format(time.RFC3339Nano))
}
