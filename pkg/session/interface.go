package session

import (
	"context"

	"bank-mediator/pkg/bank"

	"github.com/shopspring/decimal"
)

// Banking is the subset of the request mediator a Session depends on.
// *client.Client satisfies it.
//
//go:generate mockgen -destination=mocks/mock_banking.go -source=interface.go Banking
type Banking interface {
	CreateCustomer(ctx context.Context, customer bank.NewCustomer) (*bank.Customer, error)
	GetCustomerByID(ctx context.Context, id int64) (*bank.Customer, error)
	ListCustomers(ctx context.Context) ([]bank.Customer, error)
	CreateAccount(ctx context.Context, customerID int64, accountType bank.AccountType) (*bank.Account, error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (*bank.Account, error)
	CloseAccount(ctx context.Context, accountNumber string) (*bank.Account, error)
	ListAccountsByCustomer(ctx context.Context, customerID int64) ([]bank.Account, error)
	DepositCash(ctx context.Context, accountNumber string, amount decimal.Decimal) (*bank.Transaction, error)
	WithdrawCash(ctx context.Context, accountNumber string, amount decimal.Decimal) (*bank.Transaction, error)
	GetTransactionHistory(ctx context.Context, accountNumber string) ([]bank.Transaction, error)
	GetRecentTransactions(ctx context.Context, limit int) ([]bank.Transaction, error)
	CheckConnection(ctx context.Context) bank.ConnectivityStatus
}
