package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"bank-mediator/pkg/bank"

	"github.com/shopspring/decimal"
)

const (
	opDeposit  = "deposit cash"
	opWithdraw = "withdraw cash"
	opHistory  = "get transaction history"
	opRecent   = "get recent transactions"
	opListTx   = "list transactions"
)

const (
	defaultRecent = 10
	maxRecent     = 100
	maxPageSize   = 200

	depositNote    = "Cash deposit"
	withdrawalNote = "Cash withdrawal"
)

type transactionRequest struct {
	AccountNumber string      `json:"accountNumber"`
	Amount        json.Number `json:"amount"`
	Description   string      `json:"description"`
}

// DepositCash credits amount to an account. The amount must be positive,
// have at most two decimal places and not exceed the deposit ceiling.
func (c *Client) DepositCash(ctx context.Context, accountNumber string, amount decimal.Decimal) (*bank.Transaction, error) {
	return c.transact(ctx, opDeposit, "/transactions/deposit", bank.TransactionTypeDeposit, depositNote, accountNumber, amount)
}

// WithdrawCash debits amount from an account. A balance too low for the
// withdrawal is reported as an insufficient funds error, distinct from other
// rejections.
func (c *Client) WithdrawCash(ctx context.Context, accountNumber string, amount decimal.Decimal) (*bank.Transaction, error) {
	return c.transact(ctx, opWithdraw, "/transactions/withdraw", bank.TransactionTypeWithdrawal, withdrawalNote, accountNumber, amount)
}

func (c *Client) transact(ctx context.Context, op, path string, txType bank.TransactionType, note, accountNumber string, amount decimal.Decimal) (*bank.Transaction, error) {
	accountNumber, err := bank.ValidateAccountNumber(op, accountNumber)
	if err != nil {
		return nil, c.reject(op, err)
	}
	if err := bank.ValidateAmount(op, amount, txType, c.policy); err != nil {
		return nil, c.reject(op, err)
	}

	var tx bank.Transaction
	err = c.do(ctx, request{
		op:     op,
		method: http.MethodPost,
		path:   path,
		body: transactionRequest{
			AccountNumber: accountNumber,
			Amount:        json.Number(amount.StringFixed(2)),
			Description:   note,
		},
		entity: "Account",
		id:     accountNumber,
	}, &tx)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetTransactionHistory fetches the transactions of an account, newest
// first regardless of the order the server returns them in.
func (c *Client) GetTransactionHistory(ctx context.Context, accountNumber string) ([]bank.Transaction, error) {
	accountNumber, err := bank.ValidateAccountNumber(opHistory, accountNumber)
	if err != nil {
		return nil, c.reject(opHistory, err)
	}

	var txs []bank.Transaction
	err = c.do(ctx, request{
		op:     opHistory,
		method: http.MethodGet,
		path:   "/transactions/account/" + url.PathEscape(accountNumber),
		entity: "Account",
		id:     accountNumber,
	}, &txs)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(txs)
	return nonNil(txs), nil
}

// GetRecentTransactions fetches the latest transactions across all
// accounts, newest first. limit must be between 1 and 100; zero means 10.
func (c *Client) GetRecentTransactions(ctx context.Context, limit int) ([]bank.Transaction, error) {
	if limit == 0 {
		limit = defaultRecent
	}
	if limit < 1 || limit > maxRecent {
		return nil, c.reject(opRecent, bank.NewValidationError(opRecent, "limit",
			fmt.Sprintf("limit must be between 1 and %d (got %d)", maxRecent, limit)))
	}

	var txs []bank.Transaction
	err := c.do(ctx, request{
		op:     opRecent,
		method: http.MethodGet,
		path:   "/transactions/recent",
		query:  url.Values{"limit": {strconv.Itoa(limit)}},
	}, &txs)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(txs)
	if len(txs) > limit {
		txs = txs[:limit]
	}
	return nonNil(txs), nil
}

// ListTransactions fetches one page of all transactions. page counts from
// zero; size must be between 1 and 200.
func (c *Client) ListTransactions(ctx context.Context, page, size int) ([]bank.Transaction, error) {
	if page < 0 {
		return nil, c.reject(opListTx, bank.NewValidationError(opListTx, "page",
			fmt.Sprintf("page must not be negative (got %d)", page)))
	}
	if size < 1 || size > maxPageSize {
		return nil, c.reject(opListTx, bank.NewValidationError(opListTx, "size",
			fmt.Sprintf("size must be between 1 and %d (got %d)", maxPageSize, size)))
	}

	var txs []bank.Transaction
	err := c.do(ctx, request{
		op:     opListTx,
		method: http.MethodGet,
		path:   "/transactions",
		query: url.Values{
			"page": {strconv.Itoa(page)},
			"size": {strconv.Itoa(size)},
		},
	}, &txs)
	if err != nil {
		return nil, err
	}
	return nonNil(txs), nil
}

// SortNewestFirst orders txs by transaction date, most recent first.
// Transactions with equal dates keep their relative order.
func SortNewestFirst(txs []bank.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].TransactionDate.After(txs[j].TransactionDate.Time)
	})
}
