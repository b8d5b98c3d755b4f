package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"bank-mediator/pkg/bank"
)

const (
	opCreateAccount = "create account"
	opGetAccount    = "get account"
	opCloseAccount  = "close account"
	opListAccounts  = "list accounts"
)

type createAccountRequest struct {
	CustomerID  int64            `json:"customerId"`
	AccountType bank.AccountType `json:"accountType"`
}

// CreateAccount opens an account for an existing customer. An unknown
// customer is reported as not found.
func (c *Client) CreateAccount(ctx context.Context, customerID int64, accountType bank.AccountType) (*bank.Account, error) {
	if err := bank.ValidateCustomerID(opCreateAccount, customerID); err != nil {
		return nil, c.reject(opCreateAccount, err)
	}
	if err := bank.ValidateAccountType(opCreateAccount, accountType); err != nil {
		return nil, c.reject(opCreateAccount, err)
	}

	var account bank.Account
	err := c.do(ctx, request{
		op:     opCreateAccount,
		method: http.MethodPost,
		path:   "/accounts",
		body: createAccountRequest{
			CustomerID:  customerID,
			AccountType: accountType,
		},
		entity: "Customer",
		id:     strconv.FormatInt(customerID, 10),
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByNumber fetches one account.
func (c *Client) GetAccountByNumber(ctx context.Context, accountNumber string) (*bank.Account, error) {
	accountNumber, err := bank.ValidateAccountNumber(opGetAccount, accountNumber)
	if err != nil {
		return nil, c.reject(opGetAccount, err)
	}

	var account bank.Account
	err = c.do(ctx, request{
		op:     opGetAccount,
		method: http.MethodGet,
		path:   "/accounts/" + url.PathEscape(accountNumber),
		entity: "Account",
		id:     accountNumber,
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// CloseAccount closes an active account and returns it with status CLOSED.
// Closing an account that is already closed fails with an invalid state
// error.
func (c *Client) CloseAccount(ctx context.Context, accountNumber string) (*bank.Account, error) {
	accountNumber, err := bank.ValidateAccountNumber(opCloseAccount, accountNumber)
	if err != nil {
		return nil, c.reject(opCloseAccount, err)
	}

	var account bank.Account
	err = c.do(ctx, request{
		op:     opCloseAccount,
		method: http.MethodPut,
		path:   "/accounts/" + url.PathEscape(accountNumber) + "/close",
		entity: "Account",
		id:     accountNumber,
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ListAccountsByCustomer fetches the accounts held by a customer.
func (c *Client) ListAccountsByCustomer(ctx context.Context, customerID int64) ([]bank.Account, error) {
	if err := bank.ValidateCustomerID(opListAccounts, customerID); err != nil {
		return nil, c.reject(opListAccounts, err)
	}

	idStr := strconv.FormatInt(customerID, 10)
	var accounts []bank.Account
	err := c.do(ctx, request{
		op:     opListAccounts,
		method: http.MethodGet,
		path:   "/accounts/customer/" + idStr,
		entity: "Customer",
		id:     idStr,
	}, &accounts)
	if err != nil {
		return nil, err
	}
	return nonNil(accounts), nil
}
