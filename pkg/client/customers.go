package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bank-mediator/pkg/bank"
)

const (
	opCreateCustomer  = "create customer"
	opGetCustomer     = "get customer"
	opListCustomers   = "list customers"
	opSearchCustomers = "search customers"
	opCountCustomers  = "count customers"
)

// CreateCustomer registers a new customer. The name is required; email and
// phone are optional but checked for format when given. A duplicate is
// reported as a conflict.
func (c *Client) CreateCustomer(ctx context.Context, customer bank.NewCustomer) (*bank.Customer, error) {
	customer, err := bank.ValidateNewCustomer(opCreateCustomer, customer)
	if err != nil {
		return nil, c.reject(opCreateCustomer, err)
	}

	var created bank.Customer
	err = c.do(ctx, request{
		op:     opCreateCustomer,
		method: http.MethodPost,
		path:   "/customers",
		body:   customer,
		entity: "Customer",
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetCustomerByID fetches one customer.
func (c *Client) GetCustomerByID(ctx context.Context, id int64) (*bank.Customer, error) {
	if err := bank.ValidateCustomerID(opGetCustomer, id); err != nil {
		return nil, c.reject(opGetCustomer, err)
	}

	idStr := strconv.FormatInt(id, 10)
	var customer bank.Customer
	err := c.do(ctx, request{
		op:     opGetCustomer,
		method: http.MethodGet,
		path:   "/customers/" + idStr,
		entity: "Customer",
		id:     idStr,
	}, &customer)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCustomer is GetCustomerByID for an ID typed by a user.
func (c *Client) GetCustomer(ctx context.Context, rawID string) (*bank.Customer, error) {
	id, err := bank.ParseCustomerID(opGetCustomer, rawID)
	if err != nil {
		return nil, c.reject(opGetCustomer, err)
	}
	return c.GetCustomerByID(ctx, id)
}

// ListCustomers fetches every customer. Nothing is cached between calls.
func (c *Client) ListCustomers(ctx context.Context) ([]bank.Customer, error) {
	var customers []bank.Customer
	err := c.do(ctx, request{
		op:     opListCustomers,
		method: http.MethodGet,
		path:   "/customers",
		entity: "Customer",
	}, &customers)
	if err != nil {
		return nil, err
	}
	return nonNil(customers), nil
}

// SearchCustomers finds customers whose name matches name.
func (c *Client) SearchCustomers(ctx context.Context, name string) ([]bank.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, c.reject(opSearchCustomers,
			bank.NewValidationError(opSearchCustomers, "name", "search name is required"))
	}

	var customers []bank.Customer
	err := c.do(ctx, request{
		op:     opSearchCustomers,
		method: http.MethodGet,
		path:   "/customers/search",
		query:  url.Values{"name": {name}},
		entity: "Customer",
	}, &customers)
	if err != nil {
		return nil, err
	}
	return nonNil(customers), nil
}

// CountCustomers returns the number of registered customers.
func (c *Client) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := c.do(ctx, request{
		op:     opCountCustomers,
		method: http.MethodGet,
		path:   "/customers/count",
	}, &count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
