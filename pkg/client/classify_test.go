package client

import (
	"testing"

	"bank-mediator/pkg/bank"

	"github.com/stretchr/testify/assert"
)

func TestClassifyResponse(t *testing.T) {
	account := request{op: opWithdraw, entity: "Account", id: "ACC000001"}
	customer := request{op: opCreateCustomer, entity: "Customer"}

	tests := []struct {
		name        string
		req         request
		status      int
		body        string
		wantKind    bank.Kind
		wantMessage string
		wantField   string
		wantCode    string
	}{
		{
			name:        "not found names the entity",
			req:         account,
			status:      404,
			body:        `{"message":"Account not found: ACC000001"}`,
			wantKind:    bank.KindNotFound,
			wantMessage: "Account ACC000001 not found",
		},
		{
			name:        "not found without id",
			req:         request{op: opListCustomers},
			status:      404,
			wantKind:    bank.KindNotFound,
			wantMessage: "Resource not found",
		},
		{
			name:        "conflict keeps server message",
			req:         customer,
			status:      409,
			body:        `{"message":"Customer with email a@b.co already exists"}`,
			wantKind:    bank.KindConflict,
			wantMessage: "Customer with email a@b.co already exists",
		},
		{
			name:        "conflict without message",
			req:         customer,
			status:      409,
			wantKind:    bank.KindConflict,
			wantMessage: "Customer already exists",
		},
		{
			name:        "insufficient funds by code",
			req:         account,
			status:      400,
			body:        `{"code":"INSUFFICIENT_FUNDS"}`,
			wantKind:    bank.KindInsufficientFunds,
			wantMessage: "Insufficient funds in your account",
			wantCode:    "INSUFFICIENT_FUNDS",
		},
		{
			name:        "code carried in error field",
			req:         account,
			status:      400,
			body:        `{"error":"ACCOUNT_CLOSED","message":"Account is closed"}`,
			wantKind:    bank.KindInvalidState,
			wantMessage: "Account is closed",
			wantCode:    "ACCOUNT_CLOSED",
		},
		{
			name:        "reason phrase in error field is not a code",
			req:         account,
			status:      400,
			body:        `{"error":"Bad Request","message":"Account ACC000001 is already closed"}`,
			wantKind:    bank.KindInvalidState,
			wantMessage: "Account ACC000001 is already closed",
		},
		{
			name:        "insufficient funds by message",
			req:         account,
			status:      400,
			body:        `{"message":"Insufficient balance. Available balance: 150.00"}`,
			wantKind:    bank.KindInsufficientFunds,
			wantMessage: "Insufficient balance. Available balance: 150.00",
		},
		{
			name:        "balance too low",
			req:         account,
			status:      400,
			body:        `{"message":"Balance too low for this withdrawal"}`,
			wantKind:    bank.KindInsufficientFunds,
			wantMessage: "Balance too low for this withdrawal",
		},
		{
			name:        "not found inside a bad request",
			req:         request{op: opCreateAccount, entity: "Customer", id: "99"},
			status:      400,
			body:        `{"message":"Customer not found with id: 99"}`,
			wantKind:    bank.KindNotFound,
			wantMessage: "Customer not found with id: 99",
		},
		{
			name:        "code wins over message",
			req:         account,
			status:      400,
			body:        `{"code":"ACCOUNT_SUSPENDED","message":"insufficient privileges"}`,
			wantKind:    bank.KindInvalidState,
			wantMessage: "insufficient privileges",
			wantCode:    "ACCOUNT_SUSPENDED",
		},
		{
			name:        "remote validation names the field",
			req:         account,
			status:      400,
			body:        `{"message":"Validation failed","validationErrors":{"amount":"must be positive"}}`,
			wantKind:    bank.KindValidation,
			wantMessage: "Validation failed",
			wantField:   "amount",
		},
		{
			name:        "empty validation errors are ignored",
			req:         account,
			status:      400,
			body:        `{"validationErrors":{}}`,
			wantKind:    bank.KindInvalidState,
			wantMessage: "Invalid request data",
		},
		{
			name:        "plain text bad request",
			req:         account,
			status:      400,
			body:        `bad things happened`,
			wantKind:    bank.KindInvalidState,
			wantMessage: "Invalid request data",
		},
		{
			name:        "server error",
			req:         account,
			status:      503,
			body:        `{"message":"NullPointerException"}`,
			wantKind:    bank.KindServer,
			wantMessage: "Server error. Please try again later.",
		},
		{
			name:        "unmapped status",
			req:         account,
			status:      418,
			wantKind:    bank.KindUnexpected,
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "unmapped status keeps server message",
			req:         request{op: opCloseAccount, entity: "Account", id: "ACC123"},
			status:      403,
			body:        `{"message":"Teller not allowed to close account ACC123"}`,
			wantKind:    bank.KindUnexpected,
			wantMessage: "Teller not allowed to close account ACC123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := classifyResponse(tt.req, tt.status, []byte(tt.body))

			assert.Equal(t, tt.wantKind, e.Kind)
			assert.Equal(t, tt.wantMessage, e.Message)
			assert.Equal(t, tt.wantField, e.Field)
			assert.Equal(t, tt.wantCode, e.Code)
			assert.Equal(t, tt.status, e.Status)
			assert.Equal(t, tt.req.op, e.Op)
		})
	}
}

func TestConnectivityStatus(t *testing.T) {
	status := connectivityStatus([]byte(`7`), nil)
	assert.True(t, status.Connected)
	if assert.NotNil(t, status.CustomerCount) {
		assert.Equal(t, int64(7), *status.CustomerCount)
	}

	status = connectivityStatus([]byte(`{"status":"UP"}`), nil)
	assert.True(t, status.Connected)
	assert.Nil(t, status.CustomerCount)

	status = connectivityStatus([]byte(`{"status":"UNKNOWN"}`), nil)
	assert.False(t, status.Connected)
	assert.Equal(t, "Server reported status UNKNOWN", status.Message)

	status = connectivityStatus(nil, nil)
	assert.True(t, status.Connected, "an empty 2xx body still proves the backend is reachable")
	assert.Nil(t, status.CustomerCount)

	status = connectivityStatus(nil, &bank.Error{Kind: bank.KindTimeout, Message: "Request timeout. Please try again."})
	assert.False(t, status.Connected)
	assert.Equal(t, "Request timeout. Please try again.", status.Message)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "http://h/api/customers", resolve("http://h/api", "/customers"))
	assert.Equal(t, "http://h/api/customers", resolve("http://h/api", "customers"))
	assert.Equal(t, "http://h/actuator/health", resolve("http://h/api", "http://h/actuator/health"))
}
