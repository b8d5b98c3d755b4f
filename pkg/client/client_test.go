package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bank-mediator/pkg/bank"
	"bank-mediator/pkg/banktest"
	"bank-mediator/pkg/client"
	"bank-mediator/pkg/metrics/memory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, opts ...banktest.Option) (*client.Client, *banktest.Server) {
	t.Helper()

	srv := banktest.NewServer(opts...)
	t.Cleanup(srv.Close)

	c, err := client.New(client.Config{BaseURL: srv.APIURL(), Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c, srv
}

func TestNew(t *testing.T) {
	c, err := client.New(client.Config{})
	require.NoError(t, err)
	assert.Equal(t, client.DefaultBaseURL, c.BaseURL())
	assert.True(t, c.Policy().DepositLimit.Equal(decimal.NewFromInt(20000)))
	assert.True(t, c.Policy().WithdrawalLimit.Equal(decimal.NewFromInt(10000)))

	c, err = client.New(client.Config{BaseURL: "http://bank.local/api/"})
	require.NoError(t, err)
	assert.Equal(t, "http://bank.local/api", c.BaseURL())

	tests := []struct {
		name   string
		config client.Config
	}{
		{"negative timeout", client.Config{Timeout: -time.Second}},
		{"timeout above maximum", client.Config{Timeout: 2 * time.Minute}},
		{"unsupported scheme", client.Config{BaseURL: "ftp://bank.local"}},
		{"missing host", client.Config{BaseURL: "http://"}},
		{"negative ceiling", client.Config{Policy: bank.Policy{DepositLimit: decimal.NewFromInt(-1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.New(tt.config)
			assert.Error(t, err)
		})
	}
}

func TestRequestHeaders(t *testing.T) {
	var got *http.Request
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":1,"accountNumber":"ACC000001","transactionType":"DEPOSIT","amount":100,"balanceAfter":150}`)
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL + "/api"}, client.WithUserAgent("teller/1.0"))
	require.NoError(t, err)

	_, err = c.DepositCash(context.Background(), "ACC000001", decimal.RequireFromString("100"))
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/transactions/deposit", got.URL.Path)
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "teller/1.0", got.Header.Get("User-Agent"))
	_, err = uuid.Parse(got.Header.Get(client.RequestIDHeader))
	assert.NoError(t, err)

	assert.JSONEq(t, `{"accountNumber":"ACC000001","amount":100.00,"description":"Cash deposit"}`, string(body))
	assert.Contains(t, string(body), `"amount":100.00`)
}

func TestTimeout(t *testing.T) {
	srv := banktest.NewServer(banktest.WithLatency(500 * time.Millisecond))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.APIURL(), Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.ListCustomers(context.Background())
	require.Error(t, err)
	assert.True(t, bank.IsTimeout(err))
	assert.True(t, bank.IsTransport(err))
	assert.Equal(t, "Request timeout. Please try again.", bank.UserMessage(err))
}

func TestCallerCancellation(t *testing.T) {
	c, _ := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListCustomers(ctx)
	require.Error(t, err)
	assert.True(t, bank.IsTransport(err))
	assert.False(t, bank.IsTimeout(err))
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL + "/api"
	srv.Close()

	c, err := client.New(client.Config{BaseURL: baseURL, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.GetAccountByNumber(context.Background(), "ACC000001")
	require.Error(t, err)
	assert.True(t, bank.IsTransport(err))
	assert.Equal(t, "Cannot connect to server at "+baseURL+". Please ensure the backend is running.", bank.UserMessage(err))
}

func TestServerError(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Fail(banktest.RouteGetAccount, http.StatusInternalServerError, map[string]string{"message": "database down"})

	_, err := c.GetAccountByNumber(context.Background(), "ACC000001")
	require.Error(t, err)
	assert.True(t, bank.IsServer(err))
	assert.Equal(t, "Server error. Please try again later.", bank.UserMessage(err))

	var be *bank.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusInternalServerError, be.Status)
	assert.Equal(t, "get account", be.Op)
}

func TestUnexpectedStatus(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Fail(banktest.AllRoutes, http.StatusTeapot, nil)

	_, err := c.ListCustomers(context.Background())
	assert.Equal(t, bank.KindUnexpected, bank.KindOf(err))
	assert.Equal(t, "An unexpected error occurred", bank.UserMessage(err))

	srv.ClearFailures()
	srv.Fail(banktest.RouteCloseAccount, http.StatusForbidden,
		map[string]string{"message": "Teller not allowed to close account ACC123"})

	_, err = c.CloseAccount(context.Background(), "ACC123")
	require.Error(t, err)
	assert.Equal(t, bank.KindUnexpected, bank.KindOf(err))
	assert.Equal(t, "Teller not allowed to close account ACC123", bank.UserMessage(err))
}

func TestUndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id": "not a number"`)
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.GetCustomerByID(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, bank.KindUnexpected, bank.KindOf(err))
	assert.Equal(t, "An unexpected error occurred", bank.UserMessage(err))
}

func TestMetrics(t *testing.T) {
	srv := banktest.NewServer()
	defer srv.Close()

	collector := memory.NewMemoryCollector()
	c, err := client.New(client.Config{BaseURL: srv.APIURL()}, client.WithMetrics(collector))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = c.ListCustomers(ctx)
	require.NoError(t, err)
	_, err = c.GetCustomerByID(ctx, 12)
	require.Error(t, err)
	_, err = c.GetCustomerByID(ctx, 0)
	require.Error(t, err)
	c.CheckConnection(ctx)

	list := collector.Operation("list customers")
	require.NotNil(t, list)
	assert.Equal(t, int64(1), list.ByStatus[http.StatusOK])

	get := collector.Operation("get customer")
	require.NotNil(t, get)
	assert.Equal(t, int64(1), get.Requests)
	assert.Equal(t, int64(1), get.ByStatus[http.StatusNotFound])
	assert.Equal(t, int64(1), get.Failures["not_found"])
	assert.Equal(t, int64(1), get.Rejected["customerId"])

	snap := collector.Snapshot()
	assert.Equal(t, int64(1), snap.ConnectivityChecks)
	assert.True(t, snap.LastConnected)
}

func TestConcurrentUse(t *testing.T) {
	c, srv := newTestClient(t)
	customer := srv.AddCustomer("Ada Lovelace", "", "")

	ctx := context.Background()
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := c.GetCustomerByID(ctx, customer.ID)
			errs <- err
		}()
	}
	for i := 0; i < 10; i++ {
		assert.NoError(t, <-errs)
	}
	assert.Equal(t, int64(10), srv.Requests())
}
