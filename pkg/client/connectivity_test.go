package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bank-mediator/pkg/banktest"
	"bank-mediator/pkg/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConnection_CustomerCount(t *testing.T) {
	c, srv := newTestClient(t)
	srv.AddCustomer("Ada Lovelace", "", "")
	srv.AddCustomer("Grace Hopper", "", "")

	status := c.CheckConnection(context.Background())
	assert.True(t, status.Connected)
	assert.Equal(t, "Server connected successfully", status.Message)
	require.NotNil(t, status.CustomerCount)
	assert.Equal(t, int64(2), *status.CustomerCount)
}

func TestCheckConnection_Actuator(t *testing.T) {
	srv := banktest.NewServer()
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.APIURL(), HealthPath: srv.HealthURL()})
	require.NoError(t, err)

	status := c.CheckConnection(context.Background())
	assert.True(t, status.Connected)
	assert.Nil(t, status.CustomerCount)

	srv.SetHealthStatus("DOWN")
	status = c.CheckConnection(context.Background())
	assert.False(t, status.Connected)
	assert.Equal(t, "Server error. Please try again later.", status.Message)
}

func TestCheckConnection_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL + "/api"
	srv.Close()

	c, err := client.New(client.Config{BaseURL: baseURL, Timeout: time.Second})
	require.NoError(t, err)

	status := c.CheckConnection(context.Background())
	assert.False(t, status.Connected)
	assert.Contains(t, status.Message, "Cannot connect to server")
	assert.Nil(t, status.CustomerCount)
}

func TestCheckConnection_ServerError(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Fail(banktest.RouteCountCustomers, http.StatusInternalServerError, nil)

	status := c.CheckConnection(context.Background())
	assert.False(t, status.Connected)
	assert.Equal(t, "Server error. Please try again later.", status.Message)
}

func TestCheckConnection_EmptyBody(t *testing.T) {
	for _, code := range []int{http.StatusOK, http.StatusNoContent} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		c, err := client.New(client.Config{BaseURL: srv.URL + "/api", Timeout: time.Second})
		require.NoError(t, err)

		status := c.CheckConnection(context.Background())
		assert.True(t, status.Connected, "status %d", code)
		assert.Equal(t, "Server connected successfully", status.Message)
		assert.Nil(t, status.CustomerCount)
		srv.Close()
	}
}
