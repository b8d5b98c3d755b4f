// Package banktest provides an in-memory fake of the banking REST API for
// tests and local runs. It serves the same routes, payloads and error bodies
// as the real backend over a real HTTP listener.
package banktest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"bank-mediator/pkg/bank"
	"bank-mediator/pkg/logging"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Route names, usable with Fail.
const (
	RouteCreateCustomer   = "createCustomer"
	RouteGetCustomer      = "getCustomer"
	RouteListCustomers    = "listCustomers"
	RouteSearchCustomers  = "searchCustomers"
	RouteCountCustomers   = "countCustomers"
	RouteCreateAccount    = "createAccount"
	RouteGetAccount       = "getAccount"
	RouteCloseAccount     = "closeAccount"
	RouteCustomerAccounts = "customerAccounts"
	RouteDeposit          = "deposit"
	RouteWithdraw         = "withdraw"
	RouteAccountHistory   = "accountHistory"
	RouteRecent           = "recentTransactions"
	RouteListTransactions = "listTransactions"
	RouteHealth           = "health"

	// AllRoutes matches every route in Fail.
	AllRoutes = "*"
)

// Failure is a canned response returned instead of the real handler.
type Failure struct {
	Status int
	Body   any
}

// Server is a fake banking backend.
type Server struct {
	*httptest.Server

	router *mux.Router
	logger *logging.Logger

	mu           sync.Mutex
	customers    map[int64]*bank.Customer
	accounts     map[string]*bank.Account
	transactions []bank.Transaction
	nextCustomer int64
	nextAccount  int64
	nextTx       int64
	failures     map[string]Failure
	latency      time.Duration
	healthStatus string
	omitCodes    bool
	now          func() time.Time

	requests atomic.Int64
}

// Option configures a Server.
type Option func(*Server)

// WithLatency delays every response by d, or until the client gives up.
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		s.latency = d
	}
}

// WithLogger sets the logger used for request logs.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithoutErrorCodes makes error bodies carry only a message, like backends
// that do not emit machine-readable codes.
func WithoutErrorCodes() Option {
	return func(s *Server) {
		s.omitCodes = true
	}
}

// WithClock sets the time source for created records.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer starts a fake backend on a loopback port. Callers should Close
// it when done.
func NewServer(opts ...Option) *Server {
	s := newServer(opts...)
	s.Server = httptest.NewServer(s.Handler())
	return s
}

func newServer(opts ...Option) *Server {
	s := &Server{
		logger:       logging.Global(),
		customers:    make(map[int64]*bank.Customer),
		accounts:     make(map[string]*bank.Account),
		failures:     make(map[string]Failure),
		healthStatus: "UP",
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("banktest")
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware, s.latencyMiddleware, s.failureMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/customers", s.createCustomer).Methods(http.MethodPost).Name(RouteCreateCustomer)
	api.HandleFunc("/customers", s.listCustomers).Methods(http.MethodGet).Name(RouteListCustomers)
	api.HandleFunc("/customers/search", s.searchCustomers).Methods(http.MethodGet).Name(RouteSearchCustomers)
	api.HandleFunc("/customers/count", s.countCustomers).Methods(http.MethodGet).Name(RouteCountCustomers)
	api.HandleFunc("/customers/{id}", s.getCustomer).Methods(http.MethodGet).Name(RouteGetCustomer)

	api.HandleFunc("/accounts", s.createAccount).Methods(http.MethodPost).Name(RouteCreateAccount)
	api.HandleFunc("/accounts/customer/{customerId}", s.customerAccounts).Methods(http.MethodGet).Name(RouteCustomerAccounts)
	api.HandleFunc("/accounts/{accountNumber}", s.getAccount).Methods(http.MethodGet).Name(RouteGetAccount)
	api.HandleFunc("/accounts/{accountNumber}/close", s.closeAccount).Methods(http.MethodPut).Name(RouteCloseAccount)

	api.HandleFunc("/transactions/deposit", s.deposit).Methods(http.MethodPost).Name(RouteDeposit)
	api.HandleFunc("/transactions/withdraw", s.withdraw).Methods(http.MethodPost).Name(RouteWithdraw)
	api.HandleFunc("/transactions/account/{accountNumber}", s.accountHistory).Methods(http.MethodGet).Name(RouteAccountHistory)
	api.HandleFunc("/transactions/recent", s.recentTransactions).Methods(http.MethodGet).Name(RouteRecent)
	api.HandleFunc("/transactions", s.listTransactions).Methods(http.MethodGet).Name(RouteListTransactions)

	r.HandleFunc("/actuator/health", s.health).Methods(http.MethodGet).Name(RouteHealth)

	return r
}

// Handler returns the HTTP handler serving the fake API, counting every
// request it receives.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		s.router.ServeHTTP(w, r)
	})
}

// APIURL returns the base URL of the API routes.
func (s *Server) APIURL() string {
	return s.URL + "/api"
}

// HealthURL returns the absolute URL of the actuator health endpoint.
func (s *Server) HealthURL() string {
	return s.URL + "/actuator/health"
}

// Requests returns the number of requests received so far.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

// ResetRequests sets the request counter back to zero.
func (s *Server) ResetRequests() {
	s.requests.Store(0)
}

// Fail makes route answer with status and body until ClearFailures is
// called. route is one of the Route constants or AllRoutes.
func (s *Server) Fail(route string, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = Failure{Status: status, Body: body}
}

// ClearFailures removes all injected failures.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]Failure)
}

// SetLatency changes the response delay.
func (s *Server) SetLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
}

// SetHealthStatus changes the status reported by the actuator endpoint.
func (s *Server) SetHealthStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.healthStatus = status
}

// AddCustomer seeds a customer.
func (s *Server) AddCustomer(name, email, phone string) bank.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.insertCustomer(bank.NewCustomer{Name: name, Email: email, Phone: phone})
}

// AddAccount seeds an active account with an opening balance.
func (s *Server) AddAccount(customerID int64, accountType bank.AccountType, balance decimal.Decimal) (bank.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[customerID]
	if !ok {
		return bank.Account{}, fmt.Errorf("banktest: customer %d does not exist", customerID)
	}
	account := s.insertAccount(customer, accountType)
	account.Balance = balance
	return *account, nil
}

// AddTransaction seeds a transaction dated at and applies it to the
// account balance.
func (s *Server) AddTransaction(accountNumber string, txType bank.TransactionType, amount decimal.Decimal, at time.Time) (bank.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		return bank.Transaction{}, fmt.Errorf("banktest: account %s does not exist", accountNumber)
	}
	return s.insertTransaction(account, txType, amount, "", at), nil
}

// Account returns a copy of the stored account.
func (s *Server) Account(accountNumber string) (bank.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		return bank.Account{}, false
	}
	return *account, true
}

func (s *Server) insertCustomer(c bank.NewCustomer) *bank.Customer {
	s.nextCustomer++
	customer := &bank.Customer{
		ID:          s.nextCustomer,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		CreatedDate: bank.NewTimestamp(s.now()),
	}
	s.customers[customer.ID] = customer
	return customer
}

func (s *Server) insertAccount(customer *bank.Customer, accountType bank.AccountType) *bank.Account {
	s.nextAccount++
	account := &bank.Account{
		AccountNumber: fmt.Sprintf("ACC%06d", s.nextAccount),
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		AccountType:   accountType,
		Status:        bank.AccountStatusActive,
		Balance:       decimal.Zero,
		CreatedDate:   bank.NewTimestamp(s.now()),
	}
	s.accounts[account.AccountNumber] = account
	return account
}

func (s *Server) insertTransaction(account *bank.Account, txType bank.TransactionType, amount decimal.Decimal, description string, at time.Time) bank.Transaction {
	if txType == bank.TransactionTypeWithdrawal {
		account.Balance = account.Balance.Sub(amount)
	} else {
		account.Balance = account.Balance.Add(amount)
	}

	s.nextTx++
	tx := bank.Transaction{
		ID:              s.nextTx,
		AccountNumber:   account.AccountNumber,
		TransactionType: txType,
		Amount:          amount,
		BalanceAfter:    account.Balance,
		Description:     description,
		TransactionDate: bank.NewTimestamp(at),
	}
	s.transactions = append(s.transactions, tx)
	return tx
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request received",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", r.Header.Get("X-Request-ID")),
		)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) latencyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		latency := s.latency
		s.mu.Unlock()

		if latency > 0 {
			select {
			case <-time.After(latency):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) failureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}

		s.mu.Lock()
		failure, ok := s.failures[name]
		if !ok {
			failure, ok = s.failures[AllRoutes]
		}
		s.mu.Unlock()

		if ok {
			writeJSON(w, failure.Status, failure.Body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// errorBody mirrors the backend's error response.
type errorBody struct {
	Timestamp        bank.Timestamp    `json:"timestamp"`
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Code             string            `json:"code,omitempty"`
	Message          string            `json:"message"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	if s.omitCodes {
		code = ""
	}
	writeJSON(w, status, errorBody{
		Timestamp: bank.NewTimestamp(s.now()),
		Status:    status,
		Error:     http.StatusText(status),
		Code:      code,
		Message:   message,
	})
}

func (s *Server) writeValidation(w http.ResponseWriter, field, message string) {
	writeJSON(w, http.StatusBadRequest, errorBody{
		Timestamp:        bank.NewTimestamp(s.now()),
		Status:           http.StatusBadRequest,
		Error:            http.StatusText(http.StatusBadRequest),
		Message:          "Validation failed",
		ValidationErrors: map[string]string{field: message},
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
