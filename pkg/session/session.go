// Package session holds the client-side state of a teller front end: the
// recent-transactions list, the customers and accounts currently in view,
// and the best-effort checks made before a request is sent. All I/O goes
// through a Banking implementation.
package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"bank-mediator/pkg/bank"
	"bank-mediator/pkg/cache/memory"
	"bank-mediator/pkg/logging"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultRecentLimit is the number of transactions kept on the dashboard.
	DefaultRecentLimit = 5

	// DefaultCacheTTL bounds how long a fetched customer or account is reused.
	DefaultCacheTTL = 5 * time.Minute
)

// Session is the view-model for one teller. It is safe for concurrent use.
type Session struct {
	api    Banking
	logger *logging.Logger

	customers *memory.Store[bank.Customer]
	accounts  *memory.Store[bank.Account]

	recentLimit int
	cacheTTL    time.Duration
	precheck    bool

	mu     sync.Mutex
	recent []bank.Transaction
}

// Option configures a Session.
type Option func(*Session)

// WithRecentLimit caps the recent-transactions list.
func WithRecentLimit(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.recentLimit = n
		}
	}
}

// WithCacheTTL sets how long cached customers and accounts are reused.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Session) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithPrecheck enables or disables the customer lookup made before an
// account is created. Enabled by default.
func WithPrecheck(enabled bool) Option {
	return func(s *Session) {
		s.precheck = enabled
	}
}

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Session backed by api. Close releases its caches.
func New(api Banking, opts ...Option) *Session {
	s := &Session{
		api:         api,
		logger:      logging.Global(),
		recentLimit: DefaultRecentLimit,
		cacheTTL:    DefaultCacheTTL,
		precheck:    true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("session")

	s.customers = memory.New[bank.Customer](memory.Config{
		Name:       "customers",
		MaxSize:    256,
		DefaultTTL: s.cacheTTL,
	})
	s.accounts = memory.New[bank.Account](memory.Config{
		Name:       "accounts",
		MaxSize:    256,
		DefaultTTL: s.cacheTTL,
	})
	return s
}

// Close stops the cache cleanup goroutines.
func (s *Session) Close() error {
	s.customers.Close()
	return s.accounts.Close()
}

// CustomerView is a customer together with its accounts.
type CustomerView struct {
	Customer bank.Customer
	Accounts []bank.Account

	// AccountsErr is set when the accounts could not be loaded. The
	// customer is still valid.
	AccountsErr error
}

// AccountView is an account together with its history, newest first.
type AccountView struct {
	Account bank.Account
	History []bank.Transaction

	// HistoryErr is set when the history could not be loaded.
	HistoryErr error
}

// Dashboard is the initial screen: all customers and the latest activity.
type Dashboard struct {
	Customers []bank.Customer
	Recent    []bank.Transaction
}

// CreateCustomer registers a customer and keeps it in view.
func (s *Session) CreateCustomer(ctx context.Context, customer bank.NewCustomer) (*bank.Customer, error) {
	created, err := s.api.CreateCustomer(ctx, customer)
	if err != nil {
		return nil, err
	}
	s.cacheCustomer(*created)
	return created, nil
}

// InquireCustomer fetches a customer and its accounts. Failing to load the
// accounts is reported in the view, not as an error.
func (s *Session) InquireCustomer(ctx context.Context, id int64) (*CustomerView, error) {
	customer, err := s.api.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheCustomer(*customer)

	view := &CustomerView{Customer: *customer}
	view.Accounts, view.AccountsErr = s.api.ListAccountsByCustomer(ctx, id)
	if view.AccountsErr != nil {
		s.logger.Warn("accounts unavailable",
			zap.Int64("customer_id", id),
			zap.Error(view.AccountsErr),
		)
		return view, nil
	}
	for _, account := range view.Accounts {
		s.cacheAccount(account)
	}
	return view, nil
}

// CreateAccount opens an account. With the precheck enabled the customer is
// looked up first and a missing customer stops the flow; any other failure
// of the lookup is ignored since the server decides.
func (s *Session) CreateAccount(ctx context.Context, customerID int64, accountType bank.AccountType) (*bank.Account, error) {
	if s.precheck && customerID > 0 {
		if _, ok := s.CachedCustomer(customerID); !ok {
			customer, err := s.api.GetCustomerByID(ctx, customerID)
			switch {
			case bank.IsNotFound(err):
				return nil, err
			case err != nil:
				s.logger.Debug("customer precheck skipped",
					zap.Int64("customer_id", customerID),
					zap.String("kind", bank.ClassifyError(err)),
				)
			default:
				s.cacheCustomer(*customer)
			}
		}
	}

	account, err := s.api.CreateAccount(ctx, customerID, accountType)
	if err != nil {
		return nil, err
	}
	s.cacheAccount(*account)
	return account, nil
}

// InquireAccount fetches an account and its history. Failing to load the
// history is reported in the view, not as an error.
func (s *Session) InquireAccount(ctx context.Context, accountNumber string) (*AccountView, error) {
	account, err := s.api.GetAccountByNumber(ctx, accountNumber)
	if err != nil {
		if bank.IsNotFound(err) {
			s.InvalidateAccount(accountNumber)
		}
		return nil, err
	}
	s.cacheAccount(*account)

	view := &AccountView{Account: *account}
	view.History, view.HistoryErr = s.api.GetTransactionHistory(ctx, account.AccountNumber)
	if view.HistoryErr != nil {
		s.logger.Warn("history unavailable",
			zap.String("account_number", account.AccountNumber),
			zap.Error(view.HistoryErr),
		)
	}
	return view, nil
}

// CloseAccount closes an account. An account already known to be closed is
// rejected locally; otherwise the server's answer is authoritative.
func (s *Session) CloseAccount(ctx context.Context, accountNumber string) (*bank.Account, error) {
	account, ok := s.CachedAccount(accountNumber)
	if !ok {
		fetched, err := s.api.GetAccountByNumber(ctx, accountNumber)
		if err != nil {
			return nil, err
		}
		account = *fetched
		s.cacheAccount(account)
	}
	if account.IsClosed() {
		return nil, alreadyClosed("close account", account.AccountNumber)
	}

	closed, err := s.api.CloseAccount(ctx, account.AccountNumber)
	if err != nil {
		if bank.IsNotFound(err) || bank.IsInvalidState(err) {
			s.InvalidateAccount(account.AccountNumber)
		}
		return nil, err
	}
	s.cacheAccount(*closed)
	return closed, nil
}

// Deposit credits an account and records the transaction in the recent
// list.
func (s *Session) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*bank.Transaction, error) {
	return s.transact(ctx, "deposit cash", accountNumber, amount, s.api.DepositCash)
}

// Withdraw debits an account and records the transaction in the recent
// list.
func (s *Session) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (*bank.Transaction, error) {
	return s.transact(ctx, "withdraw cash", accountNumber, amount, s.api.WithdrawCash)
}

type transactFunc func(ctx context.Context, accountNumber string, amount decimal.Decimal) (*bank.Transaction, error)

func (s *Session) transact(ctx context.Context, op, accountNumber string, amount decimal.Decimal, send transactFunc) (*bank.Transaction, error) {
	if account, ok := s.CachedAccount(accountNumber); ok && account.IsClosed() {
		return nil, &bank.Error{
			Kind:    bank.KindInvalidState,
			Op:      op,
			Entity:  "Account",
			ID:      account.AccountNumber,
			Code:    "ACCOUNT_CLOSED",
			Message: fmt.Sprintf("Account %s is closed and cannot accept transactions", account.AccountNumber),
		}
	}

	tx, err := send(ctx, accountNumber, amount)
	if err != nil {
		if bank.IsNotFound(err) || bank.IsInvalidState(err) {
			s.InvalidateAccount(accountNumber)
		}
		return nil, err
	}

	if account, ok := s.CachedAccount(tx.AccountNumber); ok {
		account.Balance = tx.BalanceAfter
		s.cacheAccount(account)
	}
	s.pushRecent(*tx)
	return tx, nil
}

// LoadDashboard fetches customers and recent transactions concurrently and
// seeds the recent list. Either failure fails the whole load.
func (s *Session) LoadDashboard(ctx context.Context) (*Dashboard, error) {
	var dashboard Dashboard

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		customers, err := s.api.ListCustomers(ctx)
		if err != nil {
			return err
		}
		dashboard.Customers = customers
		return nil
	})
	g.Go(func() error {
		recent, err := s.api.GetRecentTransactions(ctx, s.recentLimit)
		if err != nil {
			return err
		}
		dashboard.Recent = recent
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, customer := range dashboard.Customers {
		s.cacheCustomer(customer)
	}

	s.mu.Lock()
	s.recent = truncate(append([]bank.Transaction(nil), dashboard.Recent...), s.recentLimit)
	dashboard.Recent = append([]bank.Transaction(nil), s.recent...)
	s.mu.Unlock()

	return &dashboard, nil
}

// Recent returns the recent transactions, newest first.
func (s *Session) Recent() []bank.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bank.Transaction{}, s.recent...)
}

func (s *Session) pushRecent(tx bank.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = truncate(append([]bank.Transaction{tx}, s.recent...), s.recentLimit)
}

func truncate(txs []bank.Transaction, limit int) []bank.Transaction {
	if len(txs) > limit {
		return txs[:limit]
	}
	return txs
}

// CachedCustomer returns the customer in view, if any.
func (s *Session) CachedCustomer(id int64) (bank.Customer, bool) {
	return s.customers.Get(strconv.FormatInt(id, 10))
}

// CachedAccount returns the account in view, if any.
func (s *Session) CachedAccount(accountNumber string) (bank.Account, bool) {
	return s.accounts.Get(strings.TrimSpace(accountNumber))
}

// InvalidateCustomer drops a customer from view.
func (s *Session) InvalidateCustomer(id int64) {
	s.customers.Delete(strconv.FormatInt(id, 10))
}

// InvalidateAccount drops an account from view.
func (s *Session) InvalidateAccount(accountNumber string) {
	s.accounts.Delete(strings.TrimSpace(accountNumber))
}

// Clear forgets everything in view, including the recent list.
func (s *Session) Clear() {
	s.customers.Clear()
	s.accounts.Clear()

	s.mu.Lock()
	s.recent = nil
	s.mu.Unlock()
}

func (s *Session) cacheCustomer(c bank.Customer) {
	if err := s.customers.Set(strconv.FormatInt(c.ID, 10), c); err != nil {
		s.logger.Debug("customer not cached", zap.Int64("customer_id", c.ID), zap.Error(err))
	}
}

func (s *Session) cacheAccount(a bank.Account) {
	if err := s.accounts.Set(a.AccountNumber, a); err != nil {
		s.logger.Debug("account not cached", zap.String("account_number", a.AccountNumber), zap.Error(err))
	}
}

func alreadyClosed(op, accountNumber string) *bank.Error {
	return &bank.Error{
		Kind:    bank.KindInvalidState,
		Op:      op,
		Entity:  "Account",
		ID:      accountNumber,
		Code:    "ACCOUNT_CLOSED",
		Message: fmt.Sprintf("Account %s is already closed", accountNumber),
	}
}
