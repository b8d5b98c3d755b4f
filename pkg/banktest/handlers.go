package banktest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"bank-mediator/pkg/bank"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req bank.NewCustomer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "", "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		s.writeValidation(w, "name", "Name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Email != "" {
		for _, existing := range s.customers {
			if strings.EqualFold(existing.Email, req.Email) {
				s.writeError(w, http.StatusConflict, "DUPLICATE_CUSTOMER",
					fmt.Sprintf("Customer with email %s already exists", req.Email))
				return
			}
		}
	}

	writeJSON(w, http.StatusCreated, s.insertCustomer(req))
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "", fmt.Sprintf("Invalid customer id: %s", raw))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok {
		s.writeError(w, http.StatusNotFound, "CUSTOMER_NOT_FOUND", fmt.Sprintf("Customer not found with id: %d", id))
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, s.sortedCustomers(func(*bank.Customer) bool { return true }))
}

func (s *Server) searchCustomers(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("name")))
	if name == "" {
		s.writeError(w, http.StatusBadRequest, "", "Search name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, s.sortedCustomers(func(c *bank.Customer) bool {
		return strings.Contains(strings.ToLower(c.Name), name)
	}))
}

func (s *Server) countCustomers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, len(s.customers))
}

// sortedCustomers returns the customers matching keep ordered by ID.
// Callers must hold s.mu.
func (s *Server) sortedCustomers(keep func(*bank.Customer) bool) []bank.Customer {
	customers := make([]bank.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if keep(c) {
			customers = append(customers, *c)
		}
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID  int64            `json:"customerId"`
		AccountType bank.AccountType `json:"accountType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "", "Invalid request body")
		return
	}
	if !req.AccountType.Valid() {
		s.writeValidation(w, "accountType", "Account type is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[req.CustomerID]
	if !ok {
		s.writeError(w, http.StatusBadRequest, "CUSTOMER_NOT_FOUND",
			fmt.Sprintf("Customer not found with id: %d", req.CustomerID))
		return
	}
	writeJSON(w, http.StatusCreated, s.insertAccount(customer, req.AccountType))
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.lookupAccount(w, mux.Vars(r)["accountNumber"])
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (s *Server) closeAccount(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.lookupAccount(w, mux.Vars(r)["accountNumber"])
	if !ok {
		return
	}
	if account.IsClosed() {
		s.writeError(w, http.StatusBadRequest, "ACCOUNT_CLOSED",
			fmt.Sprintf("Account %s is already closed", account.AccountNumber))
		return
	}
	account.Status = bank.AccountStatusClosed
	writeJSON(w, http.StatusOK, account)
}

func (s *Server) customerAccounts(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["customerId"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "", fmt.Sprintf("Invalid customer id: %s", raw))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[id]; !ok {
		s.writeError(w, http.StatusNotFound, "CUSTOMER_NOT_FOUND", fmt.Sprintf("Customer not found with id: %d", id))
		return
	}

	accounts := make([]bank.Account, 0)
	for _, a := range s.accounts {
		if a.CustomerID == id {
			accounts = append(accounts, *a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].AccountNumber < accounts[j].AccountNumber })
	writeJSON(w, http.StatusOK, accounts)
}

// lookupAccount writes a 404 and returns false if the account is unknown.
// Callers must hold s.mu.
func (s *Server) lookupAccount(w http.ResponseWriter, accountNumber string) (*bank.Account, bool) {
	account, ok := s.accounts[accountNumber]
	if !ok {
		s.writeError(w, http.StatusNotFound, "ACCOUNT_NOT_FOUND", fmt.Sprintf("Account not found: %s", accountNumber))
		return nil, false
	}
	return account, true
}

type transactionRequest struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
}

func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	s.transact(w, r, bank.TransactionTypeDeposit)
}

func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	s.transact(w, r, bank.TransactionTypeWithdrawal)
}

func (s *Server) transact(w http.ResponseWriter, r *http.Request, txType bank.TransactionType) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "", "Invalid request body")
		return
	}
	if !req.Amount.IsPositive() {
		s.writeValidation(w, "amount", "Amount must be greater than 0")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.lookupAccount(w, req.AccountNumber)
	if !ok {
		return
	}
	if account.IsClosed() {
		s.writeError(w, http.StatusBadRequest, "ACCOUNT_CLOSED",
			fmt.Sprintf("Account %s is closed and cannot accept transactions", account.AccountNumber))
		return
	}
	if txType == bank.TransactionTypeWithdrawal && account.Balance.LessThan(req.Amount) {
		s.writeError(w, http.StatusBadRequest, "INSUFFICIENT_FUNDS",
			fmt.Sprintf("Insufficient balance. Available balance: %s", account.Balance.StringFixed(2)))
		return
	}

	tx := s.insertTransaction(account, txType, req.Amount, req.Description, s.now())
	writeJSON(w, http.StatusCreated, tx)
}

// accountHistory returns the account's transactions in the order they were
// recorded, which is not necessarily date order.
func (s *Server) accountHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.lookupAccount(w, mux.Vars(r)["accountNumber"])
	if !ok {
		return
	}

	history := make([]bank.Transaction, 0)
	for _, tx := range s.transactions {
		if tx.AccountNumber == account.AccountNumber {
			history = append(history, tx)
		}
	}
	writeJSON(w, http.StatusOK, history)
}

// recentTransactions returns the limit most recent transactions, oldest
// first.
func (s *Server) recentTransactions(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, "", fmt.Sprintf("Invalid limit: %s", raw))
			return
		}
		limit = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recent := append([]bank.Transaction(nil), s.transactions...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].TransactionDate.Before(recent[j].TransactionDate.Time)
	})
	if len(recent) > limit {
		recent = recent[len(recent)-limit:]
	}
	writeJSON(w, http.StatusOK, nonNilTransactions(recent))
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	page, size := 0, 20
	query := r.URL.Query()
	if raw := query.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "", fmt.Sprintf("Invalid page: %s", raw))
			return
		}
		page = n
	}
	if raw := query.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, "", fmt.Sprintf("Invalid size: %s", raw))
			return
		}
		size = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := page * size
	if start >= len(s.transactions) {
		writeJSON(w, http.StatusOK, []bank.Transaction{})
		return
	}
	end := start + size
	if end > len(s.transactions) {
		end = len(s.transactions)
	}
	writeJSON(w, http.StatusOK, s.transactions[start:end])
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status := s.healthStatus
	s.mu.Unlock()

	code := http.StatusOK
	if status == "DOWN" || status == "OUT_OF_SERVICE" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"status": status})
}

func nonNilTransactions(txs []bank.Transaction) []bank.Transaction {
	if txs == nil {
		return []bank.Transaction{}
	}
	return txs
}
