package bank

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	accountNumberPattern = regexp.MustCompile(`^[A-Za-z0-9]{3,20}$`)
	emailPattern         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	amountPattern        = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

const (
	minNameLength  = 2
	maxPhoneLength = 20
)

// ValidateCustomerID checks that id is a positive integer.
func ValidateCustomerID(op string, id int64) error {
	if id <= 0 {
		return NewValidationError(op, "customerId",
			fmt.Sprintf("customer ID must be a positive integer (got %d)", id))
	}
	return nil
}

// ParseCustomerID parses a customer ID typed by a user.
func ParseCustomerID(op, raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, NewValidationError(op, "customerId", "customer ID is required")
	}
	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, NewValidationError(op, "customerId",
			fmt.Sprintf("customer ID must be a positive integer (got %q)", raw))
	}
	if err := ValidateCustomerID(op, id); err != nil {
		return 0, err
	}
	return id, nil
}

// ValidateNewCustomer trims c and checks the form rules: a name of at least
// two characters, a well-formed email if given, and a phone number of at most
// 20 characters if given.
func ValidateNewCustomer(op string, c NewCustomer) (NewCustomer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)

	if c.Name == "" {
		return c, NewValidationError(op, "name", "customer name is required")
	}
	if utf8.RuneCountInString(c.Name) < minNameLength {
		return c, NewValidationError(op, "name", "customer name must be at least 2 characters long")
	}
	if c.Email != "" && !emailPattern.MatchString(c.Email) {
		return c, NewValidationError(op, "email", fmt.Sprintf("%q is not a valid email address", c.Email))
	}
	if utf8.RuneCountInString(c.Phone) > maxPhoneLength {
		return c, NewValidationError(op, "phone", "phone number must not exceed 20 characters")
	}
	return c, nil
}

// ValidateAccountNumber trims the account number and checks its format:
// 3 to 20 letters or digits.
func ValidateAccountNumber(op, accountNumber string) (string, error) {
	trimmed := strings.TrimSpace(accountNumber)
	if trimmed == "" {
		return "", NewValidationError(op, "accountNumber", "account number is required")
	}
	if !accountNumberPattern.MatchString(trimmed) {
		return "", NewValidationError(op, "accountNumber",
			fmt.Sprintf("%q is not a valid account number", trimmed))
	}
	return trimmed, nil
}

// ValidateAccountType checks that t is a recognized account type.
func ValidateAccountType(op string, t AccountType) error {
	if !t.Valid() {
		return NewValidationError(op, "accountType",
			fmt.Sprintf("account type must be one of SAVINGS, CURRENT, FIXED_DEPOSIT (got %q)", string(t)))
	}
	return nil
}

// ValidateAmount checks a deposit or withdrawal amount: strictly positive,
// at most two decimal places and within the policy ceiling for txType.
func ValidateAmount(op string, amount decimal.Decimal, txType TransactionType, policy Policy) error {
	if !amount.IsPositive() {
		return NewValidationError(op, "amount", "amount must be greater than 0")
	}
	if !amount.Equal(amount.Truncate(2)) {
		return NewValidationError(op, "amount", "amount can have at most 2 decimal places")
	}
	limit := policy.LimitFor(txType)
	if limit.IsPositive() && amount.GreaterThan(limit) {
		return NewValidationError(op, "amount",
			fmt.Sprintf("%s amount cannot exceed %s", strings.ToLower(TransactionTypeDisplay(txType)), FormatCurrency(limit)))
	}
	return nil
}

// ParseAmount parses an amount typed by a user. Only plain decimal notation
// with up to two fractional digits is accepted.
func ParseAmount(op, raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, NewValidationError(op, "amount", "amount is required")
	}
	if !amountPattern.MatchString(trimmed) {
		return decimal.Zero, NewValidationError(op, "amount",
			"amount must be a positive number with at most 2 decimal places")
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, NewValidationError(op, "amount", fmt.Sprintf("invalid amount %q", raw))
	}
	return d, nil
}
