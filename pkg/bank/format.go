package bank

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders d as US dollars with thousands separators and two
// decimals, e.g. "$1,234.50".
func FormatCurrency(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatTransactionAmount renders amount for a statement line. Withdrawals
// are shown with a leading minus sign.
func FormatTransactionAmount(amount decimal.Decimal, txType TransactionType) string {
	formatted := FormatCurrency(amount.Abs())
	if strings.EqualFold(string(txType), string(TransactionTypeWithdrawal)) {
		return "-" + formatted
	}
	return formatted
}

// TransactionTypeDisplay returns the human label for a transaction type.
func TransactionTypeDisplay(txType TransactionType) string {
	switch TransactionType(strings.ToUpper(string(txType))) {
	case TransactionTypeDeposit:
		return "Deposit"
	case TransactionTypeWithdrawal:
		return "Withdrawal"
	case "TRANSFER":
		return "Transfer"
	case "FEE":
		return "Fee"
	case "INTEREST":
		return "Interest"
	default:
		return "Transaction"
	}
}

var friendlyMessages = map[string]string{
	"INSUFFICIENT_FUNDS":         "Insufficient funds in your account",
	"ACCOUNT_NOT_FOUND":          "Account not found. Please check the account number",
	"ACCOUNT_CLOSED":             "Cannot process transaction. Account is closed",
	"ACCOUNT_SUSPENDED":          "Account is temporarily suspended",
	"INVALID_AMOUNT":             "Please enter a valid amount",
	"DAILY_LIMIT_EXCEEDED":       "Daily transaction limit exceeded",
	"INVALID_ACCOUNT_NUMBER":     "Invalid account number format",
	"TRANSACTION_LIMIT_EXCEEDED": "Transaction amount exceeds allowed limit",
	"ACCOUNT_INACTIVE":           "Account is inactive. Please contact support",
}

// FriendlyMessage maps a server error code to a displayable message. The
// second result is false for unknown codes.
func FriendlyMessage(code string) (string, bool) {
	msg, ok := friendlyMessages[strings.ToUpper(strings.TrimSpace(code))]
	return msg, ok
}

// EstimateFee returns the advisory fee shown before a transaction is
// submitted. The backend decides the real fee.
func EstimateFee(amount decimal.Decimal, txType TransactionType, accountType AccountType) decimal.Decimal {
	if txType != TransactionTypeWithdrawal {
		return decimal.Zero
	}
	switch accountType {
	case AccountTypeSavings:
		if amount.GreaterThan(decimal.NewFromInt(1000)) {
			return decimal.NewFromInt(5)
		}
		return decimal.Zero
	case AccountTypeCurrent:
		return decimal.NewFromInt(2)
	case AccountTypeFixedDeposit:
		return decimal.NewFromInt(25)
	default:
		return decimal.Zero
	}
}
