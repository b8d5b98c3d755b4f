package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"bank-mediator/pkg/bank"
	"bank-mediator/pkg/session"
)

const (
	outputText = "text"
	outputJSON = "json"
)

const timeLayout = "2006-01-02 15:04"

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON:
		return nil
	default:
		return bank.NewValidationError("bankctl", "output", fmt.Sprintf("output must be %s or %s (got %q)", outputText, outputJSON, format))
	}
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) table(header string, rows func(w *tabwriter.Writer)) error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)
	return w.Flush()
}

func (a *app) printValue(v any, text any) error {
	if a.output == outputJSON {
		return a.printJSON(v)
	}
	_, err := fmt.Fprintln(a.out, text)
	return err
}

func (a *app) printCustomers(customers ...bank.Customer) error {
	if a.output == outputJSON {
		return a.printJSON(customers)
	}
	return a.table("ID\tNAME\tEMAIL\tPHONE\tCREATED", func(w *tabwriter.Writer) {
		for _, c := range customers {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, orDash(c.Email), orDash(c.Phone), formatTime(c.CreatedDate))
		}
	})
}

func (a *app) printAccounts(accounts ...bank.Account) error {
	if a.output == outputJSON {
		return a.printJSON(accounts)
	}
	return a.table("NUMBER\tCUSTOMER\tTYPE\tSTATUS\tBALANCE", func(w *tabwriter.Writer) {
		for _, acc := range accounts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				acc.AccountNumber,
				customerLabel(acc),
				acc.AccountType,
				acc.Status,
				bank.FormatCurrency(acc.Balance),
			)
		}
	})
}

func (a *app) printTransactions(txs ...bank.Transaction) error {
	if a.output == outputJSON {
		return a.printJSON(txs)
	}
	return a.table("ID\tACCOUNT\tTYPE\tAMOUNT\tBALANCE\tDATE", func(w *tabwriter.Writer) {
		for _, tx := range txs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				tx.ID,
				tx.AccountNumber,
				bank.TransactionTypeDisplay(tx.TransactionType),
				bank.FormatTransactionAmount(tx.Amount, tx.TransactionType),
				bank.FormatCurrency(tx.BalanceAfter),
				formatTime(tx.TransactionDate),
			)
		}
	})
}

func (a *app) printCustomerView(view *session.CustomerView) error {
	if a.output == outputJSON {
		return a.printJSON(struct {
			Customer      bank.Customer  `json:"customer"`
			Accounts      []bank.Account `json:"accounts"`
			AccountsError string         `json:"accountsError,omitempty"`
		}{view.Customer, view.Accounts, errorText(view.AccountsErr)})
	}

	if err := a.printCustomers(view.Customer); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	if view.AccountsErr != nil {
		_, err := fmt.Fprintln(a.out, "Accounts unavailable:", bank.UserMessage(view.AccountsErr))
		return err
	}
	if len(view.Accounts) == 0 {
		_, err := fmt.Fprintln(a.out, "No accounts.")
		return err
	}
	return a.printAccounts(view.Accounts...)
}

func (a *app) printAccountView(view *session.AccountView) error {
	if a.output == outputJSON {
		return a.printJSON(struct {
			Account      bank.Account       `json:"account"`
			History      []bank.Transaction `json:"history"`
			HistoryError string             `json:"historyError,omitempty"`
		}{view.Account, view.History, errorText(view.HistoryErr)})
	}

	if err := a.printAccounts(view.Account); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	if view.HistoryErr != nil {
		_, err := fmt.Fprintln(a.out, "History unavailable:", bank.UserMessage(view.HistoryErr))
		return err
	}
	if len(view.History) == 0 {
		_, err := fmt.Fprintln(a.out, "No transactions.")
		return err
	}
	return a.printTransactions(view.History...)
}

func (a *app) printStatus(status bank.ConnectivityStatus) error {
	if a.output == outputJSON {
		return a.printJSON(status)
	}
	state := "DOWN"
	if status.Connected {
		state = "UP"
	}
	line := state + "  " + status.Message
	if status.CustomerCount != nil {
		line += " (" + strconv.FormatInt(*status.CustomerCount, 10) + " customers)"
	}
	_, err := fmt.Fprintln(a.out, line)
	return err
}

func customerLabel(acc bank.Account) string {
	if acc.CustomerName != "" {
		return acc.CustomerName
	}
	return strconv.FormatInt(acc.CustomerID, 10)
}

func formatTime(ts bank.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(timeLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return bank.UserMessage(err)
}
