package main

import (
	"context"

	"bank-mediator/pkg/bank"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newTxCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Move money and read transaction history",
	}

	deposit := &cobra.Command{
		Use:   "deposit <account-number> <amount>",
		Short: "Deposit cash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transact(cmd.Context(), "deposit cash", args, a.session.Deposit)
		},
	}

	withdraw := &cobra.Command{
		Use:   "withdraw <account-number> <amount>",
		Short: "Withdraw cash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transact(cmd.Context(), "withdraw cash", args, a.session.Withdraw)
		},
	}

	history := &cobra.Command{
		Use:   "history <account-number>",
		Short: "Show the history of an account, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := a.client.GetTransactionHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printTransactions(txs...)
		},
	}

	var limit int
	recent := &cobra.Command{
		Use:   "recent",
		Short: "Show the latest transactions across all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := a.client.GetRecentTransactions(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return a.printTransactions(txs...)
		},
	}
	recent.Flags().IntVar(&limit, "limit", 10, "number of transactions (1-100)")

	var page, size int
	list := &cobra.Command{
		Use:   "list",
		Short: "Page through all transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := a.client.ListTransactions(cmd.Context(), page, size)
			if err != nil {
				return err
			}
			return a.printTransactions(txs...)
		},
	}
	list.Flags().IntVar(&page, "page", 0, "zero-based page number")
	list.Flags().IntVar(&size, "size", 20, "page size (1-200)")

	cmd.AddCommand(deposit, withdraw, history, recent, list)
	return cmd
}

type transactFunc func(ctx context.Context, accountNumber string, amount decimal.Decimal) (*bank.Transaction, error)

func (a *app) transact(ctx context.Context, op string, args []string, send transactFunc) error {
	amount, err := bank.ParseAmount(op, args[1])
	if err != nil {
		return err
	}
	tx, err := send(ctx, args[0], amount)
	if err != nil {
		return err
	}
	return a.printTransactions(*tx)
}
