package main

import (
	"bank-mediator/pkg/bank"

	"github.com/spf13/cobra"
)

func newAccountCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Open, inspect and close accounts",
	}

	var accountType string
	create := &cobra.Command{
		Use:   "create <customer-id>",
		Short: "Open an account for a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := bank.ParseCustomerID("create account", args[0])
			if err != nil {
				return err
			}
			t, err := bank.ParseAccountType(accountType)
			if err != nil {
				return err
			}
			account, err := a.session.CreateAccount(cmd.Context(), id, t)
			if err != nil {
				return err
			}
			return a.printAccounts(*account)
		},
	}
	create.Flags().StringVarP(&accountType, "type", "t", string(bank.AccountTypeSavings), "SAVINGS, CURRENT or FIXED_DEPOSIT")

	get := &cobra.Command{
		Use:   "get <account-number>",
		Short: "Show an account and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.session.InquireAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printAccountView(view)
		},
	}

	closeCmd := &cobra.Command{
		Use:   "close <account-number>",
		Short: "Close an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := a.session.CloseAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printAccounts(*account)
		},
	}

	list := &cobra.Command{
		Use:   "list <customer-id>",
		Short: "List the accounts of a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := bank.ParseCustomerID("list accounts", args[0])
			if err != nil {
				return err
			}
			accounts, err := a.client.ListAccountsByCustomer(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printAccounts(accounts...)
		},
	}

	cmd.AddCommand(create, get, closeCmd, list)
	return cmd
}
