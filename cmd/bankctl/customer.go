package main

import (
	"bank-mediator/pkg/bank"

	"github.com/spf13/cobra"
)

func newCustomerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Create and look up customers",
	}

	var nc bank.NewCustomer
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a new customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			customer, err := a.session.CreateCustomer(cmd.Context(), nc)
			if err != nil {
				return err
			}
			return a.printCustomers(*customer)
		},
	}
	create.Flags().StringVar(&nc.Name, "name", "", "full name")
	create.Flags().StringVar(&nc.Email, "email", "", "email address")
	create.Flags().StringVar(&nc.Phone, "phone", "", "phone number")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a customer and their accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := bank.ParseCustomerID("get customer", args[0])
			if err != nil {
				return err
			}
			view, err := a.session.InquireCustomer(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printCustomerView(view)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			customers, err := a.client.ListCustomers(cmd.Context())
			if err != nil {
				return err
			}
			return a.printCustomers(customers...)
		},
	}

	search := &cobra.Command{
		Use:   "search <name>",
		Short: "Find customers by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			customers, err := a.client.SearchCustomers(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printCustomers(customers...)
		},
	}

	count := &cobra.Command{
		Use:   "count",
		Short: "Print the number of customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.client.CountCustomers(cmd.Context())
			if err != nil {
				return err
			}
			return a.printValue(map[string]int64{"count": n}, n)
		},
	}

	cmd.AddCommand(create, get, list, search, count)
	return cmd
}
