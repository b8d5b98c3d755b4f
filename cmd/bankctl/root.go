package main

import (
	"bank-mediator/pkg/client"

	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "bankctl",
		Short:         "Teller command line for the banking backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(a.output); err != nil {
				return err
			}
			return a.setup(cmd)
		},
	}
	root.SetOut(a.out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: $BANK_CONFIG or ./bankctl.yaml)")
	flags.StringVar(&a.baseURL, "base-url", client.DefaultBaseURL, "backend API root")
	flags.DurationVar(&a.timeout, "timeout", client.DefaultTimeout, "per-request timeout")
	flags.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	flags.StringVarP(&a.output, "output", "o", outputText, "output format (text or json)")
	flags.BoolVar(&a.fake, "fake", false, "run against an in-process fake backend seeded with demo data")

	root.AddCommand(
		newCustomerCmd(a),
		newAccountCmd(a),
		newTxCmd(a),
		newPingCmd(a),
	)
	return root
}
