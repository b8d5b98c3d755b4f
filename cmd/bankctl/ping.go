package main

import (
	"time"

	"bank-mediator/pkg/bank"
	"bank-mediator/pkg/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPingCmd(a *app) *cobra.Command {
	var (
		watch    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !watch {
				status := a.client.CheckConnection(ctx)
				if err := a.printStatus(status); err != nil {
					return err
				}
				if !status.Connected {
					return &bank.Error{Kind: bank.KindTransport, Op: "ping", Message: status.Message}
				}
				return nil
			}

			if !cmd.Flags().Changed("interval") {
				interval = a.cfg.Session.MonitorInterval
			}
			monitor := session.NewMonitor(a.client,
				session.WithInterval(interval),
				session.WithMonitorLogger(a.logger),
				session.WithOnChange(func(status bank.ConnectivityStatus) {
					if err := a.printStatus(status); err != nil {
						a.logger.Warn("print status", zap.Error(err))
					}
				}),
			)
			monitor.Start(ctx)
			<-ctx.Done()
			monitor.Stop()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep checking and report every change until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", session.DefaultMonitorInterval, "check interval with --watch")
	return cmd
}
