package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"bank-mediator/pkg/bank"
	"bank-mediator/pkg/banktest"
	"bank-mediator/pkg/client"
	"bank-mediator/pkg/config"
	"bank-mediator/pkg/logging"
	promMetrics "bank-mediator/pkg/metrics/prometheus"
	"bank-mediator/pkg/session"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	out io.Writer

	// flags
	configPath  string
	baseURL     string
	timeout     time.Duration
	logLevel    string
	metricsAddr string
	output      string
	fake        bool

	cfg       config.Config
	logger    *logging.Logger
	collector *promMetrics.PrometheusCollector
	client    *client.Client
	session   *session.Session

	fakeServer    *banktest.Server
	metricsServer *http.Server
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.Client.BaseURL = a.baseURL
	}
	if flags.Changed("timeout") {
		cfg.Client.Timeout = a.timeout
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = a.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger, err = logging.NewLogger(cfg.LoggingConfig())
	if err != nil {
		return err
	}
	logging.SetGlobal(a.logger)

	a.collector = promMetrics.NewPrometheusCollector(cfg.Metrics.Namespace)
	registry := prometheus.NewRegistry()
	if err := a.collector.Register(registry); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	if cfg.Metrics.Addr != "" {
		if err := a.serveMetrics(cfg.Metrics.Addr, registry); err != nil {
			return err
		}
	}

	clientConfig, err := cfg.ClientConfig()
	if err != nil {
		return err
	}
	if a.fake {
		a.fakeServer = banktest.NewServer(banktest.WithLogger(a.logger))
		if err := seedDemo(a.fakeServer); err != nil {
			return err
		}
		clientConfig.BaseURL = a.fakeServer.APIURL()
		a.logger.Info("using in-process fake backend", zap.String("base_url", clientConfig.BaseURL))
	}

	a.client, err = client.New(clientConfig,
		client.WithLogger(a.logger),
		client.WithMetrics(a.collector),
		client.WithUserAgent("bankctl"),
	)
	if err != nil {
		return err
	}

	a.session = session.New(a.client,
		session.WithLogger(a.logger),
		session.WithRecentLimit(cfg.Session.RecentLimit),
		session.WithCacheTTL(cfg.Session.CacheTTL),
	)
	return nil
}

func (a *app) serveMetrics(addr string, registry *prometheus.Registry) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})).Methods(http.MethodGet)

	a.metricsServer = &http.Server{
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	go func() {
		if err := a.metricsServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	a.logger.Info("metrics available", zap.String("url", "http://"+ln.Addr().String()+"/metrics"))
	return nil
}

// teardown releases everything setup acquired. It is safe to call after a
// partial setup.
func (a *app) teardown() {
	if a.session != nil {
		a.session.Close()
	}
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			a.logger.Warn("metrics server shutdown", zap.Error(err))
		}
	}
	if a.fakeServer != nil {
		a.fakeServer.Close()
	}
	if a.logger != nil {
		a.logger.Sync()
	}
}

// seedDemo gives the fake backend something to show.
func seedDemo(srv *banktest.Server) error {
	ada := srv.AddCustomer("Ada Lovelace", "ada@example.com", "+44 20 7946 0000")
	grace := srv.AddCustomer("Grace Hopper", "grace@example.com", "")

	savings, err := srv.AddAccount(ada.ID, bank.AccountTypeSavings, decimal.Zero)
	if err != nil {
		return err
	}
	if _, err := srv.AddAccount(grace.ID, bank.AccountTypeCurrent, decimal.Zero); err != nil {
		return err
	}

	now := time.Now()
	if _, err := srv.AddTransaction(savings.AccountNumber, bank.TransactionTypeDeposit, decimal.NewFromInt(500), now.Add(-2*time.Hour)); err != nil {
		return err
	}
	_, err = srv.AddTransaction(savings.AccountNumber, bank.TransactionTypeWithdrawal, decimal.NewFromInt(120), now.Add(-time.Hour))
	return err
}
