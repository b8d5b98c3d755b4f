// Package config loads bankctl settings from defaults, an optional config
// file and BANK_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bank-mediator/pkg/bank"
	"bank-mediator/pkg/client"
	"bank-mediator/pkg/logging"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BANK_CLIENT_BASE_URL.
const EnvPrefix = "BANK"

// ConfigEnv names the environment variable holding an explicit config file.
const ConfigEnv = "BANK_CONFIG"

// Config holds application configuration.
type Config struct {
	Client  ClientConfig  `mapstructure:"client"`
	Limits  LimitsConfig  `mapstructure:"limits"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Session SessionConfig `mapstructure:"session"`
}

// ClientConfig holds the backend connection settings.
type ClientConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	HealthPath string        `mapstructure:"health_path"`
}

// LimitsConfig holds the advisory transaction ceilings as decimal strings.
type LimitsConfig struct {
	Deposit    string `mapstructure:"deposit"`
	Withdrawal string `mapstructure:"withdrawal"`
}

// LogConfig mirrors logging.Config.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	Development bool   `mapstructure:"development"`
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr      string `mapstructure:"addr"`
	Namespace string `mapstructure:"namespace"`
}

// SessionConfig holds view-model settings.
type SessionConfig struct {
	RecentLimit     int           `mapstructure:"recent_limit"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	MonitorInterval time.Duration `mapstructure:"monitor_interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("client.base_url", client.DefaultBaseURL)
	v.SetDefault("client.timeout", client.DefaultTimeout)
	v.SetDefault("client.health_path", client.DefaultHealthPath)

	policy := bank.DefaultPolicy()
	v.SetDefault("limits.deposit", policy.DepositLimit.StringFixed(2))
	v.SetDefault("limits.withdrawal", policy.WithdrawalLimit.StringFixed(2))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.development", false)

	v.SetDefault("metrics.addr", "")
	v.SetDefault("metrics.namespace", "bank_client")

	v.SetDefault("session.recent_limit", 5)
	v.SetDefault("session.cache_ttl", 5*time.Minute)
	v.SetDefault("session.monitor_interval", 30*time.Second)
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	v := viper.New()
	setDefaults(v)

	var c Config
	// Defaults always decode.
	_ = v.Unmarshal(&c)
	return c
}

// Load reads configuration from file and env. path takes precedence over
// BANK_CONFIG; with neither set, bankctl.{yaml,toml,json} is looked up in
// the working directory and $HOME/.config/bankctl, and a missing file is
// not an error. An explicitly named file must exist.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("bankctl")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "bankctl"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", describe(path), err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func describe(path string) string {
	if path == "" {
		return "config file"
	}
	return path
}

// Policy parses the configured ceilings.
func (c Config) Policy() (bank.Policy, error) {
	deposit, err := decimal.NewFromString(strings.TrimSpace(c.Limits.Deposit))
	if err != nil {
		return bank.Policy{}, fmt.Errorf("config: limits.deposit %q is not a number", c.Limits.Deposit)
	}
	withdrawal, err := decimal.NewFromString(strings.TrimSpace(c.Limits.Withdrawal))
	if err != nil {
		return bank.Policy{}, fmt.Errorf("config: limits.withdrawal %q is not a number", c.Limits.Withdrawal)
	}
	return bank.Policy{DepositLimit: deposit, WithdrawalLimit: withdrawal}, nil
}

// ClientConfig converts the settings into a client.Config.
func (c Config) ClientConfig() (client.Config, error) {
	policy, err := c.Policy()
	if err != nil {
		return client.Config{}, err
	}
	return client.Config{
		BaseURL:    c.Client.BaseURL,
		Timeout:    c.Client.Timeout,
		HealthPath: c.Client.HealthPath,
		Policy:     policy,
	}, nil
}

// LoggingConfig converts the settings into a logging.Config.
func (c Config) LoggingConfig() logging.Config {
	lc := logging.DefaultConfig()
	if c.Log.Development {
		lc = logging.DevelopmentConfig()
	}
	if c.Log.Level != "" {
		lc.Level = c.Log.Level
	}
	if c.Log.Format != "" {
		lc.Format = c.Log.Format
	}
	return lc
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	cc, err := c.ClientConfig()
	if err != nil {
		return err
	}
	if err := cc.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("config: log.format %q must be json or console", c.Log.Format)
	}

	if c.Session.RecentLimit <= 0 {
		return errors.New("config: session.recent_limit must be positive")
	}
	if c.Session.CacheTTL <= 0 {
		return errors.New("config: session.cache_ttl must be positive")
	}
	if c.Session.MonitorInterval <= 0 {
		return errors.New("config: session.monitor_interval must be positive")
	}
	return nil
}
