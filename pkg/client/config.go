package client

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"bank-mediator/pkg/bank"
)

const (
	// DefaultBaseURL is where the banking backend listens in development.
	DefaultBaseURL = "http://localhost:8080/api"

	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second

	// MaxTimeout is the largest accepted request timeout.
	MaxTimeout = 60 * time.Second

	// DefaultHealthPath is the endpoint probed by CheckConnection.
	DefaultHealthPath = "/customers/count"
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:8080/api".
	BaseURL string

	// Timeout bounds each request, from dispatch until the body is read.
	// Zero means DefaultTimeout.
	Timeout time.Duration

	// HealthPath is probed by CheckConnection. It is joined to BaseURL
	// unless it is an absolute http(s) URL, which allows pointing at an
	// actuator endpoint outside the API root.
	HealthPath string

	// Policy holds the advisory deposit and withdrawal ceilings. A zero
	// Policy means bank.DefaultPolicy().
	Policy bank.Policy
}

// DefaultConfig returns a configuration for a local backend.
func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		HealthPath: DefaultHealthPath,
		Policy:     bank.DefaultPolicy(),
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = def.BaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = def.Timeout
	}
	if strings.TrimSpace(c.HealthPath) == "" {
		c.HealthPath = def.HealthPath
	}
	if c.Policy.DepositLimit.IsZero() && c.Policy.WithdrawalLimit.IsZero() {
		c.Policy = def.Policy
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	return c
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("client: invalid base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("client: base URL %q must use http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("client: base URL %q has no host", c.BaseURL)
	}

	if c.Timeout <= 0 {
		return errors.New("client: timeout must be positive")
	}
	if c.Timeout > MaxTimeout {
		return fmt.Errorf("client: timeout %s exceeds maximum of %s", c.Timeout, MaxTimeout)
	}

	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("client: %w", err)
	}
	return nil
}
