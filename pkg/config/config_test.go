package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bank-mediator/pkg/client"

	"github.com/shopspring/decimal"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigEnv, "")
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
}

// chdir is a Go 1.21-compatible stand-in for testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Client.BaseURL != client.DefaultBaseURL {
		t.Errorf("base url = %q", c.Client.BaseURL)
	}
	if c.Client.Timeout != 10*time.Second {
		t.Errorf("timeout = %s", c.Client.Timeout)
	}
	if c.Session.RecentLimit != 5 || c.Session.MonitorInterval != 30*time.Second || c.Session.CacheTTL != 5*time.Minute {
		t.Errorf("unexpected session config: %+v", c.Session)
	}

	policy, err := c.Policy()
	if err != nil {
		t.Fatal(err)
	}
	if !policy.DepositLimit.Equal(decimal.NewFromInt(20000)) || !policy.WithdrawalLimit.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("unexpected policy: %+v", policy)
	}

	if d := Default(); d != c {
		t.Errorf("Default() = %+v, Load() = %+v", d, c)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "bank.yaml")
	content := strings.Join([]string{
		"client:",
		"  base_url: http://bank.internal:9090/api",
		"  timeout: 3s",
		"limits:",
		"  deposit: \"5000\"",
		"log:",
		"  level: debug",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BANK_CLIENT_TIMEOUT", "7s")
	t.Setenv("BANK_SESSION_RECENT_LIMIT", "8")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Client.BaseURL != "http://bank.internal:9090/api" {
		t.Errorf("base url = %q", c.Client.BaseURL)
	}
	if c.Client.Timeout != 7*time.Second {
		t.Errorf("env must override file: timeout = %s", c.Client.Timeout)
	}
	if c.Session.RecentLimit != 8 {
		t.Errorf("recent limit = %d", c.Session.RecentLimit)
	}
	if c.Log.Level != "debug" {
		t.Errorf("log level = %q", c.Log.Level)
	}

	cc, err := c.ClientConfig()
	if err != nil {
		t.Fatal(err)
	}
	if !cc.Policy.DepositLimit.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("deposit limit = %s", cc.Policy.DepositLimit)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "bank.toml")
	if err := os.WriteFile(path, []byte("[log]\nformat = \"console\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigEnv, path)

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Log.Format != "console" {
		t.Errorf("log format = %q", c.Log.Format)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		path string
	}{
		{name: "missing explicit file", path: filepath.Join(os.TempDir(), "does-not-exist", "bank.yaml")},
		{name: "bad timeout", env: map[string]string{"BANK_CLIENT_TIMEOUT": "2m"}},
		{name: "bad scheme", env: map[string]string{"BANK_CLIENT_BASE_URL": "ftp://bank"}},
		{name: "bad limit", env: map[string]string{"BANK_LIMITS_WITHDRAWAL": "lots"}},
		{name: "negative limit", env: map[string]string{"BANK_LIMITS_DEPOSIT": "-1"}},
		{name: "bad level", env: map[string]string{"BANK_LOG_LEVEL": "loud"}},
		{name: "bad format", env: map[string]string{"BANK_LOG_FORMAT": "xml"}},
		{name: "zero recent limit", env: map[string]string{"BANK_SESSION_RECENT_LIMIT": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(tt.path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoggingConfig(t *testing.T) {
	c := Default()
	c.Log.Development = true
	c.Log.Level = "warn"

	lc := c.LoggingConfig()
	if !lc.Development || lc.Level != "warn" || lc.Format != "json" {
		t.Errorf("unexpected logging config: %+v", lc)
	}
}
