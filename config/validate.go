package config

import (
	"fmt"
	"net/url"
	"time"
)

// MaxPollRetries caps the confirmation loop.
const MaxPollRetries = 1000

// Validate checks the configuration for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}
	if cfg.ChainID == "" {
		return fmt.Errorf("chain_id is empty")
	}

	u, err := url.Parse(cfg.Gateway.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("gateway.url must be an http(s) URL, got %q", cfg.Gateway.URL)
	}
	if cfg.Gateway.Timeout <= 0 {
		return fmt.Errorf("gateway.timeout must be positive")
	}

	if _, err := cfg.ParsedGasPrices(); err != nil {
		return err
	}
	adj, err := cfg.ParsedGasAdjustment()
	if err != nil {
		return err
	}
	if adj.IsNegative() || adj.IsZero() {
		return fmt.Errorf("tx.gas_adjustment must be positive")
	}
	if _, err := cfg.BroadcastMode(); err != nil {
		return err
	}
	if cfg.Tx.PollRetries < 1 || cfg.Tx.PollRetries > MaxPollRetries {
		return fmt.Errorf("tx.poll_retries must be in range [1, %d]", MaxPollRetries)
	}
	if cfg.Tx.PollInterval < 100*time.Millisecond {
		return fmt.Errorf("tx.poll_interval must be at least 100ms")
	}

	switch cfg.Keyring.Backend {
	case KeyringBadger, KeyringMemory:
	default:
		return fmt.Errorf("keyring.backend must be %q or %q", KeyringBadger, KeyringMemory)
	}
	return nil
}
