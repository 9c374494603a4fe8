// Package config handles terrawallet configuration.
//
// Settings come from built-in per-network defaults, then an optional YAML
// file, then TERRAWALLET_* environment variables, then command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Klingon-tech/terrawallet/pkg/tx"
	"github.com/Klingon-tech/terrawallet/pkg/types"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// Config holds the wallet's runtime configuration.
type Config struct {
	Network NetworkType `mapstructure:"network"`
	ChainID string      `mapstructure:"chain_id"`
	DataDir string      `mapstructure:"datadir"`

	Gateway GatewayConfig `mapstructure:"gateway"`
	Tx      TxConfig      `mapstructure:"tx"`
	Keyring KeyringConfig `mapstructure:"keyring"`
	Log     LogConfig     `mapstructure:"log"`
}

// GatewayConfig points at the LCD service.
type GatewayConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// TxConfig holds fee and confirmation settings.
type TxConfig struct {
	// GasPrices is a coin list such as "0.015uluna,0.15uusd".
	GasPrices     string        `mapstructure:"gas_prices"`
	GasAdjustment string        `mapstructure:"gas_adjustment"`
	Mode          string        `mapstructure:"mode"`
	PollRetries   int           `mapstructure:"poll_retries"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
}

// Keyring backends.
const (
	KeyringBadger = "badger"
	KeyringMemory = "memory"
)

// KeyringConfig selects where secrets are stored.
type KeyringConfig struct {
	Backend string `mapstructure:"backend"`
	// Dir defaults to <datadir>/<network>/keyring when empty.
	Dir string `mapstructure:"dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
	JSON  bool   `mapstructure:"json"`
}

// ParsedGasPrices returns Tx.GasPrices as coins.
func (c *Config) ParsedGasPrices() (types.DecCoins, error) {
	if c.Tx.GasPrices == "" {
		return nil, nil
	}
	prices, err := types.ParseDecCoins(c.Tx.GasPrices)
	if err != nil {
		return nil, fmt.Errorf("tx.gas_prices: %w", err)
	}
	return prices, nil
}

// ParsedGasAdjustment returns Tx.GasAdjustment as a decimal.
func (c *Config) ParsedGasAdjustment() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Tx.GasAdjustment)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("tx.gas_adjustment: %w", err)
	}
	return d, nil
}

// BroadcastMode returns Tx.Mode as a broadcast mode.
func (c *Config) BroadcastMode() (tx.BroadcastMode, error) {
	m, err := tx.ParseBroadcastMode(c.Tx.Mode)
	if err != nil {
		return "", fmt.Errorf("tx.mode: %w", err)
	}
	return m, nil
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.terrawallet
//	macOS:   ~/Library/Application Support/Terrawallet
//	Windows: %APPDATA%\Terrawallet
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".terrawallet"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Terrawallet")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Terrawallet")
		}
		return filepath.Join(home, "AppData", "Roaming", "Terrawallet")
	default:
		return filepath.Join(home, ".terrawallet")
	}
}

// NetworkDir returns the network-specific data directory.
func (c *Config) NetworkDir() string {
	return filepath.Join(c.DataDir, string(c.Network))
}

// KeyringDir returns the keyring database directory.
func (c *Config) KeyringDir() string {
	if c.Keyring.Dir != "" {
		return c.Keyring.Dir
	}
	return filepath.Join(c.NetworkDir(), "keyring")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the default config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "terrawallet.yaml")
}
