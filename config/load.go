package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// TERRAWALLET_GATEWAY_URL.
const EnvPrefix = "TERRAWALLET"

// NewViper returns a viper instance wired for terrawallet's environment
// variables. Callers may bind command-line flags to it before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves the configuration. The network is read first so that its
// defaults sit under the file, environment and flag layers. An empty file
// means no config file; a missing file at an explicit path is an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	network := NetworkType(strings.ToLower(v.GetString("network")))
	if network == "" {
		network = Mainnet
	}
	setDefaults(v, Default(network))

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Network = NetworkType(strings.ToLower(string(cfg.Network)))

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault reads the config file at the default location if it exists.
func LoadDefault(v *viper.Viper) (*Config, error) {
	v.SetConfigName("terrawallet")
	v.SetConfigType("yaml")
	v.AddConfigPath(DefaultDataDir())
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return Load(v, "")
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("network", string(d.Network))
	v.SetDefault("chain_id", d.ChainID)
	v.SetDefault("datadir", d.DataDir)

	v.SetDefault("gateway.url", d.Gateway.URL)
	v.SetDefault("gateway.timeout", d.Gateway.Timeout)

	v.SetDefault("tx.gas_prices", d.Tx.GasPrices)
	v.SetDefault("tx.gas_adjustment", d.Tx.GasAdjustment)
	v.SetDefault("tx.mode", d.Tx.Mode)
	v.SetDefault("tx.poll_retries", d.Tx.PollRetries)
	v.SetDefault("tx.poll_interval", d.Tx.PollInterval)

	v.SetDefault("keyring.backend", d.Keyring.Backend)
	v.SetDefault("keyring.dir", d.Keyring.Dir)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.json", d.Log.JSON)
}
