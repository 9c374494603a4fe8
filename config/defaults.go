package config

import "time"

// Chain ids of the public networks.
const (
	MainnetChainID = "columbus-4"
	TestnetChainID = "tequila-0004"
)

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network: Mainnet,
		ChainID: MainnetChainID,
		DataDir: DefaultDataDir(),
		Gateway: GatewayConfig{
			URL:     "https://lcd.terra.dev",
			Timeout: 10 * time.Second,
		},
		Tx: TxConfig{
			GasPrices:     "0.015uluna",
			GasAdjustment: "1.4",
			Mode:          "sync",
			PollRetries:   10,
			PollInterval:  time.Second,
		},
		Keyring: KeyringConfig{
			Backend: KeyringBadger,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	cfg.ChainID = TestnetChainID
	cfg.Gateway.URL = "https://tequila-lcd.terra.dev"
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}
