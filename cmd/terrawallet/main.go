// terrawallet is a command-line wallet for the Terra network.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Klingon-tech/terrawallet/config"
	"github.com/Klingon-tech/terrawallet/internal/broadcast"
	"github.com/Klingon-tech/terrawallet/internal/gateway"
	"github.com/Klingon-tech/terrawallet/internal/keyring"
	klog "github.com/Klingon-tech/terrawallet/internal/log"
)

// passwordEnv lets scripts unlock the keyring without a terminal.
const passwordEnv = "TERRAWALLET_KEYRING_PASSWORD"

// app carries the state shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
	wallet  string

	cfg *config.Config
	gw  *gateway.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{v: config.NewViper()}).ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "terrawallet",
		Short:         "Manage Terra keys and submit transactions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default <datadir>/terrawallet.yaml)")
	pf.StringVar(&a.wallet, "wallet", "default", "keyring wallet name")
	pf.String("network", "", "mainnet or testnet")
	pf.String("chain-id", "", "chain id override")
	pf.String("datadir", "", "data directory")
	pf.String("gateway", "", "LCD gateway URL")
	pf.String("keyring-backend", "", "keyring backend (badger, memory)")
	pf.String("log-level", "", "log level (trace, debug, info, warn, error)")
	pf.Bool("log-json", false, "log as JSON")

	for key, flag := range map[string]string{
		"network":         "network",
		"chain_id":        "chain-id",
		"datadir":         "datadir",
		"gateway.url":     "gateway",
		"keyring.backend": "keyring-backend",
		"log.level":       "log-level",
		"log.json":        "log-json",
	} {
		cobra.CheckErr(a.v.BindPFlag(key, pf.Lookup(flag)))
	}

	root.AddCommand(
		newKeysCmd(a),
		newAddressCmd(),
		newBalanceCmd(a),
		newSendCmd(a),
		newSwapAllCmd(a),
		newTxCmd(a),
	)
	return root
}

func (a *app) init() error {
	var (
		cfg *config.Config
		err error
	)
	if a.cfgFile != "" {
		cfg, err = config.Load(a.v, a.cfgFile)
	} else {
		cfg, err = config.LoadDefault(a.v)
	}
	if err != nil {
		return err
	}
	if err := klog.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	a.cfg = cfg
	a.gw = gateway.NewWithTimeout(cfg.Gateway.URL, cfg.Gateway.Timeout)
	klog.Wallet.Debug().Str("network", string(cfg.Network)).Str("chain_id", cfg.ChainID).Str("gateway", cfg.Gateway.URL).Msg("Config loaded")
	return nil
}

// openKeyring unlocks the configured keyring. confirm asks for the password
// twice.
func (a *app) openKeyring(confirm bool) (*keyring.Keyring, error) {
	password, err := readPassword("Keyring password: ")
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	if confirm && os.Getenv(passwordEnv) == "" {
		again, err := readPassword("Confirm password: ")
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		if string(again) != string(password) {
			return nil, errors.New("passwords do not match")
		}
	}

	if a.cfg.Keyring.Backend == config.KeyringMemory {
		return keyring.NewMemory(password, keyring.DefaultParams()), nil
	}
	if err := os.MkdirAll(a.cfg.KeyringDir(), 0700); err != nil {
		return nil, fmt.Errorf("create keyring dir: %w", err)
	}
	return keyring.NewBadger(a.cfg.KeyringDir(), password, keyring.DefaultParams())
}

func (a *app) broadcaster() (*broadcast.Broadcaster, error) {
	prices, err := a.cfg.ParsedGasPrices()
	if err != nil {
		return nil, err
	}
	adj, err := a.cfg.ParsedGasAdjustment()
	if err != nil {
		return nil, err
	}
	mode, err := a.cfg.BroadcastMode()
	if err != nil {
		return nil, err
	}
	return broadcast.New(a.gw, broadcast.Options{
		ChainID:       a.cfg.ChainID,
		Mode:          mode,
		GasPrices:     prices,
		GasAdjustment: adj,
		PollRetries:   a.cfg.Tx.PollRetries,
		PollInterval:  a.cfg.Tx.PollInterval,
	}), nil
}

// ── Input helpers ───────────────────────────────────────────────────────

func readPassword(prompt string) ([]byte, error) {
	if pw, ok := os.LookupEnv(passwordEnv); ok {
		return []byte(pw), nil
	}
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

func readLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ── Output helper ───────────────────────────────────────────────────────

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
