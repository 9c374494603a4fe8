package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/terrawallet/internal/wallet"
	"github.com/Klingon-tech/terrawallet/pkg/types"
)

func newAddressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Inspect and convert bech32 addresses",
		// Pure offline commands; no config needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "validate <address>",
			Short: "Report which kind of address or pubkey a string is",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				v, err := types.Identify(args[0])
				if err != nil {
					return err
				}
				fmt.Printf("valid %s\n", v)
				return nil
			},
		},
		&cobra.Command{
			Use:   "convert <address>",
			Short: "Convert between account and validator encodings",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				out, err := convertAddress(args[0])
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			},
		},
		&cobra.Command{
			Use:   "from-key <keyfile>",
			Short: "Print the addresses of a hex-encoded private key file",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				k, err := keyFromFile(args[0])
				if err != nil {
					return err
				}
				defer k.Zero()
				fmt.Printf("pubkey=%s\n", hex.EncodeToString(k.PublicKey()))
				fmt.Printf("address=%s\n", k.AccAddress())
				fmt.Printf("valoper=%s\n", k.ValAddress())
				return nil
			},
		},
	)
	return cmd
}

// convertAddress swaps an address or pubkey between its account and
// validator operator forms.
func convertAddress(s string) (string, error) {
	v, err := types.Identify(s)
	if err != nil {
		return "", err
	}
	switch v {
	case types.VariantAccAddress:
		return types.AccToVal(s)
	case types.VariantValAddress:
		return types.ValToAcc(s)
	case types.VariantAccPubKey:
		return types.AccPubKeyToValPubKey(s)
	case types.VariantValPubKey:
		return types.ValPubKeyToAccPubKey(s)
	}
	return "", fmt.Errorf("%s has no counterpart encoding", v)
}

func keyFromFile(path string) (*wallet.Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	keyBytes, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("key file %s: %w", path, err)
	}
	return wallet.NewKey(keyBytes)
}
