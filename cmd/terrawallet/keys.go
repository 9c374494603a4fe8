package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/terrawallet/internal/keyring"
	"github.com/Klingon-tech/terrawallet/internal/wallet"
)

// storedKey is the keyring entry for a named key.
type storedKey struct {
	Mnemonic  string          `json:"mnemonic"`
	Language  wallet.Language `json:"language"`
	Account   uint32          `json:"account"`
	Index     uint32          `json:"index"`
	CreatedAt time.Time       `json:"created_at"`
}

func (s storedKey) key() (*wallet.Key, error) {
	phrase, err := wallet.ParseMnemonicIn(s.Language, s.Mnemonic)
	if err != nil {
		return nil, err
	}
	return wallet.KeyFromMnemonic(phrase, "", s.Account, s.Index)
}

// keyInfo is the public view of a key.
type keyInfo struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	ValAddress string `json:"val_address"`
	PubKey     string `json:"pubkey"`
	ValPubKey  string `json:"val_pubkey"`
	Path       string `json:"path"`
}

func describe(name string, s storedKey, k *wallet.Key) keyInfo {
	return keyInfo{
		Name:       name,
		Address:    k.AccAddress().String(),
		ValAddress: k.ValAddress().String(),
		PubKey:     k.AccPubKey().String(),
		ValPubKey:  k.ValPubKey().String(),
		Path:       fmt.Sprintf("m/44'/%d'/%d'/0/%d", wallet.CoinTypeTerra, s.Account, s.Index),
	}
}

func loadStored(kr keyring.Store, walletName, name string) (storedKey, *wallet.Key, error) {
	raw, err := kr.Get(walletName, name)
	if err != nil {
		return storedKey{}, nil, err
	}
	var s storedKey
	if err := json.Unmarshal(raw, &s); err != nil {
		return storedKey{}, nil, fmt.Errorf("decode key %s: %w", name, err)
	}
	k, err := s.key()
	if err != nil {
		return storedKey{}, nil, err
	}
	return s, k, nil
}

// loadKey unlocks the keyring and returns the signing key called name.
func (a *app) loadKey(name string) (*wallet.Key, error) {
	kr, err := a.openKeyring(false)
	if err != nil {
		return nil, err
	}
	defer kr.Close()
	_, k, err := loadStored(kr, a.wallet, name)
	return k, err
}

func newKeysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage keys in the keyring",
	}
	cmd.AddCommand(
		newKeysAddCmd(a, false),
		newKeysAddCmd(a, true),
		newKeysListCmd(a),
		newKeysShowCmd(a),
		newKeysDeleteCmd(a),
	)
	return cmd
}

func newKeysAddCmd(a *app, restore bool) *cobra.Command {
	var (
		language string
		account  uint32
		index    uint32
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Generate a new key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			lang, err := wallet.ParseLanguage(language)
			if err != nil {
				return err
			}

			var phrase wallet.Phrase
			if restore {
				line, err := readLine("Enter mnemonic: ")
				if err != nil {
					return fmt.Errorf("read mnemonic: %w", err)
				}
				phrase, err = wallet.ParseMnemonicIn(lang, line)
				if err != nil {
					return err
				}
			} else {
				phrase, err = wallet.GenerateMnemonic(lang)
				if err != nil {
					return err
				}
			}

			s := storedKey{
				Mnemonic:  phrase.String(),
				Language:  phrase.Language(),
				Account:   account,
				Index:     index,
				CreatedAt: time.Now().UTC(),
			}
			k, err := s.key()
			if err != nil {
				return err
			}
			defer k.Zero()

			kr, err := a.openKeyring(true)
			if err != nil {
				return err
			}
			defer kr.Close()

			exists, err := kr.Has(a.wallet, name)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("key %q already exists in wallet %q", name, a.wallet)
			}
			raw, err := json.Marshal(s)
			if err != nil {
				return err
			}
			if err := kr.Set(a.wallet, name, raw); err != nil {
				return err
			}

			if !restore {
				fmt.Println("Mnemonic (write this down!):")
				fmt.Printf("  %s\n\n", phrase)
			}
			return printJSON(describe(name, s, k))
		},
	}
	if restore {
		cmd.Use = "recover <name>"
		cmd.Short = "Restore a key from its mnemonic"
	}
	cmd.Flags().StringVar(&language, "language", "english", "mnemonic wordlist")
	cmd.Flags().Uint32Var(&account, "account", 0, "BIP-44 account")
	cmd.Flags().Uint32Var(&index, "index", 0, "BIP-44 address index")
	return cmd
}

func newKeysListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List keys in the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kr, err := a.openKeyring(false)
			if err != nil {
				return err
			}
			defer kr.Close()

			names, err := kr.List(a.wallet)
			if errors.Is(err, keyring.ErrWalletNotFound) {
				return printJSON([]keyInfo{})
			}
			if err != nil {
				return err
			}
			out := make([]keyInfo, 0, len(names))
			for _, name := range names {
				s, k, err := loadStored(kr, a.wallet, name)
				if err != nil {
					return err
				}
				out = append(out, describe(name, s, k))
				k.Zero()
			}
			return printJSON(out)
		},
	}
}

func newKeysShowCmd(a *app) *cobra.Command {
	var showMnemonic bool
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a key's addresses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := a.openKeyring(false)
			if err != nil {
				return err
			}
			defer kr.Close()

			s, k, err := loadStored(kr, a.wallet, args[0])
			if err != nil {
				return err
			}
			defer k.Zero()
			if showMnemonic {
				fmt.Printf("Mnemonic: %s\n", s.Mnemonic)
			}
			return printJSON(describe(args[0], s, k))
		},
	}
	cmd.Flags().BoolVar(&showMnemonic, "mnemonic", false, "also print the mnemonic")
	return cmd
}

func newKeysDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a key from the keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				answer, err := readLine(fmt.Sprintf("Delete key %q from wallet %q? [y/N] ", args[0], a.wallet))
				if err != nil {
					return err
				}
				if answer != "y" && answer != "Y" {
					return errors.New("aborted")
				}
			}
			kr, err := a.openKeyring(false)
			if err != nil {
				return err
			}
			defer kr.Close()
			if err := kr.Delete(a.wallet, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}
