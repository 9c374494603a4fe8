// Package keyring stores wallet secrets encrypted at rest.
//
// Secrets are addressed by a wallet name and a key name. Values are sealed
// with Argon2id + XChaCha20-Poly1305 before they reach the backend, so the
// backend only ever sees ciphertext.
package keyring

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	klog "github.com/Klingon-tech/terrawallet/internal/log"
)

// Keyring errors.
var (
	ErrKeyNotFound    = errors.New("key not found")
	ErrWalletNotFound = errors.New("wallet not found")
	ErrInvalidName    = errors.New("invalid name")
	ErrWrongPassword  = errors.New("wrong password or corrupted entry")
)

// Store is a secret store keyed by wallet and key name.
type Store interface {
	Get(wallet, name string) ([]byte, error)
	Set(wallet, name string, secret []byte) error
	Has(wallet, name string) (bool, error)
	Delete(wallet, name string) error
	// List returns the key names of a wallet in sorted order.
	List(wallet string) ([]string, error)
	// ListWallets returns every wallet that holds at least one key.
	ListWallets() ([]string, error)
	Close() error
}

const keyPrefix = "w/"

// Keyring implements Store on top of a key-value backend.
type Keyring struct {
	db       kv
	password []byte
	params   EncryptionParams
	logger   zerolog.Logger
}

var _ Store = (*Keyring)(nil)

func newKeyring(db kv, password []byte, params EncryptionParams) *Keyring {
	pw := make([]byte, len(password))
	copy(pw, password)
	return &Keyring{db: db, password: pw, params: params, logger: klog.Keyring}
}

// NewBadger opens (or creates) a keyring database in dir.
func NewBadger(dir string, password []byte, params EncryptionParams) (*Keyring, error) {
	db, err := openBadger(dir)
	if err != nil {
		return nil, err
	}
	return newKeyring(db, password, params), nil
}

// NewMemory returns a keyring that lives only as long as the process.
func NewMemory(password []byte, params EncryptionParams) *Keyring {
	return newKeyring(newMemoryKV(), password, params)
}

func validName(s string) error {
	if s == "" || strings.ContainsAny(s, "/\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidName, s)
	}
	return nil
}

func walletPrefix(wallet string) []byte {
	return []byte(keyPrefix + wallet + "/")
}

func entryKey(wallet, name string) ([]byte, error) {
	if err := validName(wallet); err != nil {
		return nil, err
	}
	if err := validName(name); err != nil {
		return nil, err
	}
	return append(walletPrefix(wallet), name...), nil
}

// Get decrypts and returns a stored secret.
func (k *Keyring) Get(wallet, name string) ([]byte, error) {
	key, err := entryKey(wallet, name)
	if err != nil {
		return nil, err
	}
	sealed, err := k.db.get(key)
	if errors.Is(err, errNotFound) {
		return nil, fmt.Errorf("%w: %s/%s", ErrKeyNotFound, wallet, name)
	}
	if err != nil {
		return nil, err
	}
	secret, err := Decrypt(sealed, k.password)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", ErrWrongPassword, wallet, name, err)
	}
	return secret, nil
}

// Set encrypts secret and stores it, replacing any previous value.
func (k *Keyring) Set(wallet, name string, secret []byte) error {
	key, err := entryKey(wallet, name)
	if err != nil {
		return err
	}
	sealed, err := Encrypt(secret, k.password, k.params)
	if err != nil {
		return fmt.Errorf("encrypt %s/%s: %w", wallet, name, err)
	}
	if err := k.db.put(key, sealed); err != nil {
		return err
	}
	k.logger.Debug().Str("wallet", wallet).Str("name", name).Msg("Key stored")
	return nil
}

// Has reports whether a key exists without decrypting it.
func (k *Keyring) Has(wallet, name string) (bool, error) {
	key, err := entryKey(wallet, name)
	if err != nil {
		return false, err
	}
	return k.db.has(key)
}

// Delete removes a key.
func (k *Keyring) Delete(wallet, name string) error {
	key, err := entryKey(wallet, name)
	if err != nil {
		return err
	}
	ok, err := k.db.has(key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrKeyNotFound, wallet, name)
	}
	if err := k.db.delete(key); err != nil {
		return err
	}
	k.logger.Debug().Str("wallet", wallet).Str("name", name).Msg("Key deleted")
	return nil
}

// List returns the key names stored under wallet.
func (k *Keyring) List(wallet string) ([]string, error) {
	if err := validName(wallet); err != nil {
		return nil, err
	}
	prefix := walletPrefix(wallet)
	var names []string
	err := k.db.forEach(prefix, func(key []byte) error {
		names = append(names, string(key[len(prefix):]))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, wallet)
	}
	sort.Strings(names)
	return names, nil
}

// ListWallets returns all wallet names in sorted order.
func (k *Keyring) ListWallets() ([]string, error) {
	seen := make(map[string]struct{})
	err := k.db.forEach([]byte(keyPrefix), func(key []byte) error {
		rest := string(key[len(keyPrefix):])
		if i := strings.IndexByte(rest, '/'); i > 0 {
			seen[rest[:i]] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	wallets := make([]string, 0, len(seen))
	for w := range seen {
		wallets = append(wallets, w)
	}
	sort.Strings(wallets)
	return wallets, nil
}

// Close zeroes the cached password and closes the backend.
func (k *Keyring) Close() error {
	zero(k.password)
	return k.db.close()
}
