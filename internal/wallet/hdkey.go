package wallet

import (
	"encoding/binary"
	"fmt"

	"github.com/Klingon-tech/terrawallet/pkg/crypto"
	"github.com/Klingon-tech/terrawallet/pkg/types"
	"github.com/tyler-smith/go-bip32"
)

// BIP-44 derivation path constants.
// Full path: m/44'/coin_type'/account'/0/index
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// CoinTypeTerra is the registered SLIP-44 coin type for Terra (unhardened
	// value; Derive hardens it).
	CoinTypeTerra uint32 = 330

	// ChangeExternal is the only change branch Terra wallets use.
	ChangeExternal = 0
)

// HDKey represents a hierarchical deterministic key (BIP-32).
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates a master HD key from a 64-byte seed.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// Derive returns the extended private key at
// m/44'/coinType'/account'/0/index.
func Derive(seed Seed, coinType, account, index uint32) (*HDKey, error) {
	if coinType >= bip32.FirstHardenedChild || account >= bip32.FirstHardenedChild {
		return nil, fmt.Errorf("coin type and account must be below 2^31")
	}
	master, err := NewMasterKey(seed[:])
	if err != nil {
		return nil, err
	}
	return master.DerivePath(
		PurposeBIP44,
		bip32.FirstHardenedChild+coinType,
		bip32.FirstHardenedChild+account,
		ChangeExternal,
		index,
	)
}

// DeriveChild derives a child key at the given index.
// For hardened derivation, add bip32.FirstHardenedChild to the index.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &HDKey{key: child}, nil
}

// DerivePath derives a key along a sequence of indices.
func (k *HDKey) DerivePath(indices ...uint32) (*HDKey, error) {
	current := k
	for _, idx := range indices {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// PrivateKeyBytes returns the raw 32-byte private key.
// Returns nil if this is a public-only key.
func (k *HDKey) PrivateKeyBytes() []byte {
	if !k.key.IsPrivate {
		return nil
	}
	// bip32 Key.Key is 33 bytes with a leading 0x00 for private keys.
	raw := k.key.Key
	if len(raw) == 33 && raw[0] == 0 {
		return raw[1:]
	}
	return raw
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *HDKey) PublicKeyBytes() []byte {
	pub := k.key.PublicKey()
	return pub.Key
}

// ChainCode returns the 32-byte chain code.
func (k *HDKey) ChainCode() []byte {
	out := make([]byte, len(k.key.ChainCode))
	copy(out, k.key.ChainCode)
	return out
}

// ChildNumber returns the index this key was derived at, hardened bit
// included.
func (k *HDKey) ChildNumber() uint32 {
	if len(k.key.ChildNumber) != 4 {
		return 0
	}
	return binary.BigEndian.Uint32(k.key.ChildNumber)
}

// Signer returns a crypto.PrivateKey from this HD key's private key.
// Returns error if this is a public-only key.
func (k *HDKey) Signer() (*crypto.PrivateKey, error) {
	priv := k.PrivateKeyBytes()
	if priv == nil {
		return nil, fmt.Errorf("cannot create signer from public key")
	}
	return crypto.PrivateKeyFromBytes(priv)
}

// RawAddress derives the 20-byte account identity from this key's public key.
func (k *HDKey) RawAddress() types.RawAddress {
	return crypto.RawAddress(k.PublicKeyBytes())
}

// IsPrivate returns true if this key contains a private key.
func (k *HDKey) IsPrivate() bool {
	return k.key.IsPrivate
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.key.Depth
}

// Neuter returns a public-key-only copy (for watch-only wallets).
func (k *HDKey) Neuter() *HDKey {
	return &HDKey{key: k.key.PublicKey()}
}
