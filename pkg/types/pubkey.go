package types

import (
	"bytes"
	"fmt"
)

// Public key sizes.
const (
	Secp256k1PubKeySize = 33
	Ed25519PubKeySize   = 32
)

// Amino type prefixes (4-byte disambiguation prefix + length byte) carried
// in front of the key bytes inside bech32 pubkey encodings.
var (
	aminoPrefixSecp256k1 = []byte{0xeb, 0x5a, 0xe9, 0x87, 0x21}
	aminoPrefixEd25519   = []byte{0x16, 0x24, 0xde, 0x64, 0x20}
)

// AccPubKey is a bech32 account pubkey (terrapub1...).
type AccPubKey string

// ValPubKey is a bech32 validator operator pubkey (terravaloperpub1...).
type ValPubKey string

// ValConsPubKey is a bech32 validator consensus pubkey (terravalconspub1...).
type ValConsPubKey string

func withPrefix(prefix, key []byte) []byte {
	out := make([]byte, 0, len(prefix)+len(key))
	out = append(out, prefix...)
	return append(out, key...)
}

func encodePubKey(v Variant, prefix, key []byte, size int) (string, error) {
	if len(key) != size {
		return "", &ConversionError{Variant: v, Reason: fmt.Sprintf("public key must be %d bytes, got %d", size, len(key))}
	}
	return v.Encode(withPrefix(prefix, key))
}

func decodePubKey(v Variant, s string, prefix []byte, size int) ([]byte, error) {
	data, err := CheckAddress(s, v.Prefix(), v.Length())
	if err != nil {
		return nil, err
	}
	if len(data) != len(prefix)+size || !bytes.HasPrefix(data, prefix) {
		return nil, &ConversionError{Variant: v, Reason: "unexpected key type prefix"}
	}
	return data[len(prefix):], nil
}

// NewAccPubKey encodes a 33-byte compressed secp256k1 key.
func NewAccPubKey(pub []byte) (AccPubKey, error) {
	s, err := encodePubKey(VariantAccPubKey, aminoPrefixSecp256k1, pub, Secp256k1PubKeySize)
	return AccPubKey(s), err
}

// NewValPubKey encodes a 33-byte compressed secp256k1 key.
func NewValPubKey(pub []byte) (ValPubKey, error) {
	s, err := encodePubKey(VariantValPubKey, aminoPrefixSecp256k1, pub, Secp256k1PubKeySize)
	return ValPubKey(s), err
}

// NewValConsPubKey encodes a 32-byte ed25519 consensus key.
func NewValConsPubKey(pub []byte) (ValConsPubKey, error) {
	s, err := encodePubKey(VariantValConsPubKey, aminoPrefixEd25519, pub, Ed25519PubKeySize)
	return ValConsPubKey(s), err
}

// Validate reports whether the pubkey string is well formed.
func (p AccPubKey) Validate() bool { return ValidateAccPubKey(string(p)) }

// Key returns the compressed secp256k1 key bytes.
func (p AccPubKey) Key() ([]byte, error) {
	return decodePubKey(VariantAccPubKey, string(p), aminoPrefixSecp256k1, Secp256k1PubKeySize)
}

// ToValPubKey re-encodes the key under the operator pubkey prefix.
func (p AccPubKey) ToValPubKey() (ValPubKey, error) {
	key, err := p.Key()
	if err != nil {
		return "", err
	}
	return NewValPubKey(key)
}

func (p AccPubKey) String() string { return string(p) }

// Validate reports whether the pubkey string is well formed.
func (p ValPubKey) Validate() bool { return ValidateValPubKey(string(p)) }

// Key returns the compressed secp256k1 key bytes.
func (p ValPubKey) Key() ([]byte, error) {
	return decodePubKey(VariantValPubKey, string(p), aminoPrefixSecp256k1, Secp256k1PubKeySize)
}

// ToAccPubKey re-encodes the key under the account pubkey prefix.
func (p ValPubKey) ToAccPubKey() (AccPubKey, error) {
	key, err := p.Key()
	if err != nil {
		return "", err
	}
	return NewAccPubKey(key)
}

func (p ValPubKey) String() string { return string(p) }

// Validate reports whether the pubkey string is well formed.
func (p ValConsPubKey) Validate() bool { return ValidateValConsPubKey(string(p)) }

// Key returns the ed25519 key bytes.
func (p ValConsPubKey) Key() ([]byte, error) {
	return decodePubKey(VariantValConsPubKey, string(p), aminoPrefixEd25519, Ed25519PubKeySize)
}

func (p ValConsPubKey) String() string { return string(p) }

// AccPubKeyToValPubKey converts a terrapub1... string to terravaloperpub1...
func AccPubKeyToValPubKey(s string) (string, error) {
	v, err := AccPubKey(s).ToValPubKey()
	return string(v), err
}

// ValPubKeyToAccPubKey converts a terravaloperpub1... string to terrapub1...
func ValPubKeyToAccPubKey(s string) (string, error) {
	a, err := ValPubKey(s).ToAccPubKey()
	return string(a), err
}
