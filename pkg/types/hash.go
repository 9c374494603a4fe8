// Package types defines the primitive wire types of the Terra wallet core:
// bech32 address variants, coins, string-encoded numerics and timestamps.
package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// TxHashSize is the length of a transaction hash in bytes.
const TxHashSize = 32

// TxHash is the SHA256 of a transaction's encoded bytes. The gateway prints
// it as uppercase hex.
type TxHash [TxHashSize]byte

// IsZero returns true if the hash is all zeros.
func (h TxHash) IsZero() bool {
	return h == TxHash{}
}

// String returns the uppercase hex-encoded hash.
func (h TxHash) String() string {
	return strings.ToUpper(hex.EncodeToString(h[:]))
}

// Bytes returns a copy of the hash as a byte slice.
func (h TxHash) Bytes() []byte {
	b := make([]byte, TxHashSize)
	copy(b, h[:])
	return b
}

// MarshalJSON encodes the hash as a hex string.
func (h TxHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex string of either case into a hash.
func (h *TxHash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*h = TxHash{}
		return nil
	}
	parsed, err := ParseTxHash(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseTxHash converts a 64-character hex string (either case) to a TxHash.
func ParseTxHash(s string) (TxHash, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return TxHash{}, fmt.Errorf("invalid tx hash hex: %w", err)
	}
	if len(b) != TxHashSize {
		return TxHash{}, fmt.Errorf("tx hash must be %d bytes, got %d", TxHashSize, len(b))
	}
	var h TxHash
	copy(h[:], b)
	return h, nil
}
