package types

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Bech32DecodeError is returned when a string is not valid bech32:
// bad charset, bad checksum, mixed case, or malformed layout.
type Bech32DecodeError struct {
	Input  string
	Reason string
}

func (e *Bech32DecodeError) Error() string {
	return fmt.Sprintf("bech32: %s", e.Reason)
}

func decodeErr(s, format string, args ...interface{}) error {
	return &Bech32DecodeError{Input: s, Reason: fmt.Sprintf(format, args...)}
}

// Bech32Encode encodes a human-readable prefix and payload bytes into a
// lowercase bech32 string.
func Bech32Encode(hrp string, data []byte) (string, error) {
	if len(hrp) == 0 {
		return "", errors.New("bech32: empty HRP")
	}
	for _, c := range hrp {
		if c < 33 || c > 126 {
			return "", fmt.Errorf("bech32: invalid HRP character %q", c)
		}
	}
	conv, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("bech32: convert bits: %w", err)
	}
	return bech32.Encode(hrp, conv)
}

// Bech32Decode splits a bech32 string into its human-readable prefix and
// payload bytes. Only the original BIP-173 checksum is accepted. All failures
// are *Bech32DecodeError.
func Bech32Decode(s string) (string, []byte, error) {
	if len(s) == 0 {
		return "", nil, decodeErr(s, "empty string")
	}
	// Pubkey encodings exceed the 90 character BIP-173 limit.
	hrp, data5, version, err := bech32.DecodeNoLimitWithVersion(s)
	if err != nil {
		return "", nil, decodeErr(s, "%s", decodeReason(err))
	}
	if version != bech32.Version0 {
		return "", nil, decodeErr(s, "invalid checksum")
	}
	data8, err := bech32.ConvertBits(data5, 5, 8, false)
	if err != nil {
		return "", nil, decodeErr(s, "convert bits: %v", err)
	}
	return hrp, data8, nil
}

func decodeReason(err error) string {
	switch e := err.(type) {
	case bech32.ErrInvalidChecksum:
		return "invalid checksum"
	case bech32.ErrMixedCase:
		return "mixed case"
	case bech32.ErrInvalidSeparatorIndex:
		return "missing separator"
	case bech32.ErrInvalidLength:
		return "too short"
	case bech32.ErrInvalidCharacter:
		return fmt.Sprintf("invalid character %q", rune(e))
	case bech32.ErrNonCharsetChar:
		return fmt.Sprintf("invalid character %q", rune(e))
	}
	return err.Error()
}
