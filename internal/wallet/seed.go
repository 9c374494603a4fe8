package wallet

import "encoding/hex"

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// Seed is the PBKDF2-SHA512 output of a phrase and passphrase.
type Seed [SeedSize]byte

// SeedFromMnemonic validates an English mnemonic and derives its seed
// using PBKDF2-SHA512 as specified in BIP-39.
func SeedFromMnemonic(mnemonic, passphrase string) (Seed, error) {
	p, err := ParseMnemonic(mnemonic)
	if err != nil {
		return Seed{}, err
	}
	return p.Seed(passphrase), nil
}

// Bytes returns a copy of the seed.
func (s Seed) Bytes() []byte {
	out := make([]byte, SeedSize)
	copy(out, s[:])
	return out
}

// Hex returns the lowercase hex encoding.
func (s Seed) Hex() string { return hex.EncodeToString(s[:]) }
