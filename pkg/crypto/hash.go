// Package crypto provides the hashing and secp256k1 signing primitives used
// for Terra accounts.
package crypto

import (
	"crypto/sha256"

	"github.com/Klingon-tech/terrawallet/pkg/types"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // address format is fixed by the chain
)

// Sha256 computes the SHA-256 digest of data.
func Sha256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// Hash160 computes RIPEMD160(SHA256(data)).
func Hash160(data []byte) []byte {
	h := sha256.Sum256(data)
	r := ripemd160.New()
	r.Write(h[:])
	return r.Sum(nil)
}

// RawAddress derives the 20-byte account identity from a compressed public
// key. Address = RIPEMD160(SHA256(compressed_pubkey)).
func RawAddress(pubKey []byte) types.RawAddress {
	var addr types.RawAddress
	copy(addr[:], Hash160(pubKey))
	return addr
}
