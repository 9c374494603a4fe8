package crypto

import (
	"encoding/base64"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Sizes of the secp256k1 values handled here.
const (
	PrivateKeySize = 32
	PublicKeySize  = 33
	SignatureSize  = 64
)

// PubKeyTypeSecp256k1 is the type tag carried next to a public key in a
// transaction signature.
const PubKeyTypeSecp256k1 = "tendermint/PubKeySecp256k1"

// Signer signs byte blobs with a secp256k1 key.
type Signer interface {
	// Sign hashes blob with SHA-256 and returns a 64-byte r||s signature.
	Sign(blob []byte) ([]byte, error)
	// PublicKey returns the compressed 33-byte public key.
	PublicKey() []byte
}

// PrivateKey wraps a secp256k1 private key for ECDSA signing.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// GenerateKey creates a new random secp256k1 private key.
func GenerateKey() (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte secret.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", PrivateKeySize, len(b))
	}
	key := secp256k1.PrivKeyFromBytes(b)
	if key.Key.IsZero() {
		return nil, fmt.Errorf("private key is zero or exceeds the curve order")
	}
	return &PrivateKey{key: key}, nil
}

// PublicKeyFromPrivate returns the compressed public key for a 32-byte
// private scalar.
func PublicKeyFromPrivate(priv []byte) ([]byte, error) {
	pk, err := PrivateKeyFromBytes(priv)
	if err != nil {
		return nil, err
	}
	return pk.PublicKey(), nil
}

// Sign hashes blob with SHA-256 and signs the digest. Nonces follow RFC6979,
// so the same key and blob always give the same signature.
func (pk *PrivateKey) Sign(blob []byte) ([]byte, error) {
	h := Sha256(blob)
	return pk.SignHash(h[:])
}

// SignHash signs a precomputed 32-byte digest and returns r||s with low S.
func (pk *PrivateKey) SignHash(hash []byte) ([]byte, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("hash must be 32 bytes, got %d", len(hash))
	}
	// Compact form is recovery byte || r || s.
	compact := ecdsa.SignCompact(pk.key, hash, true)
	return compact[1:], nil
}

// PublicKey returns the compressed 33-byte public key.
func (pk *PrivateKey) PublicKey() []byte {
	return pk.key.PubKey().SerializeCompressed()
}

// Serialize returns the 32-byte private key scalar.
func (pk *PrivateKey) Serialize() []byte {
	return pk.key.Serialize()
}

// Zero securely zeroes the private key memory.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}

// VerifySignature checks an r||s signature over SHA256(blob) against a
// compressed public key. Returns false on any error.
func VerifySignature(blob, signature, publicKey []byte) bool {
	h := Sha256(blob)
	return VerifyHash(h[:], signature, publicKey)
}

// VerifyHash checks an r||s signature over a 32-byte digest.
func VerifyHash(hash, signature, publicKey []byte) bool {
	if len(hash) != 32 || len(signature) != SignatureSize {
		return false
	}
	pubKey, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false
	}
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(signature[:32]); overflow || r.IsZero() {
		return false
	}
	if overflow := s.SetByteSlice(signature[32:]); overflow || s.IsZero() {
		return false
	}
	return ecdsa.NewSignature(&r, &s).Verify(hash, pubKey)
}

// EncodePubKey returns the base64 form of a compressed key, as carried in
// signature pub_key values.
func EncodePubKey(pub []byte) string {
	return base64.StdEncoding.EncodeToString(pub)
}

// DecodePubKey parses the base64 form produced by EncodePubKey and checks the
// key is on the curve.
func DecodePubKey(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode pubkey: %w", err)
	}
	if _, err := secp256k1.ParsePubKey(b); err != nil {
		return nil, fmt.Errorf("parse pubkey: %w", err)
	}
	return b, nil
}
