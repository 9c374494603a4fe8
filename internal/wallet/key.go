package wallet

import (
	"fmt"

	"github.com/Klingon-tech/terrawallet/pkg/crypto"
	"github.com/Klingon-tech/terrawallet/pkg/tx"
	"github.com/Klingon-tech/terrawallet/pkg/types"
)

// Key is a signing identity: a private scalar plus its cached public key.
type Key struct {
	priv *crypto.PrivateKey
	pub  []byte
	raw  types.RawAddress
}

// NewKey wraps a 32-byte private scalar.
func NewKey(priv []byte) (*Key, error) {
	pk, err := crypto.PrivateKeyFromBytes(priv)
	if err != nil {
		return nil, err
	}
	pub := pk.PublicKey()
	return &Key{priv: pk, pub: pub, raw: crypto.RawAddress(pub)}, nil
}

// KeyFromHD extracts the signing key from an extended private key.
func KeyFromHD(hd *HDKey) (*Key, error) {
	priv := hd.PrivateKeyBytes()
	if priv == nil {
		return nil, fmt.Errorf("cannot create key from public HD key")
	}
	return NewKey(priv)
}

// KeyFromMnemonic derives the Terra key at m/44'/330'/account'/0/index.
func KeyFromMnemonic(p Phrase, passphrase string, account, index uint32) (*Key, error) {
	hd, err := Derive(p.Seed(passphrase), CoinTypeTerra, account, index)
	if err != nil {
		return nil, err
	}
	return KeyFromHD(hd)
}

// PublicKey returns the compressed public key.
func (k *Key) PublicKey() []byte {
	out := make([]byte, len(k.pub))
	copy(out, k.pub)
	return out
}

// PrivateKeyBytes returns the 32-byte scalar.
func (k *Key) PrivateKeyBytes() []byte { return k.priv.Serialize() }

// RawAddress returns RIPEMD160(SHA256(pubkey)).
func (k *Key) RawAddress() types.RawAddress { return k.raw }

// AccAddress returns the terra1... address.
func (k *Key) AccAddress() types.AccAddress { return types.AccAddress(k.raw.AccAddress()) }

// ValAddress returns the terravaloper1... address.
func (k *Key) ValAddress() types.ValAddress { return types.ValAddress(k.raw.ValAddress()) }

// AccPubKey returns the terrapub1... encoding of the public key.
func (k *Key) AccPubKey() types.AccPubKey {
	p, _ := types.NewAccPubKey(k.pub)
	return p
}

// ValPubKey returns the terravaloperpub1... encoding of the public key.
func (k *Key) ValPubKey() types.ValPubKey {
	p, _ := types.NewValPubKey(k.pub)
	return p
}

// Sign signs SHA256(blob) and returns 64-byte r||s.
func (k *Key) Sign(blob []byte) ([]byte, error) {
	return k.priv.Sign(blob)
}

// SignTx signs the canonical bytes of doc.
func (k *Key) SignTx(doc tx.SignDoc) (tx.StdSignature, error) {
	bz, err := doc.Bytes()
	if err != nil {
		return tx.StdSignature{}, fmt.Errorf("sign doc bytes: %w", err)
	}
	sig, err := k.priv.Sign(bz)
	if err != nil {
		return tx.StdSignature{}, fmt.Errorf("sign: %w", err)
	}
	return tx.NewStdSignature(sig, k.pub), nil
}

// Zero wipes the private scalar.
func (k *Key) Zero() { k.priv.Zero() }
