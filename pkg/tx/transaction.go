// Package tx defines the signable document, the signed transaction and the
// broadcast envelope.
package tx

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Klingon-tech/terrawallet/pkg/crypto"
	"github.com/Klingon-tech/terrawallet/pkg/msg"
	"github.com/Klingon-tech/terrawallet/pkg/types"
)

// MaxMemoCharacters is the longest memo the chain accepts.
const MaxMemoCharacters = 256

// StdFee is the fee declared by a transaction.
type StdFee struct {
	Amount types.Coins `json:"amount"`
	Gas    uint64      `json:"gas,string"`
}

// NewStdFee builds a fee with sorted coins.
func NewStdFee(gas uint64, amount types.Coins) StdFee {
	return StdFee{Amount: types.NewCoins(amount...), Gas: gas}
}

// PubKey is a type-tagged, base64-encoded public key.
type PubKey struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// StdSignature is a 64-byte r||s signature with the signer's public key.
type StdSignature struct {
	Signature []byte `json:"signature"`
	PubKey    PubKey `json:"pub_key"`
}

// NewStdSignature bundles a signature with its secp256k1 public key.
func NewStdSignature(sig, pub []byte) StdSignature {
	return StdSignature{
		Signature: sig,
		PubKey: PubKey{
			Type:  crypto.PubKeyTypeSecp256k1,
			Value: crypto.EncodePubKey(pub),
		},
	}
}

// Verify checks the signature against the canonical bytes of doc.
func (s StdSignature) Verify(doc SignDoc) bool {
	if s.PubKey.Type != crypto.PubKeyTypeSecp256k1 {
		return false
	}
	pub, err := crypto.DecodePubKey(s.PubKey.Value)
	if err != nil {
		return false
	}
	bz, err := doc.Bytes()
	if err != nil {
		return false
	}
	return crypto.VerifySignature(bz, s.Signature, pub)
}

// SignDoc is the exact document whose serialized form is signed.
type SignDoc struct {
	AccountNumber uint64   `json:"account_number,string"`
	ChainID       string   `json:"chain_id"`
	Fee           StdFee   `json:"fee"`
	Memo          string   `json:"memo"`
	Msgs          msg.Msgs `json:"msgs"`
	Sequence      uint64   `json:"sequence,string"`
}

// Bytes returns the canonical sign bytes: compact JSON with object keys
// sorted at every depth.
func (d SignDoc) Bytes() ([]byte, error) {
	bz, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal sign doc: %w", err)
	}
	return SortJSON(bz)
}

// SortJSON re-encodes a JSON document with object keys sorted and no
// insignificant whitespace. Numbers keep their original text.
func SortJSON(bz []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(bz))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("sort json: %w", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("sort json: %w", err)
	}
	return out, nil
}

// StdTx is a signed transaction.
type StdTx struct {
	Msg        msg.Msgs       `json:"msg"`
	Fee        StdFee         `json:"fee"`
	Signatures []StdSignature `json:"signatures"`
	Memo       string         `json:"memo"`
}

// Validate checks the transaction before it is sent.
func (t StdTx) Validate() error {
	if err := t.Msg.ValidateBasic(); err != nil {
		return err
	}
	if len(t.Memo) > MaxMemoCharacters {
		return fmt.Errorf("%w: memo is %d characters, max %d", ErrInvalidTx, len(t.Memo), MaxMemoCharacters)
	}
	if len(t.Fee.Amount) > 0 {
		if err := t.Fee.Amount.Validate(); err != nil {
			return fmt.Errorf("%w: fee: %v", ErrInvalidTx, err)
		}
	}
	if len(t.Signatures) == 0 {
		return fmt.Errorf("%w: no signatures", ErrInvalidTx)
	}
	for i, s := range t.Signatures {
		if len(s.Signature) != crypto.SignatureSize {
			return fmt.Errorf("%w: signature %d is %d bytes", ErrInvalidTx, i, len(s.Signature))
		}
	}
	return nil
}
