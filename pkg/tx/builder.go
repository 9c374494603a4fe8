package tx

import (
	"fmt"

	"github.com/Klingon-tech/terrawallet/pkg/msg"
)

// Signer produces a signature over a SignDoc.
type Signer interface {
	SignTx(doc SignDoc) (StdSignature, error)
}

// Builder constructs transactions incrementally.
type Builder struct {
	doc SignDoc
}

// NewBuilder creates a new transaction builder for chainID.
func NewBuilder(chainID string) *Builder {
	return &Builder{doc: SignDoc{ChainID: chainID}}
}

// AddMsg appends messages in order.
func (b *Builder) AddMsg(ms ...msg.Msg) *Builder {
	b.doc.Msgs = append(b.doc.Msgs, ms...)
	return b
}

// SetFee sets the declared fee.
func (b *Builder) SetFee(fee StdFee) *Builder {
	b.doc.Fee = fee
	return b
}

// SetMemo sets the memo.
func (b *Builder) SetMemo(memo string) *Builder {
	b.doc.Memo = memo
	return b
}

// SetAccountNumber sets the signer's account number.
func (b *Builder) SetAccountNumber(n uint64) *Builder {
	b.doc.AccountNumber = n
	return b
}

// SetSequence sets the signer's sequence.
func (b *Builder) SetSequence(seq uint64) *Builder {
	b.doc.Sequence = seq
	return b
}

// Msgs returns the messages added so far.
func (b *Builder) Msgs() msg.Msgs { return b.doc.Msgs }

// SignDoc returns the document that will be signed.
func (b *Builder) SignDoc() SignDoc { return b.doc }

// Sign signs the document and returns the signed transaction.
// Does NOT check the result; call StdTx.Validate separately.
func (b *Builder) Sign(signers ...Signer) (StdTx, error) {
	if b.doc.ChainID == "" {
		return StdTx{}, fmt.Errorf("%w: chain id not set", ErrInvalidTx)
	}
	if err := b.doc.Msgs.ValidateBasic(); err != nil {
		return StdTx{}, err
	}
	sigs := make([]StdSignature, 0, len(signers))
	for i, s := range signers {
		sig, err := s.SignTx(b.doc)
		if err != nil {
			return StdTx{}, fmt.Errorf("signer %d: %w", i, err)
		}
		sigs = append(sigs, sig)
	}
	return StdTx{
		Msg:        b.doc.Msgs,
		Fee:        b.doc.Fee,
		Signatures: sigs,
		Memo:       b.doc.Memo,
	}, nil
}

// Envelope signs and wraps the transaction for broadcasting.
func (b *Builder) Envelope(mode BroadcastMode, signers ...Signer) (Envelope, error) {
	stdTx, err := b.Sign(signers...)
	if err != nil {
		return Envelope{}, err
	}
	if err := stdTx.Validate(); err != nil {
		return Envelope{}, err
	}
	return Envelope{Tx: stdTx, Mode: mode}, nil
}
