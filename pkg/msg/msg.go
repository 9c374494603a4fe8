// Package msg defines the Terra message kinds that can be placed in a
// transaction. Msg is a closed union: every variant lives in this package
// and is registered in the kind table below.
package msg

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidMsg wraps every ValidateBasic failure.
var ErrInvalidMsg = errors.New("invalid msg")

// ErrUnknownType is returned when decoding a discriminator that has no kind.
var ErrUnknownType = errors.New("unknown msg type")

// Kind identifies a message variant.
type Kind uint8

// Supported kinds.
const (
	KindSend Kind = iota + 1
	KindMultiSend
	KindSwap
	KindSwapSend
	KindStoreCode
	KindInstantiateContract
	KindExecuteContract
	KindMigrateContract
	KindUpdateContractOwner
	KindCreateValidator
	KindEditValidator
	KindDelegate
	KindUndelegate
	KindBeginRedelegate
	KindWithdrawDelegationReward
	KindWithdrawValidatorCommission
	KindModifyWithdrawAddress
	KindUnjail
	KindDelegateFeedConsent
	KindExchangeRatePrevote
	KindExchangeRateVote
	KindAggregateExchangeRatePrevote
	KindAggregateExchangeRateVote
	KindDeposit
	KindVote
)

type kindInfo struct {
	typ    string
	decode func(json.RawMessage) (Msg, error)
}

func variant[T Msg](typ string) kindInfo {
	return kindInfo{typ: typ, decode: func(raw json.RawMessage) (Msg, error) {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	}}
}

// kinds is the dispatch table from variant to wire discriminator.
var kinds = map[Kind]kindInfo{
	KindSend:                         variant[Send]("bank/MsgSend"),
	KindMultiSend:                    variant[MultiSend]("bank/MsgMultiSend"),
	KindSwap:                         variant[Swap]("market/MsgSwap"),
	KindSwapSend:                     variant[SwapSend]("market/MsgSwapSend"),
	KindStoreCode:                    variant[StoreCode]("wasm/MsgStoreCode"),
	KindInstantiateContract:          variant[InstantiateContract]("wasm/MsgInstantiateContract"),
	KindExecuteContract:              variant[ExecuteContract]("wasm/MsgExecuteContract"),
	KindMigrateContract:              variant[MigrateContract]("wasm/MsgMigrateContract"),
	KindUpdateContractOwner:          variant[UpdateContractOwner]("wasm/MsgUpdateContractOwner"),
	KindCreateValidator:              variant[CreateValidator]("staking/MsgCreateValidator"),
	KindEditValidator:                variant[EditValidator]("staking/MsgEditValidator"),
	KindDelegate:                     variant[Delegate]("staking/MsgDelegate"),
	KindUndelegate:                   variant[Undelegate]("staking/MsgUndelegate"),
	KindBeginRedelegate:              variant[BeginRedelegate]("staking/MsgBeginRedelegate"),
	KindWithdrawDelegationReward:     variant[WithdrawDelegationReward]("distribution/MsgWithdrawDelegationReward"),
	KindWithdrawValidatorCommission:  variant[WithdrawValidatorCommission]("distribution/MsgWithdrawValidatorCommission"),
	KindModifyWithdrawAddress:        variant[ModifyWithdrawAddress]("distribution/MsgModifyWithdrawAddress"),
	KindUnjail:                       variant[Unjail]("cosmos/MsgUnjail"),
	KindDelegateFeedConsent:          variant[DelegateFeedConsent]("oracle/MsgDelegateFeedConsent"),
	KindExchangeRatePrevote:          variant[ExchangeRatePrevote]("oracle/MsgExchangeRatePrevote"),
	KindExchangeRateVote:             variant[ExchangeRateVote]("oracle/MsgExchangeRateVote"),
	KindAggregateExchangeRatePrevote: variant[AggregateExchangeRatePrevote]("oracle/MsgAggregateExchangeRatePrevote"),
	KindAggregateExchangeRateVote:    variant[AggregateExchangeRateVote]("oracle/MsgAggregateExchangeRateVote"),
	KindDeposit:                      variant[Deposit]("gov/MsgDeposit"),
	KindVote:                         variant[Vote]("gov/MsgVote"),
}

var typeToKind = func() map[string]Kind {
	m := make(map[string]Kind, len(kinds))
	for k, info := range kinds {
		m[info.typ] = k
	}
	return m
}()

// Type returns the wire discriminator, e.g. "bank/MsgSend".
func (k Kind) Type() string { return kinds[k].typ }

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.typ
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for k := KindSend; k <= KindVote; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind looks up a wire discriminator.
func ParseKind(typ string) (Kind, error) {
	k, ok := typeToKind[typ]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	return k, nil
}

// Msg is one operation inside a transaction. Only types in this package
// implement it.
type Msg interface {
	Kind() Kind
	// ValidateBasic performs stateless checks on the payload.
	ValidateBasic() error
	isMsg()
}

// wire is the {type, value} shape every message takes on the wire.
type wire struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Marshal encodes m as {"type": ..., "value": ...}.
func Marshal(m Msg) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil", ErrInvalidMsg)
	}
	value, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", m.Kind(), err)
	}
	return json.Marshal(wire{Type: m.Kind().Type(), Value: value})
}

// Decode parses a {"type": ..., "value": ...} document into its variant.
func Decode(data []byte) (Msg, error) {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode msg: %w", err)
	}
	k, err := ParseKind(w.Type)
	if err != nil {
		return nil, err
	}
	m, err := kinds[k].decode(w.Value)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", w.Type, err)
	}
	return m, nil
}

// Msgs is an ordered message list that marshals each entry in wire form.
type Msgs []Msg

// MarshalJSON always emits an array.
func (ms Msgs) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, len(ms))
	for i, m := range ms {
		bz, err := Marshal(m)
		if err != nil {
			return nil, err
		}
		out[i] = bz
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes each entry with Decode.
func (ms *Msgs) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Msgs, len(raw))
	for i, r := range raw {
		m, err := Decode(r)
		if err != nil {
			return fmt.Errorf("msg %d: %w", i, err)
		}
		out[i] = m
	}
	*ms = out
	return nil
}

// ValidateBasic validates every message and rejects an empty list.
func (ms Msgs) ValidateBasic() error {
	if len(ms) == 0 {
		return fmt.Errorf("%w: no messages", ErrInvalidMsg)
	}
	for i, m := range ms {
		if m == nil {
			return fmt.Errorf("%w: msg %d is nil", ErrInvalidMsg, i)
		}
		if err := m.ValidateBasic(); err != nil {
			return fmt.Errorf("msg %d: %w", i, err)
		}
	}
	return nil
}

func invalid(k Kind, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidMsg, k, fmt.Sprintf(format, args...))
}
