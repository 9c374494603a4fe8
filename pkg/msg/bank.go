package msg

import "github.com/Klingon-tech/terrawallet/pkg/types"

// Send moves coins between two accounts.
type Send struct {
	FromAddress types.AccAddress `json:"from_address"`
	ToAddress   types.AccAddress `json:"to_address"`
	Amount      types.Coins      `json:"amount"`
}

// NewSend builds a Send with sorted coins.
func NewSend(from, to types.AccAddress, amount ...types.Coin) Send {
	return Send{FromAddress: from, ToAddress: to, Amount: types.NewCoins(amount...)}
}

func (Send) Kind() Kind { return KindSend }
func (Send) isMsg()     {}

func (m Send) ValidateBasic() error {
	if !m.FromAddress.Validate() {
		return invalid(KindSend, "bad from_address %q", m.FromAddress)
	}
	if !m.ToAddress.Validate() {
		return invalid(KindSend, "bad to_address %q", m.ToAddress)
	}
	if len(m.Amount) == 0 {
		return invalid(KindSend, "empty amount")
	}
	if err := m.Amount.Validate(); err != nil {
		return invalid(KindSend, "%v", err)
	}
	return nil
}

// Input is one funding side of a MultiSend.
type Input struct {
	Address types.AccAddress `json:"address"`
	Coins   types.Coins      `json:"coins"`
}

// Output is one receiving side of a MultiSend.
type Output struct {
	Address types.AccAddress `json:"address"`
	Coins   types.Coins      `json:"coins"`
}

// MultiSend moves coins from several inputs to several outputs. Input and
// output totals must match per denom.
type MultiSend struct {
	Inputs  []Input  `json:"inputs"`
	Outputs []Output `json:"outputs"`
}

func (MultiSend) Kind() Kind { return KindMultiSend }
func (MultiSend) isMsg()     {}

func (m MultiSend) ValidateBasic() error {
	if len(m.Inputs) == 0 || len(m.Outputs) == 0 {
		return invalid(KindMultiSend, "needs at least one input and one output")
	}
	totals := make(map[string]types.Int)
	for _, in := range m.Inputs {
		if !in.Address.Validate() {
			return invalid(KindMultiSend, "bad input address %q", in.Address)
		}
		if err := in.Coins.Validate(); err != nil {
			return invalid(KindMultiSend, "%v", err)
		}
		for _, c := range in.Coins {
			totals[c.Denom] = totals[c.Denom].Add(c.Amount)
		}
	}
	for _, out := range m.Outputs {
		if !out.Address.Validate() {
			return invalid(KindMultiSend, "bad output address %q", out.Address)
		}
		if err := out.Coins.Validate(); err != nil {
			return invalid(KindMultiSend, "%v", err)
		}
		for _, c := range out.Coins {
			totals[c.Denom] = totals[c.Denom].Sub(c.Amount)
		}
	}
	for denom, diff := range totals {
		if !diff.IsZero() {
			return invalid(KindMultiSend, "inputs and outputs differ for %s", denom)
		}
	}
	return nil
}
