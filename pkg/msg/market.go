package msg

import "github.com/Klingon-tech/terrawallet/pkg/types"

// Swap exchanges OfferCoin for AskDenom at the market rate.
type Swap struct {
	Trader    types.AccAddress `json:"trader"`
	OfferCoin types.Coin       `json:"offer_coin"`
	AskDenom  string           `json:"ask_denom"`
}

func (Swap) Kind() Kind { return KindSwap }
func (Swap) isMsg()     {}

func (m Swap) ValidateBasic() error {
	if !m.Trader.Validate() {
		return invalid(KindSwap, "bad trader %q", m.Trader)
	}
	return validateSwap(KindSwap, m.OfferCoin, m.AskDenom)
}

// SwapSend swaps and delivers the proceeds to another account.
type SwapSend struct {
	FromAddress types.AccAddress `json:"from_address"`
	ToAddress   types.AccAddress `json:"to_address"`
	OfferCoin   types.Coin       `json:"offer_coin"`
	AskDenom    string           `json:"ask_denom"`
}

func (SwapSend) Kind() Kind { return KindSwapSend }
func (SwapSend) isMsg()     {}

func (m SwapSend) ValidateBasic() error {
	if !m.FromAddress.Validate() {
		return invalid(KindSwapSend, "bad from_address %q", m.FromAddress)
	}
	if !m.ToAddress.Validate() {
		return invalid(KindSwapSend, "bad to_address %q", m.ToAddress)
	}
	return validateSwap(KindSwapSend, m.OfferCoin, m.AskDenom)
}

func validateSwap(k Kind, offer types.Coin, ask string) error {
	if err := offer.Validate(); err != nil {
		return invalid(k, "%v", err)
	}
	if ask == "" {
		return invalid(k, "empty ask_denom")
	}
	if offer.Denom == ask {
		return invalid(k, "offer and ask denom are both %s", ask)
	}
	return nil
}
