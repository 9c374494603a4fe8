package tx

import (
	"github.com/shopspring/decimal"

	"github.com/Klingon-tech/terrawallet/pkg/types"
)

// AdjustGas multiplies a simulated gas figure by adjustment and rounds up.
func AdjustGas(estimated uint64, adjustment decimal.Decimal) uint64 {
	if adjustment.LessThanOrEqual(decimal.Zero) {
		return estimated
	}
	return uint64(decimal.NewFromUint64(estimated).Mul(adjustment).Ceil().IntPart())
}

// FeeForGas prices gas at every given gas price, rounding each amount up.
// Zero prices are skipped.
func FeeForGas(gas uint64, prices types.DecCoins) types.Coins {
	g := decimal.NewFromUint64(gas)
	out := make([]types.Coin, 0, len(prices))
	for _, p := range prices {
		amt := g.Mul(p.Amount.Decimal).Ceil()
		if !amt.IsPositive() {
			continue
		}
		out = append(out, types.Coin{Denom: p.Denom, Amount: types.NewIntFromBigInt(amt.BigInt())})
	}
	return types.NewCoins(out...)
}

// EstimatedFee turns a simulated gas figure into a StdFee.
func EstimatedFee(estimated uint64, adjustment decimal.Decimal, prices types.DecCoins) StdFee {
	gas := AdjustGas(estimated, adjustment)
	return StdFee{Amount: FeeForGas(gas, prices), Gas: gas}
}
