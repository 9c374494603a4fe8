package types

import (
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// DecPrecision is the number of fractional digits carried by Dec on the wire.
const DecPrecision = 18

// Int is an arbitrary-precision integer serialized as a decimal string.
type Int struct {
	i *big.Int
}

// NewInt returns an Int from an int64.
func NewInt(n int64) Int {
	return Int{i: big.NewInt(n)}
}

// NewIntFromUint64 returns an Int from a uint64.
func NewIntFromUint64(n uint64) Int {
	return Int{i: new(big.Int).SetUint64(n)}
}

// NewIntFromBigInt copies b.
func NewIntFromBigInt(b *big.Int) Int {
	if b == nil {
		return ZeroInt()
	}
	return Int{i: new(big.Int).Set(b)}
}

// ZeroInt returns 0.
func ZeroInt() Int { return NewInt(0) }

// ParseInt parses a base-10 integer string.
func ParseInt(s string) (Int, error) {
	b, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return Int{}, fmt.Errorf("invalid integer %q", s)
	}
	return Int{i: b}, nil
}

func (x Int) big() *big.Int {
	if x.i == nil {
		return new(big.Int)
	}
	return x.i
}

// BigInt returns a copy of the underlying value.
func (x Int) BigInt() *big.Int { return new(big.Int).Set(x.big()) }

// IsZero reports x == 0.
func (x Int) IsZero() bool { return x.big().Sign() == 0 }

// IsPositive reports x > 0.
func (x Int) IsPositive() bool { return x.big().Sign() > 0 }

// Add returns x + y.
func (x Int) Add(y Int) Int { return Int{i: new(big.Int).Add(x.big(), y.big())} }

// Sub returns x - y.
func (x Int) Sub(y Int) Int { return Int{i: new(big.Int).Sub(x.big(), y.big())} }

// Equal reports x == y.
func (x Int) Equal(y Int) bool { return x.big().Cmp(y.big()) == 0 }

// GT reports x > y.
func (x Int) GT(y Int) bool { return x.big().Cmp(y.big()) > 0 }

// Decimal returns x as a shopspring decimal.
func (x Int) Decimal() decimal.Decimal { return decimal.NewFromBigInt(x.big(), 0) }

func (x Int) String() string { return x.big().String() }

// MarshalJSON encodes the integer as a quoted decimal string.
func (x Int) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.String())
}

// UnmarshalJSON accepts a quoted decimal string.
func (x *Int) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("int must be a string: %w", err)
	}
	parsed, err := ParseInt(s)
	if err != nil {
		return err
	}
	*x = parsed
	return nil
}

// Dec is a fixed-point decimal serialized as a string with 18 fractional
// digits ("0.100000000000000000").
type Dec struct {
	decimal.Decimal
}

// NewDec wraps d.
func NewDec(d decimal.Decimal) Dec { return Dec{Decimal: d} }

// NewDecFromInt returns an integral Dec.
func NewDecFromInt(n int64) Dec { return Dec{Decimal: decimal.NewFromInt(n)} }

// ParseDec parses a decimal string.
func ParseDec(s string) (Dec, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Dec{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return Dec{Decimal: d}, nil
}

// MustParseDec is ParseDec for constants.
func MustParseDec(s string) Dec {
	d, err := ParseDec(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Dec) String() string { return d.StringFixed(DecPrecision) }

// MarshalJSON encodes the decimal as a quoted string with 18 fractional digits.
func (d Dec) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a quoted decimal string.
func (d *Dec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("dec must be a string: %w", err)
	}
	parsed, err := ParseDec(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Coin is an integer amount of a single denomination.
type Coin struct {
	Denom  string `json:"denom"`
	Amount Int    `json:"amount"`
}

// NewCoin builds a coin from an int64 amount.
func NewCoin(denom string, amount int64) Coin {
	return Coin{Denom: denom, Amount: NewInt(amount)}
}

func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

var denomRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9/]{2,127}$`)

// Validate checks the denom format and that the amount is positive.
func (c Coin) Validate() error {
	if !denomRe.MatchString(c.Denom) {
		return fmt.Errorf("invalid denom %q", c.Denom)
	}
	if !c.Amount.IsPositive() {
		return fmt.Errorf("coin %s: amount must be positive", c)
	}
	return nil
}

// DecCoin is a fractional amount of a single denomination.
type DecCoin struct {
	Denom  string `json:"denom"`
	Amount Dec    `json:"amount"`
}

func (c DecCoin) String() string {
	return c.Amount.String() + c.Denom
}

// Coins is a set of coins sorted by denom.
type Coins []Coin

// NewCoins sorts the coins by denom.
func NewCoins(coins ...Coin) Coins {
	out := make(Coins, len(coins))
	copy(out, coins)
	sort.Slice(out, func(i, j int) bool { return out[i].Denom < out[j].Denom })
	return out
}

// AmountOf returns the amount of denom, or zero.
func (cs Coins) AmountOf(denom string) Int {
	for _, c := range cs {
		if c.Denom == denom {
			return c.Amount
		}
	}
	return ZeroInt()
}

// Validate checks every coin and that denoms are sorted without duplicates.
func (cs Coins) Validate() error {
	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
		if i > 0 && cs[i-1].Denom >= c.Denom {
			return fmt.Errorf("coins not sorted or duplicated at %s", c.Denom)
		}
	}
	return nil
}

func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// MarshalJSON always emits an array; an empty set is [] rather than null.
func (cs Coins) MarshalJSON() ([]byte, error) {
	if cs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Coin(cs))
}

// DecCoins is a set of fractional coins.
type DecCoins []DecCoin

// MarshalJSON always emits an array.
func (cs DecCoins) MarshalJSON() ([]byte, error) {
	if cs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]DecCoin(cs))
}

// AmountOf returns the amount of denom, or zero.
func (cs DecCoins) AmountOf(denom string) Dec {
	for _, c := range cs {
		if c.Denom == denom {
			return c.Amount
		}
	}
	return Dec{}
}

var coinRe = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)([a-zA-Z][a-zA-Z0-9/]{2,127})$`)

// ParseCoin parses "1000uluna".
func ParseCoin(s string) (Coin, error) {
	m := coinRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil || strings.Contains(m[1], ".") {
		return Coin{}, fmt.Errorf("invalid coin %q", s)
	}
	amt, err := ParseInt(m[1])
	if err != nil {
		return Coin{}, err
	}
	return Coin{Denom: m[2], Amount: amt}, nil
}

// ParseCoins parses "1000uluna,50uusd".
func ParseCoins(s string) (Coins, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Coins{}, nil
	}
	var out []Coin
	for _, part := range strings.Split(s, ",") {
		c, err := ParseCoin(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return NewCoins(out...), nil
}

// ParseDecCoins parses "0.15uluna,0.015uusd".
func ParseDecCoins(s string) (DecCoins, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DecCoins{}, nil
	}
	var out DecCoins
	for _, part := range strings.Split(s, ",") {
		m := coinRe.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			return nil, fmt.Errorf("invalid dec coin %q", part)
		}
		d, err := ParseDec(m[1])
		if err != nil {
			return nil, err
		}
		out = append(out, DecCoin{Denom: m[2], Amount: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Denom < out[j].Denom })
	return out, nil
}
