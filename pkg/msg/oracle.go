package msg

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/Klingon-tech/terrawallet/pkg/types"
)

// VoteHashSize is the truncated digest length of a prevote hash.
const VoteHashSize = 20

// VoteHash commits to a single-denom vote:
// hex(SHA256("salt:rate:denom:validator")[:20]).
func VoteHash(salt string, rate types.Dec, denom string, validator types.ValAddress) string {
	return truncatedHash(fmt.Sprintf("%s:%s:%s:%s", salt, rate, denom, validator))
}

// AggregateVoteHash commits to an aggregate vote:
// hex(SHA256("salt:rates:validator")[:20]) where rates is "0.1uusd,1.5ukrw".
func AggregateVoteHash(salt, rates string, validator types.ValAddress) string {
	return truncatedHash(fmt.Sprintf("%s:%s:%s", salt, rates, validator))
}

func truncatedHash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:VoteHashSize])
}

// DelegateFeedConsent lets another account submit oracle votes.
type DelegateFeedConsent struct {
	Operator types.ValAddress `json:"operator"`
	Delegate types.AccAddress `json:"delegate"`
}

func (DelegateFeedConsent) Kind() Kind { return KindDelegateFeedConsent }
func (DelegateFeedConsent) isMsg()     {}

func (m DelegateFeedConsent) ValidateBasic() error {
	if !m.Operator.Validate() {
		return invalid(KindDelegateFeedConsent, "bad operator %q", m.Operator)
	}
	if !m.Delegate.Validate() {
		return invalid(KindDelegateFeedConsent, "bad delegate %q", m.Delegate)
	}
	return nil
}

// ExchangeRatePrevote commits to a single-denom rate.
type ExchangeRatePrevote struct {
	Hash      string           `json:"hash"`
	Denom     string           `json:"denom"`
	Feeder    types.AccAddress `json:"feeder"`
	Validator types.ValAddress `json:"validator"`
}

func (ExchangeRatePrevote) Kind() Kind { return KindExchangeRatePrevote }
func (ExchangeRatePrevote) isMsg()     {}

func (m ExchangeRatePrevote) ValidateBasic() error {
	if err := validateVoteHash(KindExchangeRatePrevote, m.Hash); err != nil {
		return err
	}
	if m.Denom == "" {
		return invalid(KindExchangeRatePrevote, "empty denom")
	}
	return validateFeeder(KindExchangeRatePrevote, m.Feeder, m.Validator)
}

// ExchangeRateVote reveals a single-denom rate.
type ExchangeRateVote struct {
	ExchangeRate types.Dec        `json:"exchange_rate"`
	Salt         string           `json:"salt"`
	Denom        string           `json:"denom"`
	Feeder       types.AccAddress `json:"feeder"`
	Validator    types.ValAddress `json:"validator"`
}

func (ExchangeRateVote) Kind() Kind { return KindExchangeRateVote }
func (ExchangeRateVote) isMsg()     {}

func (m ExchangeRateVote) ValidateBasic() error {
	if m.Salt == "" || len(m.Salt) > 4 {
		return invalid(KindExchangeRateVote, "salt must be 1 to 4 characters")
	}
	if m.Denom == "" {
		return invalid(KindExchangeRateVote, "empty denom")
	}
	if m.ExchangeRate.IsNegative() {
		return invalid(KindExchangeRateVote, "negative exchange_rate")
	}
	return validateFeeder(KindExchangeRateVote, m.Feeder, m.Validator)
}

// AggregateExchangeRatePrevote commits to rates for every whitelisted denom.
type AggregateExchangeRatePrevote struct {
	Hash      string           `json:"hash"`
	Feeder    types.AccAddress `json:"feeder"`
	Validator types.ValAddress `json:"validator"`
}

func (AggregateExchangeRatePrevote) Kind() Kind { return KindAggregateExchangeRatePrevote }
func (AggregateExchangeRatePrevote) isMsg()     {}

func (m AggregateExchangeRatePrevote) ValidateBasic() error {
	if err := validateVoteHash(KindAggregateExchangeRatePrevote, m.Hash); err != nil {
		return err
	}
	return validateFeeder(KindAggregateExchangeRatePrevote, m.Feeder, m.Validator)
}

// AggregateExchangeRateVote reveals the rates committed by the prevote.
type AggregateExchangeRateVote struct {
	Salt          string           `json:"salt"`
	ExchangeRates string           `json:"exchange_rates"`
	Feeder        types.AccAddress `json:"feeder"`
	Validator     types.ValAddress `json:"validator"`
}

func (AggregateExchangeRateVote) Kind() Kind { return KindAggregateExchangeRateVote }
func (AggregateExchangeRateVote) isMsg()     {}

func (m AggregateExchangeRateVote) ValidateBasic() error {
	if m.Salt == "" || len(m.Salt) > 4 {
		return invalid(KindAggregateExchangeRateVote, "salt must be 1 to 4 characters")
	}
	if _, err := types.ParseDecCoins(m.ExchangeRates); err != nil || m.ExchangeRates == "" {
		return invalid(KindAggregateExchangeRateVote, "bad exchange_rates %q", m.ExchangeRates)
	}
	return validateFeeder(KindAggregateExchangeRateVote, m.Feeder, m.Validator)
}

func validateVoteHash(k Kind, h string) error {
	b, err := hex.DecodeString(h)
	if err != nil || len(b) != VoteHashSize {
		return invalid(k, "hash must be %d hex-encoded bytes", VoteHashSize)
	}
	return nil
}

func validateFeeder(k Kind, feeder types.AccAddress, val types.ValAddress) error {
	if !feeder.Validate() {
		return invalid(k, "bad feeder %q", feeder)
	}
	if !val.Validate() {
		return invalid(k, "bad validator %q", val)
	}
	return nil
}
