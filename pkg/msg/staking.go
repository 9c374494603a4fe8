package msg

import "github.com/Klingon-tech/terrawallet/pkg/types"

// Description is the public profile of a validator.
type Description struct {
	Moniker         string `json:"moniker"`
	Identity        string `json:"identity"`
	Website         string `json:"website"`
	SecurityContact string `json:"security_contact"`
	Details         string `json:"details"`
}

// CommissionRates are the commission parameters set at creation.
type CommissionRates struct {
	Rate          types.Dec `json:"rate"`
	MaxRate       types.Dec `json:"max_rate"`
	MaxChangeRate types.Dec `json:"max_change_rate"`
}

// CreateValidator registers a validator with a self-delegation.
type CreateValidator struct {
	Description       Description         `json:"description"`
	Commission        CommissionRates     `json:"commission"`
	MinSelfDelegation types.Int           `json:"min_self_delegation"`
	DelegatorAddress  types.AccAddress    `json:"delegator_address"`
	ValidatorAddress  types.ValAddress    `json:"validator_address"`
	PubKey            types.ValConsPubKey `json:"pubkey"`
	Value             types.Coin          `json:"value"`
}

func (CreateValidator) Kind() Kind { return KindCreateValidator }
func (CreateValidator) isMsg()     {}

func (m CreateValidator) ValidateBasic() error {
	if !m.DelegatorAddress.Validate() {
		return invalid(KindCreateValidator, "bad delegator_address %q", m.DelegatorAddress)
	}
	if !m.ValidatorAddress.Validate() {
		return invalid(KindCreateValidator, "bad validator_address %q", m.ValidatorAddress)
	}
	if acc, err := m.ValidatorAddress.ToAccAddress(); err != nil || acc != m.DelegatorAddress {
		return invalid(KindCreateValidator, "validator address does not belong to the delegator")
	}
	if !m.PubKey.Validate() {
		return invalid(KindCreateValidator, "bad pubkey %q", m.PubKey)
	}
	if m.Description.Moniker == "" {
		return invalid(KindCreateValidator, "empty moniker")
	}
	if err := m.Value.Validate(); err != nil {
		return invalid(KindCreateValidator, "%v", err)
	}
	if !m.MinSelfDelegation.IsPositive() {
		return invalid(KindCreateValidator, "min_self_delegation must be positive")
	}
	if m.Value.Amount.Decimal().LessThan(m.MinSelfDelegation.Decimal()) {
		return invalid(KindCreateValidator, "self delegation below min_self_delegation")
	}
	c := m.Commission
	if c.Rate.IsNegative() || c.MaxRate.GreaterThan(types.NewDecFromInt(1).Decimal) ||
		c.Rate.GreaterThan(c.MaxRate.Decimal) || c.MaxChangeRate.GreaterThan(c.MaxRate.Decimal) {
		return invalid(KindCreateValidator, "inconsistent commission rates")
	}
	return nil
}

// EditValidator updates a validator's profile. Nil fields are left unchanged.
type EditValidator struct {
	Description       Description      `json:"description"`
	ValidatorAddress  types.ValAddress `json:"address"`
	CommissionRate    *types.Dec       `json:"commission_rate"`
	MinSelfDelegation *types.Int       `json:"min_self_delegation"`
}

func (EditValidator) Kind() Kind { return KindEditValidator }
func (EditValidator) isMsg()     {}

func (m EditValidator) ValidateBasic() error {
	if !m.ValidatorAddress.Validate() {
		return invalid(KindEditValidator, "bad address %q", m.ValidatorAddress)
	}
	if m.CommissionRate != nil && (m.CommissionRate.IsNegative() || m.CommissionRate.GreaterThan(types.NewDecFromInt(1).Decimal)) {
		return invalid(KindEditValidator, "commission_rate out of range")
	}
	if m.MinSelfDelegation != nil && !m.MinSelfDelegation.IsPositive() {
		return invalid(KindEditValidator, "min_self_delegation must be positive")
	}
	return nil
}

// Delegate bonds coins to a validator.
type Delegate struct {
	DelegatorAddress types.AccAddress `json:"delegator_address"`
	ValidatorAddress types.ValAddress `json:"validator_address"`
	Amount           types.Coin       `json:"amount"`
}

func (Delegate) Kind() Kind { return KindDelegate }
func (Delegate) isMsg()     {}

func (m Delegate) ValidateBasic() error {
	return validateDelegation(KindDelegate, m.DelegatorAddress, m.ValidatorAddress, m.Amount)
}

// Undelegate starts unbonding from a validator.
type Undelegate struct {
	DelegatorAddress types.AccAddress `json:"delegator_address"`
	ValidatorAddress types.ValAddress `json:"validator_address"`
	Amount           types.Coin       `json:"amount"`
}

func (Undelegate) Kind() Kind { return KindUndelegate }
func (Undelegate) isMsg()     {}

func (m Undelegate) ValidateBasic() error {
	return validateDelegation(KindUndelegate, m.DelegatorAddress, m.ValidatorAddress, m.Amount)
}

// BeginRedelegate moves a delegation between validators.
type BeginRedelegate struct {
	DelegatorAddress    types.AccAddress `json:"delegator_address"`
	ValidatorSrcAddress types.ValAddress `json:"validator_src_address"`
	ValidatorDstAddress types.ValAddress `json:"validator_dst_address"`
	Amount              types.Coin       `json:"amount"`
}

func (BeginRedelegate) Kind() Kind { return KindBeginRedelegate }
func (BeginRedelegate) isMsg()     {}

func (m BeginRedelegate) ValidateBasic() error {
	if err := validateDelegation(KindBeginRedelegate, m.DelegatorAddress, m.ValidatorSrcAddress, m.Amount); err != nil {
		return err
	}
	if !m.ValidatorDstAddress.Validate() {
		return invalid(KindBeginRedelegate, "bad validator_dst_address %q", m.ValidatorDstAddress)
	}
	if m.ValidatorSrcAddress == m.ValidatorDstAddress {
		return invalid(KindBeginRedelegate, "source and destination validator are the same")
	}
	return nil
}

func validateDelegation(k Kind, del types.AccAddress, val types.ValAddress, amt types.Coin) error {
	if !del.Validate() {
		return invalid(k, "bad delegator_address %q", del)
	}
	if !val.Validate() {
		return invalid(k, "bad validator_address %q", val)
	}
	if err := amt.Validate(); err != nil {
		return invalid(k, "%v", err)
	}
	return nil
}
