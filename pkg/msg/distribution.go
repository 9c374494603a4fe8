package msg

import "github.com/Klingon-tech/terrawallet/pkg/types"

// WithdrawDelegationReward claims staking rewards from one validator.
type WithdrawDelegationReward struct {
	DelegatorAddress types.AccAddress `json:"delegator_address"`
	ValidatorAddress types.ValAddress `json:"validator_address"`
}

func (WithdrawDelegationReward) Kind() Kind { return KindWithdrawDelegationReward }
func (WithdrawDelegationReward) isMsg()     {}

func (m WithdrawDelegationReward) ValidateBasic() error {
	if !m.DelegatorAddress.Validate() {
		return invalid(KindWithdrawDelegationReward, "bad delegator_address %q", m.DelegatorAddress)
	}
	if !m.ValidatorAddress.Validate() {
		return invalid(KindWithdrawDelegationReward, "bad validator_address %q", m.ValidatorAddress)
	}
	return nil
}

// WithdrawValidatorCommission claims a validator's accumulated commission.
type WithdrawValidatorCommission struct {
	ValidatorAddress types.ValAddress `json:"validator_address"`
}

func (WithdrawValidatorCommission) Kind() Kind { return KindWithdrawValidatorCommission }
func (WithdrawValidatorCommission) isMsg()     {}

func (m WithdrawValidatorCommission) ValidateBasic() error {
	if !m.ValidatorAddress.Validate() {
		return invalid(KindWithdrawValidatorCommission, "bad validator_address %q", m.ValidatorAddress)
	}
	return nil
}

// ModifyWithdrawAddress changes where rewards are paid.
type ModifyWithdrawAddress struct {
	DelegatorAddress types.AccAddress `json:"delegator_address"`
	WithdrawAddress  types.AccAddress `json:"withdraw_address"`
}

func (ModifyWithdrawAddress) Kind() Kind { return KindModifyWithdrawAddress }
func (ModifyWithdrawAddress) isMsg()     {}

func (m ModifyWithdrawAddress) ValidateBasic() error {
	if !m.DelegatorAddress.Validate() {
		return invalid(KindModifyWithdrawAddress, "bad delegator_address %q", m.DelegatorAddress)
	}
	if !m.WithdrawAddress.Validate() {
		return invalid(KindModifyWithdrawAddress, "bad withdraw_address %q", m.WithdrawAddress)
	}
	return nil
}

// Unjail returns a jailed validator to the active set.
type Unjail struct {
	ValidatorAddress types.ValAddress `json:"address"`
}

func (Unjail) Kind() Kind { return KindUnjail }
func (Unjail) isMsg()     {}

func (m Unjail) ValidateBasic() error {
	if !m.ValidatorAddress.Validate() {
		return invalid(KindUnjail, "bad address %q", m.ValidatorAddress)
	}
	return nil
}
