package msg

import "github.com/Klingon-tech/terrawallet/pkg/types"

// VoteOption is a governance vote choice.
type VoteOption string

// Vote options as they appear on the wire.
const (
	OptionYes        VoteOption = "Yes"
	OptionAbstain    VoteOption = "Abstain"
	OptionNo         VoteOption = "No"
	OptionNoWithVeto VoteOption = "NoWithVeto"
)

// Valid reports whether o is one of the four options.
func (o VoteOption) Valid() bool {
	switch o {
	case OptionYes, OptionAbstain, OptionNo, OptionNoWithVeto:
		return true
	}
	return false
}

// Deposit adds coins to a proposal's deposit.
type Deposit struct {
	ProposalID uint64           `json:"proposal_id,string"`
	Depositor  types.AccAddress `json:"depositor"`
	Amount     types.Coins      `json:"amount"`
}

func (Deposit) Kind() Kind { return KindDeposit }
func (Deposit) isMsg()     {}

func (m Deposit) ValidateBasic() error {
	if !m.Depositor.Validate() {
		return invalid(KindDeposit, "bad depositor %q", m.Depositor)
	}
	if len(m.Amount) == 0 {
		return invalid(KindDeposit, "empty amount")
	}
	if err := m.Amount.Validate(); err != nil {
		return invalid(KindDeposit, "%v", err)
	}
	return nil
}

// Vote casts a governance vote.
type Vote struct {
	ProposalID uint64           `json:"proposal_id,string"`
	Voter      types.AccAddress `json:"voter"`
	Option     VoteOption       `json:"option"`
}

func (Vote) Kind() Kind { return KindVote }
func (Vote) isMsg()     {}

func (m Vote) ValidateBasic() error {
	if !m.Voter.Validate() {
		return invalid(KindVote, "bad voter %q", m.Voter)
	}
	if !m.Option.Valid() {
		return invalid(KindVote, "bad option %q", m.Option)
	}
	return nil
}
