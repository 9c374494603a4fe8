package gateway

import (
	"encoding/json"

	"github.com/Klingon-tech/terrawallet/pkg/tx"
	"github.com/Klingon-tech/terrawallet/pkg/types"
)

// Account is the auth state of an address.
type Account struct {
	Address       types.AccAddress `json:"address"`
	Coins         types.Coins      `json:"coins"`
	PublicKey     *tx.PubKey       `json:"public_key"`
	AccountNumber uint64           `json:"account_number,string"`
	Sequence      uint64           `json:"sequence,string"`
}

// accountEnvelope is the amino {type, value} wrapper. Vesting accounts nest
// the base account one or two levels down.
type accountEnvelope struct {
	Type  string `json:"type"`
	Value struct {
		Account
		BaseVestingAccount *struct {
			BaseAccount *Account `json:"BaseAccount"`
		} `json:"BaseVestingAccount"`
	} `json:"value"`
}

func (e accountEnvelope) account() Account {
	if e.Value.Address == "" && e.Value.BaseVestingAccount != nil && e.Value.BaseVestingAccount.BaseAccount != nil {
		return *e.Value.BaseVestingAccount.BaseAccount
	}
	return e.Value.Account
}

// Description is a validator's public profile.
type Description struct {
	Moniker         string `json:"moniker"`
	Identity        string `json:"identity"`
	Website         string `json:"website"`
	SecurityContact string `json:"security_contact"`
	Details         string `json:"details"`
}

// CommissionRates are a validator's current commission parameters.
type CommissionRates struct {
	Rate          types.Dec `json:"rate"`
	MaxRate       types.Dec `json:"max_rate"`
	MaxChangeRate types.Dec `json:"max_change_rate"`
}

// Commission is the commission section of a validator.
type Commission struct {
	CommissionRates CommissionRates `json:"commission_rates"`
	UpdateTime      types.Time      `json:"update_time"`
}

// Validator is a staking validator as reported by the gateway.
type Validator struct {
	OperatorAddress   types.ValAddress    `json:"operator_address"`
	ConsensusPubKey   types.ValConsPubKey `json:"consensus_pubkey"`
	Jailed            bool                `json:"jailed"`
	Status            int                 `json:"status"`
	Tokens            types.Int           `json:"tokens"`
	DelegatorShares   types.Dec           `json:"delegator_shares"`
	Description       Description         `json:"description"`
	UnbondingHeight   int64               `json:"unbonding_height,string"`
	UnbondingTime     types.Time          `json:"unbonding_time"`
	Commission        Commission          `json:"commission"`
	MinSelfDelegation types.Int           `json:"min_self_delegation"`
}

// NodeInfo describes the node behind the gateway.
type NodeInfo struct {
	NodeInfo struct {
		ID      string `json:"id"`
		Network string `json:"network"`
		Version string `json:"version"`
		Moniker string `json:"moniker"`
	} `json:"node_info"`
	ApplicationVersion struct {
		Name      string `json:"name"`
		Version   string `json:"version"`
		GitCommit string `json:"git_commit"`
	} `json:"application_version"`
}

// ChainID returns the network the node is on.
func (n NodeInfo) ChainID() string { return n.NodeInfo.Network }

// Attribute is one key/value pair of an event.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is a typed list of attributes emitted while executing a message.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// MsgLog is the execution log of one message.
type MsgLog struct {
	MsgIndex int     `json:"msg_index"`
	Log      string  `json:"log"`
	Events   []Event `json:"events"`
}

// TxInfo is a transaction result: the confirmation record for a lookup by
// hash, or the reply to a broadcast. Code is zero on success.
type TxInfo struct {
	Height    int64           `json:"height,string"`
	TxHash    string          `json:"txhash"`
	Code      uint32          `json:"code,omitempty"`
	Codespace string          `json:"codespace,omitempty"`
	RawLog    string          `json:"raw_log"`
	Logs      []MsgLog        `json:"logs"`
	GasWanted int64           `json:"gas_wanted,string"`
	GasUsed   int64           `json:"gas_used,string"`
	Timestamp types.Time      `json:"timestamp"`
	Tx        json.RawMessage `json:"tx,omitempty"`
}

// Failed reports a non-zero result code.
func (t TxInfo) Failed() bool { return t.Code != 0 }

// EstimateFeeRequest is the body of POST /txs/estimate_fee.
type EstimateFeeRequest struct {
	Tx            tx.StdTx       `json:"tx"`
	GasPrices     types.DecCoins `json:"gas_prices"`
	GasAdjustment string         `json:"gas_adjustment"`
}

// EstimateFeeResult is the simulated fee.
type EstimateFeeResult struct {
	Fees types.Coins `json:"fees"`
	Gas  uint64      `json:"gas,string"`
}
