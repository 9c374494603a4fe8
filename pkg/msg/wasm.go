package msg

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/Klingon-tech/terrawallet/pkg/types"
)

// ContractMsg is the JSON payload handed to a contract. On the wire it is
// the base64 of the compact JSON text, the amino form of a byte slice.
type ContractMsg []byte

// MarshalJSON encodes the compacted payload as a base64 string.
func (m ContractMsg) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	payload := []byte(m)
	var buf bytes.Buffer
	if err := json.Compact(&buf, m); err == nil {
		payload = buf.Bytes()
	}
	return json.Marshal(base64.StdEncoding.EncodeToString(payload))
}

// UnmarshalJSON decodes the base64 string form.
func (m *ContractMsg) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("contract message: %w", err)
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("contract message: %w", err)
	}
	*m = b
	return nil
}

// StoreCode uploads a wasm binary.
type StoreCode struct {
	Sender       types.AccAddress `json:"sender"`
	WASMByteCode []byte           `json:"wasm_byte_code"`
}

func (StoreCode) Kind() Kind { return KindStoreCode }
func (StoreCode) isMsg()     {}

func (m StoreCode) ValidateBasic() error {
	if !m.Sender.Validate() {
		return invalid(KindStoreCode, "bad sender %q", m.Sender)
	}
	if len(m.WASMByteCode) == 0 {
		return invalid(KindStoreCode, "empty wasm_byte_code")
	}
	return nil
}

// InstantiateContract creates a contract from stored code.
type InstantiateContract struct {
	Owner      types.AccAddress `json:"owner"`
	CodeID     uint64           `json:"code_id,string"`
	InitMsg    ContractMsg      `json:"init_msg"`
	InitCoins  types.Coins      `json:"init_coins"`
	Migratable bool             `json:"migratable"`
}

func (InstantiateContract) Kind() Kind { return KindInstantiateContract }
func (InstantiateContract) isMsg()     {}

func (m InstantiateContract) ValidateBasic() error {
	if !m.Owner.Validate() {
		return invalid(KindInstantiateContract, "bad owner %q", m.Owner)
	}
	if m.CodeID == 0 {
		return invalid(KindInstantiateContract, "code_id must be set")
	}
	if err := validateContractMsg(KindInstantiateContract, m.InitMsg); err != nil {
		return err
	}
	return validateOptionalCoins(KindInstantiateContract, m.InitCoins)
}

// ExecuteContract calls a contract.
type ExecuteContract struct {
	Sender     types.AccAddress `json:"sender"`
	Contract   types.AccAddress `json:"contract"`
	ExecuteMsg ContractMsg      `json:"execute_msg"`
	Coins      types.Coins      `json:"coins"`
}

func (ExecuteContract) Kind() Kind { return KindExecuteContract }
func (ExecuteContract) isMsg()     {}

func (m ExecuteContract) ValidateBasic() error {
	if !m.Sender.Validate() {
		return invalid(KindExecuteContract, "bad sender %q", m.Sender)
	}
	if !m.Contract.Validate() {
		return invalid(KindExecuteContract, "bad contract %q", m.Contract)
	}
	if err := validateContractMsg(KindExecuteContract, m.ExecuteMsg); err != nil {
		return err
	}
	return validateOptionalCoins(KindExecuteContract, m.Coins)
}

// MigrateContract moves a migratable contract to new code.
type MigrateContract struct {
	Owner      types.AccAddress `json:"owner"`
	Contract   types.AccAddress `json:"contract"`
	NewCodeID  uint64           `json:"new_code_id,string"`
	MigrateMsg ContractMsg      `json:"migrate_msg"`
}

func (MigrateContract) Kind() Kind { return KindMigrateContract }
func (MigrateContract) isMsg()     {}

func (m MigrateContract) ValidateBasic() error {
	if !m.Owner.Validate() {
		return invalid(KindMigrateContract, "bad owner %q", m.Owner)
	}
	if !m.Contract.Validate() {
		return invalid(KindMigrateContract, "bad contract %q", m.Contract)
	}
	if m.NewCodeID == 0 {
		return invalid(KindMigrateContract, "new_code_id must be set")
	}
	return validateContractMsg(KindMigrateContract, m.MigrateMsg)
}

// UpdateContractOwner transfers contract ownership.
type UpdateContractOwner struct {
	Owner    types.AccAddress `json:"owner"`
	NewOwner types.AccAddress `json:"new_owner"`
	Contract types.AccAddress `json:"contract"`
}

func (UpdateContractOwner) Kind() Kind { return KindUpdateContractOwner }
func (UpdateContractOwner) isMsg()     {}

func (m UpdateContractOwner) ValidateBasic() error {
	for _, a := range []types.AccAddress{m.Owner, m.NewOwner, m.Contract} {
		if !a.Validate() {
			return invalid(KindUpdateContractOwner, "bad address %q", a)
		}
	}
	return nil
}

func validateContractMsg(k Kind, raw ContractMsg) error {
	if len(raw) == 0 || !json.Valid(raw) {
		return invalid(k, "contract message must be valid JSON")
	}
	return nil
}

func validateOptionalCoins(k Kind, cs types.Coins) error {
	if len(cs) == 0 {
		return nil
	}
	if err := cs.Validate(); err != nil {
		return invalid(k, "%v", err)
	}
	return nil
}
