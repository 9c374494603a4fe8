package msg

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Klingon-tech/terrawallet/pkg/types"
)

const (
	testAcc = types.AccAddress("terra1jnzv225hwl3uxc5wtnlgr8mwy6nlt0vztv3qqm")
	testVal = types.ValAddress("terravaloper1jnzv225hwl3uxc5wtnlgr8mwy6nlt0vztraasg")
)

var otherAcc = types.RawAddress{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}.AccAddress()
var otherVal = types.RawAddress{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}.ValAddress()

func TestKind_DispatchTable(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, k := range Kinds() {
		typ := k.Type()
		require.NotEmpty(t, typ, "kind %d has no discriminator", k)
		assert.False(t, seen[typ], "duplicate discriminator %s", typ)
		seen[typ] = true

		back, err := ParseKind(typ)
		require.NoError(t, err)
		assert.Equal(t, k, back)
	}
	assert.Len(t, seen, 25)

	_, err := ParseKind("bank/MsgBurn")
	assert.True(t, errors.Is(err, ErrUnknownType))
	assert.Equal(t, "Kind(200)", Kind(200).String())
}

func TestMarshal_Send(t *testing.T) {
	t.Parallel()

	m := NewSend(testAcc, otherAcc, types.NewCoin("uusd", 5), types.NewCoin("uluna", 1000))
	bz, err := Marshal(m)
	require.NoError(t, err)

	want := `{"type":"bank/MsgSend","value":{"from_address":"` + string(testAcc) +
		`","to_address":"` + string(otherAcc) +
		`","amount":[{"denom":"uluna","amount":"1000"},{"denom":"uusd","amount":"5"}]}}`
	assert.Equal(t, want, string(bz))
}

func TestMarshal_NumbersAreStrings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		msg  Msg
		key  string
		want string
	}{
		{"code id", InstantiateContract{Owner: testAcc, CodeID: 42, InitMsg: ContractMsg(`{}`)}, "code_id", "42"},
		{"new code id", MigrateContract{Owner: testAcc, Contract: otherAcc, NewCodeID: 7, MigrateMsg: ContractMsg(`{}`)}, "new_code_id", "7"},
		{"proposal id", Vote{ProposalID: 18446744073709551615, Voter: testAcc, Option: OptionYes}, "proposal_id", "18446744073709551615"},
		{"exchange rate", ExchangeRateVote{ExchangeRate: types.MustParseDec("8888.5"), Salt: "ab", Denom: "ukrw", Feeder: testAcc, Validator: testVal}, "exchange_rate", "8888.500000000000000000"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			bz, err := json.Marshal(tc.msg)
			require.NoError(t, err)

			var fields map[string]any
			require.NoError(t, json.Unmarshal(bz, &fields))
			assert.Equal(t, tc.want, fields[tc.key])
		})
	}
}

func TestDecode_RoundTripEveryKind(t *testing.T) {
	t.Parallel()

	one := types.NewCoin("uluna", 1)
	rate := types.MustParseDec("0.5")
	minSelf := types.NewInt(1)
	all := []Msg{
		NewSend(testAcc, otherAcc, one),
		MultiSend{Inputs: []Input{{testAcc, types.Coins{one}}}, Outputs: []Output{{otherAcc, types.Coins{one}}}},
		Swap{Trader: testAcc, OfferCoin: one, AskDenom: "uusd"},
		SwapSend{FromAddress: testAcc, ToAddress: otherAcc, OfferCoin: one, AskDenom: "uusd"},
		StoreCode{Sender: testAcc, WASMByteCode: []byte{0, 'a', 's', 'm'}},
		InstantiateContract{Owner: testAcc, CodeID: 3, InitMsg: ContractMsg(`{"count":0}`), InitCoins: types.Coins{one}, Migratable: true},
		ExecuteContract{Sender: testAcc, Contract: otherAcc, ExecuteMsg: ContractMsg(`{"increment":{}}`)},
		MigrateContract{Owner: testAcc, Contract: otherAcc, NewCodeID: 4, MigrateMsg: ContractMsg(`{}`)},
		UpdateContractOwner{Owner: testAcc, NewOwner: otherAcc, Contract: otherAcc},
		CreateValidator{
			Description:       Description{Moniker: "node"},
			Commission:        CommissionRates{Rate: rate, MaxRate: types.MustParseDec("1"), MaxChangeRate: rate},
			MinSelfDelegation: minSelf,
			DelegatorAddress:  testAcc,
			ValidatorAddress:  testVal,
			PubKey:            "terravalconspub1zcjduepqqqqsyqcyq5rqwzqfpg9scrgwpugpzysnzs23v9ccrydpk8qarc0sj8uey7",
			Value:             one,
		},
		EditValidator{Description: Description{Moniker: "renamed"}, ValidatorAddress: testVal, CommissionRate: &rate, MinSelfDelegation: &minSelf},
		Delegate{DelegatorAddress: testAcc, ValidatorAddress: testVal, Amount: one},
		Undelegate{DelegatorAddress: testAcc, ValidatorAddress: testVal, Amount: one},
		BeginRedelegate{DelegatorAddress: testAcc, ValidatorSrcAddress: testVal, ValidatorDstAddress: otherVal, Amount: one},
		WithdrawDelegationReward{DelegatorAddress: testAcc, ValidatorAddress: testVal},
		WithdrawValidatorCommission{ValidatorAddress: testVal},
		ModifyWithdrawAddress{DelegatorAddress: testAcc, WithdrawAddress: otherAcc},
		Unjail{ValidatorAddress: testVal},
		DelegateFeedConsent{Operator: testVal, Delegate: otherAcc},
		ExchangeRatePrevote{Hash: VoteHash("ab", rate, "ukrw", testVal), Denom: "ukrw", Feeder: testAcc, Validator: testVal},
		ExchangeRateVote{ExchangeRate: rate, Salt: "ab", Denom: "ukrw", Feeder: testAcc, Validator: testVal},
		AggregateExchangeRatePrevote{Hash: AggregateVoteHash("ab", "0.5ukrw", testVal), Feeder: testAcc, Validator: testVal},
		AggregateExchangeRateVote{Salt: "ab", ExchangeRates: "0.5ukrw", Feeder: testAcc, Validator: testVal},
		Deposit{ProposalID: 9, Depositor: testAcc, Amount: types.Coins{one}},
		Vote{ProposalID: 9, Voter: testAcc, Option: OptionNoWithVeto},
	}
	require.Len(t, all, len(Kinds()), "every kind needs a sample")

	for _, m := range all {
		require.NoError(t, m.ValidateBasic(), "%s", m.Kind())

		bz, err := Marshal(m)
		require.NoError(t, err)

		back, err := Decode(bz)
		require.NoError(t, err, "%s", m.Kind())
		assert.Equal(t, m.Kind(), back.Kind())

		again, err := Marshal(back)
		require.NoError(t, err)
		assert.JSONEq(t, string(bz), string(again), "%s", m.Kind())
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"type":"bank/MsgBurn","value":{}}`))
	assert.True(t, errors.Is(err, ErrUnknownType))

	_, err = Decode([]byte(`{"type":"wasm/MsgInstantiateContract","value":{"code_id":3}}`))
	assert.Error(t, err, "numeric code_id must be rejected")

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestMsgs_JSON(t *testing.T) {
	t.Parallel()

	ms := Msgs{
		Swap{Trader: testAcc, OfferCoin: types.NewCoin("ukrw", 100), AskDenom: "uluna"},
		Unjail{ValidatorAddress: testVal},
	}
	bz, err := json.Marshal(ms)
	require.NoError(t, err)

	var back Msgs
	require.NoError(t, json.Unmarshal(bz, &back))
	require.Len(t, back, 2)
	assert.Equal(t, ms[0], back[0])
	assert.Equal(t, ms[1], back[1])

	empty, err := json.Marshal(Msgs(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func TestMsgs_ValidateBasic(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.Is(Msgs{}.ValidateBasic(), ErrInvalidMsg))
	assert.True(t, errors.Is(Msgs{nil}.ValidateBasic(), ErrInvalidMsg))
	assert.NoError(t, Msgs{Unjail{ValidatorAddress: testVal}}.ValidateBasic())
}

func TestContractMsg_WireForm(t *testing.T) {
	t.Parallel()

	m := ExecuteContract{Sender: testAcc, Contract: otherAcc, ExecuteMsg: ContractMsg("{ \"increment\": {} }")}
	bz, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(bz), `"execute_msg":"eyJpbmNyZW1lbnQiOnt9fQ=="`)

	var back ExecuteContract
	require.NoError(t, json.Unmarshal(bz, &back))
	assert.Equal(t, `{"increment":{}}`, string(back.ExecuteMsg))
	require.NoError(t, back.ValidateBasic())

	var bad ExecuteContract
	assert.Error(t, json.Unmarshal([]byte(`{"execute_msg":{"increment":{}}}`), &bad))
}

func TestValidateBasic_Rejects(t *testing.T) {
	t.Parallel()

	one := types.NewCoin("uluna", 1)
	cases := []struct {
		name string
		msg  Msg
	}{
		{"send to operator address", Send{FromAddress: testAcc, ToAddress: types.AccAddress(testVal), Amount: types.Coins{one}}},
		{"send nothing", Send{FromAddress: testAcc, ToAddress: otherAcc}},
		{"send zero", NewSend(testAcc, otherAcc, types.NewCoin("uluna", 0))},
		{"multisend unbalanced", MultiSend{Inputs: []Input{{testAcc, types.Coins{types.NewCoin("uluna", 2)}}}, Outputs: []Output{{otherAcc, types.Coins{one}}}}},
		{"swap same denom", Swap{Trader: testAcc, OfferCoin: one, AskDenom: "uluna"}},
		{"execute bad json", ExecuteContract{Sender: testAcc, Contract: otherAcc, ExecuteMsg: ContractMsg(`{`)}},
		{"instantiate no code", InstantiateContract{Owner: testAcc, InitMsg: ContractMsg(`{}`)}},
		{"redelegate same validator", BeginRedelegate{DelegatorAddress: testAcc, ValidatorSrcAddress: testVal, ValidatorDstAddress: testVal, Amount: one}},
		{"delegate to account address", Delegate{DelegatorAddress: testAcc, ValidatorAddress: types.ValAddress(testAcc), Amount: one}},
		{"prevote short hash", ExchangeRatePrevote{Hash: "abcd", Denom: "ukrw", Feeder: testAcc, Validator: testVal}},
		{"vote long salt", ExchangeRateVote{Salt: "12345", Denom: "ukrw", Feeder: testAcc, Validator: testVal}},
		{"aggregate vote bad rates", AggregateExchangeRateVote{Salt: "1", ExchangeRates: "lots", Feeder: testAcc, Validator: testVal}},
		{"gov bad option", Vote{ProposalID: 1, Voter: testAcc, Option: "Maybe"}},
		{"create validator foreign operator", CreateValidator{
			Description: Description{Moniker: "x"}, MinSelfDelegation: types.NewInt(1),
			DelegatorAddress: testAcc, ValidatorAddress: otherVal, Value: one,
			PubKey: "terravalconspub1zcjduepqqqqsyqcyq5rqwzqfpg9scrgwpugpzysnzs23v9ccrydpk8qarc0sj8uey7",
		}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.msg.ValidateBasic()
			assert.True(t, errors.Is(err, ErrInvalidMsg), "got %v", err)
		})
	}
}

func TestVoteHash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "4cb7ee1cc48bb4691699d4db8c0a7f237131c38a",
		VoteHash("1234", types.MustParseDec("1"), "ukrw", testVal))
	assert.Equal(t, "33bc90637a9082aabde3e2d443d58e6dd685bbb3",
		AggregateVoteHash("1234", "8888.0ukrw,1.243uusd,0.99usdr", testVal))
}
