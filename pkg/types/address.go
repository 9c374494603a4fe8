package types

import (
	"encoding/hex"
	"fmt"
)

// RawAddressSize is the length of a raw address in bytes.
const RawAddressSize = 20

// Bech32 prefixes. They compose as main + {"", valoper, valcons} + {"", pub}.
const (
	Bech32MainPrefix = "terra"

	PrefixValidator = "val"
	PrefixOperator  = "oper"
	PrefixConsensus = "cons"
	PrefixPublic    = "pub"

	PrefixAccAddr     = Bech32MainPrefix
	PrefixAccPub      = Bech32MainPrefix + PrefixPublic
	PrefixValAddr     = Bech32MainPrefix + PrefixValidator + PrefixOperator
	PrefixValPub      = Bech32MainPrefix + PrefixValidator + PrefixOperator + PrefixPublic
	PrefixValConsAddr = Bech32MainPrefix + PrefixValidator + PrefixConsensus
	PrefixValConsPub  = Bech32MainPrefix + PrefixValidator + PrefixConsensus + PrefixPublic
)

// Variant identifies one of the six bech32 address/pubkey encodings.
type Variant uint8

const (
	VariantAccAddress Variant = iota
	VariantValAddress
	VariantValConsAddress
	VariantAccPubKey
	VariantValPubKey
	VariantValConsPubKey
)

type variantInfo struct {
	name   string
	prefix string
	length int
}

// variants is indexed by Variant. Lengths are exact and part of the wire format.
var variants = [...]variantInfo{
	VariantAccAddress:     {"account", PrefixAccAddr, 44},
	VariantValAddress:     {"validator operator", PrefixValAddr, 51},
	VariantValConsAddress: {"validator consensus", PrefixValConsAddr, 51},
	VariantAccPubKey:      {"account pubkey", PrefixAccPub, 76},
	VariantValPubKey:      {"validator operator pubkey", PrefixValPub, 83},
	VariantValConsPubKey:  {"validator consensus pubkey", PrefixValConsPub, 82},
}

// Variants returns every supported variant in declaration order.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	for i := range variants {
		out[i] = Variant(i)
	}
	return out
}

func (v Variant) String() string {
	if int(v) >= len(variants) {
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
	return variants[v].name
}

// Prefix returns the required human-readable prefix.
func (v Variant) Prefix() string { return variants[v].prefix }

// Length returns the required total string length.
func (v Variant) Length() int { return variants[v].length }

// Validate reports whether s is a well-formed address of this variant.
func (v Variant) Validate(s string) bool {
	return Validate(s, v.Prefix(), v.Length())
}

// Encode bech32-encodes payload under this variant's prefix.
func (v Variant) Encode(payload []byte) (string, error) {
	return Bech32Encode(v.Prefix(), payload)
}

// Identify reports which variant s is. The prefix selects the candidate
// and the full prefix/length check still applies.
func Identify(s string) (Variant, error) {
	hrp, _, err := Bech32Decode(s)
	if err != nil {
		return 0, err
	}
	for i, info := range variants {
		if info.prefix == hrp {
			v := Variant(i)
			if _, err := CheckAddress(s, v.Prefix(), v.Length()); err != nil {
				return 0, err
			}
			return v, nil
		}
	}
	return 0, &AddressValidationError{Address: s, Prefix: hrp, Length: len(s)}
}

// AddressValidationError reports a syntactically valid bech32 string that
// does not match the expected prefix or length.
type AddressValidationError struct {
	Address        string
	Prefix         string
	ExpectedPrefix string
	Length         int
	ExpectedLength int
}

func (e *AddressValidationError) Error() string {
	if e.Prefix != e.ExpectedPrefix {
		return fmt.Sprintf("address %q: prefix %q, want %q", e.Address, e.Prefix, e.ExpectedPrefix)
	}
	return fmt.Sprintf("address %q: length %d, want %d", e.Address, e.Length, e.ExpectedLength)
}

// CheckAddress decodes s and verifies its prefix and total length.
// Returns *Bech32DecodeError if s is not bech32 at all and
// *AddressValidationError if it is bech32 but the wrong kind.
func CheckAddress(s, expectedPrefix string, expectedLength int) ([]byte, error) {
	hrp, data, err := Bech32Decode(s)
	if err != nil {
		return nil, err
	}
	if hrp != expectedPrefix || len(s) != expectedLength {
		return nil, &AddressValidationError{
			Address:        s,
			Prefix:         hrp,
			ExpectedPrefix: expectedPrefix,
			Length:         len(s),
			ExpectedLength: expectedLength,
		}
	}
	return data, nil
}

// Validate returns true only if s decodes as bech32, its prefix equals
// expectedPrefix and its total length equals expectedLength.
func Validate(s, expectedPrefix string, expectedLength int) bool {
	_, err := CheckAddress(s, expectedPrefix, expectedLength)
	return err == nil
}

// ValidateAccAddress checks a terra1... account address.
func ValidateAccAddress(s string) bool { return VariantAccAddress.Validate(s) }

// ValidateValAddress checks a terravaloper1... operator address.
func ValidateValAddress(s string) bool { return VariantValAddress.Validate(s) }

// ValidateValConsAddress checks a terravalcons1... consensus address.
func ValidateValConsAddress(s string) bool { return VariantValConsAddress.Validate(s) }

// ValidateAccPubKey checks a terrapub1... account pubkey.
func ValidateAccPubKey(s string) bool { return VariantAccPubKey.Validate(s) }

// ValidateValPubKey checks a terravaloperpub1... operator pubkey.
func ValidateValPubKey(s string) bool { return VariantValPubKey.Validate(s) }

// ValidateValConsPubKey checks a terravalconspub1... consensus pubkey.
func ValidateValConsPubKey(s string) bool { return VariantValConsPubKey.Validate(s) }

// ConversionError reports raw bytes that cannot be the payload of a variant.
type ConversionError struct {
	Variant Variant
	Reason  string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert to %s: %s", e.Variant, e.Reason)
}

// RawAddress is the 20-byte RIPEMD160(SHA256(pubkey)) account identity.
type RawAddress [RawAddressSize]byte

// RawAddressFromBytes copies b into a RawAddress.
func RawAddressFromBytes(b []byte) (RawAddress, error) {
	var a RawAddress
	if len(b) != RawAddressSize {
		return a, fmt.Errorf("raw address must be %d bytes, got %d", RawAddressSize, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// IsZero returns true if the address is all zeros.
func (a RawAddress) IsZero() bool {
	return a == RawAddress{}
}

// Hex returns the hex-encoded raw address.
func (a RawAddress) Hex() string {
	return hex.EncodeToString(a[:])
}

// Bytes returns a copy of the address as a byte slice.
func (a RawAddress) Bytes() []byte {
	b := make([]byte, RawAddressSize)
	copy(b, a[:])
	return b
}

// mustEncode bech32-encodes a payload whose prefix is a constant; the only
// failure mode of Bech32Encode is a malformed prefix.
func mustEncode(v Variant, payload []byte) string {
	s, err := v.Encode(payload)
	if err != nil {
		panic(err)
	}
	return s
}

// AccAddress returns the terra1... encoding.
func (a RawAddress) AccAddress() AccAddress {
	return AccAddress(mustEncode(VariantAccAddress, a[:]))
}

// ValAddress returns the terravaloper1... encoding.
func (a RawAddress) ValAddress() ValAddress {
	return ValAddress(mustEncode(VariantValAddress, a[:]))
}

// ValConsAddress returns the terravalcons1... encoding.
func (a RawAddress) ValConsAddress() ValConsAddress {
	return ValConsAddress(mustEncode(VariantValConsAddress, a[:]))
}

func (a RawAddress) String() string {
	return string(a.AccAddress())
}

func decodeRaw(v Variant, s string) (RawAddress, error) {
	data, err := CheckAddress(s, v.Prefix(), v.Length())
	if err != nil {
		return RawAddress{}, err
	}
	raw, err := RawAddressFromBytes(data)
	if err != nil {
		return RawAddress{}, &ConversionError{Variant: v, Reason: err.Error()}
	}
	return raw, nil
}

// AccAddress is a bech32 account address (terra1...).
type AccAddress string

// ParseAccAddress validates s as an account address.
func ParseAccAddress(s string) (AccAddress, error) {
	if _, err := decodeRaw(VariantAccAddress, s); err != nil {
		return "", err
	}
	return AccAddress(s), nil
}

// Validate reports whether the address is well formed.
func (a AccAddress) Validate() bool { return ValidateAccAddress(string(a)) }

// Raw decodes the 20-byte payload.
func (a AccAddress) Raw() (RawAddress, error) { return decodeRaw(VariantAccAddress, string(a)) }

// ToValAddress re-encodes the payload under the operator prefix.
func (a AccAddress) ToValAddress() (ValAddress, error) {
	raw, err := a.Raw()
	if err != nil {
		return "", err
	}
	return raw.ValAddress(), nil
}

func (a AccAddress) String() string { return string(a) }

// ValAddress is a bech32 validator operator address (terravaloper1...).
type ValAddress string

// ParseValAddress validates s as a validator operator address.
func ParseValAddress(s string) (ValAddress, error) {
	if _, err := decodeRaw(VariantValAddress, s); err != nil {
		return "", err
	}
	return ValAddress(s), nil
}

// Validate reports whether the address is well formed.
func (a ValAddress) Validate() bool { return ValidateValAddress(string(a)) }

// Raw decodes the 20-byte payload.
func (a ValAddress) Raw() (RawAddress, error) { return decodeRaw(VariantValAddress, string(a)) }

// ToAccAddress re-encodes the payload under the account prefix.
func (a ValAddress) ToAccAddress() (AccAddress, error) {
	raw, err := a.Raw()
	if err != nil {
		return "", err
	}
	return raw.AccAddress(), nil
}

func (a ValAddress) String() string { return string(a) }

// ValConsAddress is a bech32 validator consensus address (terravalcons1...).
type ValConsAddress string

// Validate reports whether the address is well formed.
func (a ValConsAddress) Validate() bool { return ValidateValConsAddress(string(a)) }

// Raw decodes the 20-byte payload.
func (a ValConsAddress) Raw() (RawAddress, error) {
	return decodeRaw(VariantValConsAddress, string(a))
}

func (a ValConsAddress) String() string { return string(a) }

// AccToVal converts a terra1... string into the terravaloper1... encoding
// of the same payload.
func AccToVal(s string) (string, error) {
	v, err := AccAddress(s).ToValAddress()
	return string(v), err
}

// ValToAcc converts a terravaloper1... string into the terra1... encoding
// of the same payload.
func ValToAcc(s string) (string, error) {
	a, err := ValAddress(s).ToAccAddress()
	return string(a), err
}
