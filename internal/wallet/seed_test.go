package wallet

import (
	"encoding/hex"
	"errors"
	"testing"
)

const (
	testPhraseSeed = "notice oak worry limit wrap speak medal online prefer cluster roof addict wrist behave treat actual wasp year salad speed social layer crew genius"
	testSeedHex    = "a2ae8846397b55d266af35acdbb18ba1d005f7ddbdd4ca7a804df83352eaf373f274ba0dc8ac1b2b25f19dfcb7fa8b30a240d2c6039d88963defc2f626003b2f"
)

func TestSeedFromMnemonic_TerraVector(t *testing.T) {
	seed, err := SeedFromMnemonic(testPhraseSeed, "")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	if seed.Hex() != testSeedHex {
		t.Errorf("seed = %s, want %s", seed.Hex(), testSeedHex)
	}
}

func TestSeedFromMnemonic_KnownVector(t *testing.T) {
	// Standard BIP-39 test vector
	// Mnemonic: "abandon" x11 + "about", passphrase: "TREZOR"
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	seed, err := SeedFromMnemonic(mnemonic, "TREZOR")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}

	want := "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04"
	if seed.Hex() != want {
		t.Errorf("seed = %s, want %s", seed.Hex(), want)
	}
}

func TestSeed_Deterministic(t *testing.T) {
	p, err := ParseMnemonic(testPhraseSeed)
	if err != nil {
		t.Fatal(err)
	}
	if p.Seed("") != p.Seed("") {
		t.Error("same phrase and passphrase should give the same seed")
	}
	if p.Seed("") == p.Seed("passphrase") {
		t.Error("passphrase should change the seed")
	}
}

func TestSeed_Bytes(t *testing.T) {
	seed, _ := SeedFromMnemonic(testPhraseSeed, "")
	b := seed.Bytes()
	if len(b) != SeedSize || hex.EncodeToString(b) != testSeedHex {
		t.Fatalf("Bytes() = %x", b)
	}
	b[0] ^= 0xff
	if seed.Hex() != testSeedHex {
		t.Error("Bytes() should return a copy")
	}
}

func TestSeedFromMnemonic_Invalid(t *testing.T) {
	_, err := SeedFromMnemonic("invalid mnemonic words here", "")
	if !errors.Is(err, ErrInvalidPhrase) {
		t.Errorf("SeedFromMnemonic() = %v, want ErrInvalidPhrase", err)
	}
}
