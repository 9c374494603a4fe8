package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTxHash_String(t *testing.T) {
	var h TxHash
	if s := h.String(); s != strings.Repeat("0", 64) {
		t.Errorf("zero hash String() = %s", s)
	}

	h[0] = 0xab
	h[31] = 0xcd
	s := h.String()
	if !strings.HasPrefix(s, "AB") || !strings.HasSuffix(s, "CD") {
		t.Errorf("String() = %s, want uppercase hex", s)
	}
}

func TestParseTxHash(t *testing.T) {
	lower := strings.Repeat("ab", 32)
	h, err := ParseTxHash(lower)
	if err != nil {
		t.Fatalf("ParseTxHash: %v", err)
	}
	if h.String() != strings.ToUpper(lower) {
		t.Errorf("String() = %s", h)
	}

	for _, bad := range []string{"", "zz", strings.Repeat("ab", 31), strings.Repeat("ab", 33)} {
		if _, err := ParseTxHash(bad); err == nil {
			t.Errorf("ParseTxHash(%q) should fail", bad)
		}
	}
}

func TestTxHash_JSON(t *testing.T) {
	h := TxHash{0x01}
	data, err := json.Marshal(h)
	if err != nil {
		t.Fatal(err)
	}
	var back TxHash
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != h {
		t.Errorf("roundtrip = %s", back)
	}
	if !(TxHash{}).IsZero() || h.IsZero() {
		t.Error("IsZero broken")
	}
}
