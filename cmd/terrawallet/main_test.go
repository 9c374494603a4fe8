package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Klingon-tech/terrawallet/config"
)

const (
	testAcc    = "terra1jnzv225hwl3uxc5wtnlgr8mwy6nlt0vztv3qqm"
	testVal    = "terravaloper1jnzv225hwl3uxc5wtnlgr8mwy6nlt0vztraasg"
	testAccPub = "terrapub1addwnpepqt8ha594svjn3nvfk4ggfn5n8xd3sm3cz6ztxyugwcuqzsuuhhfq5nwzrf9"
	testValPub = "terravaloperpub1addwnpepqt8ha594svjn3nvfk4ggfn5n8xd3sm3cz6ztxyugwcuqzsuuhhfq5y7accr"
	testPhrase = "wonder caution square unveil april art add hover spend smile proud admit modify old copper throw crew happy nature luggage reopen exhibit ordinary napkin"
)

func TestConvertAddress(t *testing.T) {
	tests := map[string]string{
		testAcc:    testVal,
		testVal:    testAcc,
		testAccPub: testValPub,
		testValPub: testAccPub,
	}
	for in, want := range tests {
		got, err := convertAddress(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := convertAddress("terravalcons1jnzv225hwl3uxc5wtnlgr8mwy6nlt0vzlswpuf")
	assert.Error(t, err)
	_, err = convertAddress("terra1invalid")
	assert.Error(t, err)
}

func TestStoredKey_Derives(t *testing.T) {
	s := storedKey{Mnemonic: testPhrase, Language: "english"}
	k, err := s.key()
	require.NoError(t, err)
	info := describe("alice", s, k)
	assert.Equal(t, testAcc, info.Address)
	assert.Equal(t, testVal, info.ValAddress)
	assert.Equal(t, testAccPub, info.PubKey)
	assert.Equal(t, "m/44'/330'/0'/0/0", info.Path)
}

func TestRoot_AddressValidateSkipsConfig(t *testing.T) {
	a := &app{v: config.NewViper()}
	root := newRootCmd(a)
	root.SetArgs([]string{"address", "validate", testVal})
	require.NoError(t, root.Execute())
	assert.Nil(t, a.cfg)
}

func TestRoot_BalanceUsesGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bank/balances/"+testAcc, r.URL.Path)
		_, _ = io.WriteString(w, `{"height":"1","result":[{"denom":"uluna","amount":"42"}]}`)
	}))
	defer srv.Close()

	cfgPath := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: error\n"), 0600))

	a := &app{v: config.NewViper()}
	root := newRootCmd(a)
	root.SetArgs([]string{"--config", cfgPath, "--gateway", srv.URL, "--network", "testnet", "balance", testAcc})

	out := captureStdout(t, func() {
		require.NoError(t, root.ExecuteContext(context.Background()))
	})

	var got struct {
		Address string `json:"address"`
		Coins   []struct {
			Denom  string `json:"denom"`
			Amount string `json:"amount"`
		} `json:"coins"`
	}
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, testAcc, got.Address)
	require.Len(t, got.Coins, 1)
	assert.Equal(t, "42", got.Coins[0].Amount)
	assert.Equal(t, config.TestnetChainID, a.cfg.ChainID)
}

func TestKeysRecoverAndShow(t *testing.T) {
	t.Setenv(passwordEnv, "pw")
	cfgPath := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: error\n"), 0600))
	datadir := t.TempDir()

	withStdin(t, testPhrase+"\n", func() {
		root := newRootCmd(&app{v: config.NewViper()})
		root.SetArgs([]string{"--config", cfgPath, "--datadir", datadir, "keys", "recover", "alice"})
		captureStdout(t, func() { require.NoError(t, root.Execute()) })
	})

	root := newRootCmd(&app{v: config.NewViper()})
	root.SetArgs([]string{"--config", cfgPath, "--datadir", datadir, "keys", "show", "alice"})
	out := captureStdout(t, func() { require.NoError(t, root.Execute()) })

	var info keyInfo
	require.NoError(t, json.Unmarshal(out, &info))
	assert.Equal(t, testAcc, info.Address)
}

func captureStdout(t *testing.T, fn func()) []byte {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.Bytes()
	}()
	fn()
	w.Close()
	return <-done
}

func withStdin(t *testing.T, input string, fn func()) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = io.WriteString(w, input)
	require.NoError(t, err)
	w.Close()

	orig := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = orig }()
	fn()
}

func TestKeyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.hex")
	require.NoError(t, os.WriteFile(path, []byte("4804e2bdce36d413206ccf47cc4c64db2eff924e7cc9e90339fa7579d2bd9d5b\n"), 0600))

	k, err := keyFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, testAcc, k.AccAddress().String())

	require.NoError(t, os.WriteFile(path, []byte("zz"), 0600))
	_, err = keyFromFile(path)
	assert.Error(t, err)
}

func TestTxWait_RejectsMalformedHash(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: error\n"), 0600))

	root := newRootCmd(&app{v: config.NewViper()})
	root.SetArgs([]string{"--config", cfgPath, "--gateway", "http://127.0.0.1:1", "tx", "wait", "not-a-hash"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tx hash")
}
