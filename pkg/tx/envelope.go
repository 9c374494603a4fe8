package tx

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTx wraps local transaction validation failures.
var ErrInvalidTx = errors.New("invalid transaction")

// BroadcastMode selects how long the gateway waits before replying.
type BroadcastMode string

// Broadcast modes.
const (
	// ModeAsync returns as soon as the node has the bytes.
	ModeAsync BroadcastMode = "async"
	// ModeSync returns after the mempool admission check.
	ModeSync BroadcastMode = "sync"
	// ModeBlock returns after inclusion in a block. Node-side timeouts make it
	// unsuitable for production use.
	ModeBlock BroadcastMode = "block"
)

// ParseBroadcastMode accepts "async", "sync" or "block".
func ParseBroadcastMode(s string) (BroadcastMode, error) {
	switch m := BroadcastMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAsync, ModeSync, ModeBlock:
		return m, nil
	}
	return "", fmt.Errorf("unknown broadcast mode %q", s)
}

// Envelope is the body posted to the gateway's /txs endpoint.
type Envelope struct {
	Tx   StdTx         `json:"tx"`
	Mode BroadcastMode `json:"mode"`
}
