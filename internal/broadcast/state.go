package broadcast

import (
	"fmt"

	"github.com/Klingon-tech/terrawallet/internal/gateway"
)

// State is a point in a submission's lifecycle.
type State uint8

// Lifecycle states. Built moves to Submitted, which is where async
// submissions stop. Sync submissions end Accepted or Rejected, and Accepted
// moves to Polling, which ends Confirmed or NotFound.
const (
	StateBuilt State = iota
	StateSubmitted
	StateAccepted
	StateRejected
	StatePolling
	StateConfirmed
	StateNotFound
)

var stateNames = [...]string{
	StateBuilt:     "built",
	StateSubmitted: "submitted",
	StateAccepted:  "accepted",
	StateRejected:  "rejected",
	StatePolling:   "polling",
	StateConfirmed: "confirmed",
	StateNotFound:  "not_found",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// Final reports whether no further transition is possible.
func (s State) Final() bool {
	switch s {
	case StateRejected, StateConfirmed, StateNotFound:
		return true
	}
	return false
}

// Result is the outcome of a submission.
type Result struct {
	State  State
	TxHash string
	// Info is the gateway's reply: the broadcast response, or the
	// confirmation record once State is StateConfirmed.
	Info gateway.TxInfo
}
