package broadcast

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoChainID is returned when a transaction is built without a chain id.
var ErrNoChainID = errors.New("chain id not set")

// TxRejectedError is a deterministic rejection by the chain. It is never
// retried.
type TxRejectedError struct {
	TxHash    string
	Code      uint32
	Codespace string
	RawLog    string
}

func (e *TxRejectedError) Error() string {
	if e.Codespace != "" {
		return fmt.Sprintf("tx %s rejected: code %d (%s): %s", e.TxHash, e.Code, e.Codespace, e.RawLog)
	}
	return fmt.Sprintf("tx %s rejected: code %d: %s", e.TxHash, e.Code, e.RawLog)
}

// TxNotFoundError means the transaction was still unknown after every poll
// attempt.
type TxNotFoundError struct {
	TxHash   string
	Attempts int
}

func (e *TxNotFoundError) Error() string {
	return fmt.Sprintf("tx %s not found after %d attempts", e.TxHash, e.Attempts)
}

// TxPollAbortedError is a non-404 gateway answer while polling.
type TxPollAbortedError struct {
	TxHash string
	Status int
	Body   string
}

func (e *TxPollAbortedError) Error() string {
	return fmt.Sprintf("polling tx %s aborted: %d %s: %s", e.TxHash, e.Status, http.StatusText(e.Status), e.Body)
}
