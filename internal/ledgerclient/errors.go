package ledgerclient

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Every *LedgerError unwraps to exactly one of them.
var (
	ErrNotConnected         = errors.New("not connected")
	ErrDisconnected         = errors.New("disconnected")
	ErrTimeout              = errors.New("timeout")
	ErrNotFound             = errors.New("not found")
	ErrMissingLedgerHistory = errors.New("missing ledger history")
	ErrPendingLedgerVersion = errors.New("pending ledger version")
	ErrRippled              = errors.New("rippled error")
	ErrValidation           = errors.New("validation")
	ErrResponseFormat       = errors.New("response format")
)

// Error names as reported to callers.
const (
	NameNotConnected         = "NotConnectedError"
	NameDisconnected         = "DisconnectedError"
	NameTimeout              = "TimeoutError"
	NameNotFound             = "NotFoundError"
	NameMissingLedgerHistory = "MissingLedgerHistoryError"
	NamePendingLedgerVersion = "PendingLedgerVersionError"
	NameRippled              = "RippledError"
	NameValidation           = "ValidationError"
	NameResponseFormat       = "ResponseFormatError"
)

// NodeError is the error body rippled returns with status "error".
type NodeError struct {
	Error        string `json:"error"`
	ErrorCode    int    `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// LedgerError is a failure of a ledger client call. Data is set when the
// node itself rejected the request.
type LedgerError struct {
	Name    string
	Message string
	Data    *NodeError

	kind error
}

func (e *LedgerError) Error() string {
	return e.Name + ": " + e.Message
}

func (e *LedgerError) Unwrap() error {
	return e.kind
}

var kindNames = map[error]string{
	ErrNotConnected:         NameNotConnected,
	ErrDisconnected:         NameDisconnected,
	ErrTimeout:              NameTimeout,
	ErrNotFound:             NameNotFound,
	ErrMissingLedgerHistory: NameMissingLedgerHistory,
	ErrPendingLedgerVersion: NamePendingLedgerVersion,
	ErrRippled:              NameRippled,
	ErrValidation:           NameValidation,
	ErrResponseFormat:       NameResponseFormat,
}

// NewLedgerError returns a failure of kind, which must be one of the Err
// sentinels above. It exists for LedgerClient implementations outside this
// package, such as test doubles.
func NewLedgerError(kind error, message string) *LedgerError {
	return &LedgerError{Name: kindNames[kind], Message: message, kind: kind}
}

// NewNodeError returns the failure for an error body sent by the node.
func NewNodeError(body NodeError) *LedgerError {
	return nodeError(body)
}

func newError(kind error, name, format string, args ...any) *LedgerError {
	return &LedgerError{Name: name, Message: fmt.Sprintf(format, args...), kind: kind}
}

func notConnectedError() *LedgerError {
	return newError(ErrNotConnected, NameNotConnected, "websocket was closed")
}

func validationError(format string, args ...any) *LedgerError {
	return newError(ErrValidation, NameValidation, format, args...)
}

func nodeError(body NodeError) *LedgerError {
	msg := body.ErrorMessage
	if msg == "" {
		msg = body.Error
	}
	return &LedgerError{Name: NameRippled, Message: msg, Data: &body, kind: ErrRippled}
}

// AsLedgerError extracts a *LedgerError from err's chain.
func AsLedgerError(err error) (*LedgerError, bool) {
	var le *LedgerError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
