package service

import (
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind classifies a failed call.
type Kind int

const (
	// KindCaller is a malformed or out-of-range request, rejected before any
	// ledger call.
	KindCaller Kind = iota + 1
	// KindNotConnected means the ledger client has no session.
	KindNotConnected
	// KindLedgerRetryable is a ledger failure that may go away by itself:
	// not validated yet, pending ledger version, timeout.
	KindLedgerRetryable
	// KindLedgerTerminal is a ledger failure that will not: missing history,
	// rejected request, malformed combine.
	KindLedgerTerminal
	// KindLocal is a failure of local computation.
	KindLocal
)

func (k Kind) String() string {
	switch k {
	case KindCaller:
		return "caller"
	case KindNotConnected:
		return "not_connected"
	case KindLedgerRetryable:
		return "ledger_retryable"
	case KindLedgerTerminal:
		return "ledger_terminal"
	case KindLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Names of failures raised by the services themselves.
const (
	NameInvalidRequest = "InvalidRequest"
	NameCombine        = "CombineError"
)

// connectionErrorMessage is the status message of a call made while the
// ledger client is disconnected.
const connectionErrorMessage = "connection error"

// genericLedgerMessage stands in for a node error without error_message.
const genericLedgerMessage = "ledger request failed"

// Error is a failed service call. Every Error surfaces to gRPC callers as
// codes.InvalidArgument with "<Name>: <Message>" as the status message, so
// the name survives the transport.
type Error struct {
	Kind    Kind
	Name    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Name == "" {
		return e.Message
	}
	return e.Name + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// GRPCStatus lets grpc-go convert an *Error returned by a handler.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func callerError(message string) *Error {
	return &Error{Kind: KindCaller, Name: NameInvalidRequest, Message: message}
}

func notConnected() *Error {
	return &Error{Kind: KindNotConnected, Message: connectionErrorMessage}
}

// failed logs a ledger or translation failure and returns it as an *Error.
func failed(log *zap.Logger, method string, err error) error {
	e := fromLedgerError(err)
	log.Warn("call failed",
		zap.String("method", method),
		zap.Stringer("kind", e.Kind),
		zap.String("error", e.Error()),
	)
	return e
}
