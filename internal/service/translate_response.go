package service

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient"
	"github.com/LeJamon/goXRPLGateway/internal/rippleapi"
)

func toAccountInfoResponse(info *ledgerclient.AccountInfo) *rippleapi.ResponseGetAccountInfo {
	return &rippleapi.ResponseGetAccountInfo{
		Sequence:                                  info.Sequence,
		XrpBalance:                                info.XRPBalance,
		OwnerCount:                                info.OwnerCount,
		PreviousAffectingTransactionID:            info.PreviousAffectingTransactionID,
		PreviousAffectingTransactionLedgerVersion: info.PreviousAffectingTransactionLedgerVersion,
	}
}

func toGenerateAddressResponse(g *ledgerclient.GeneratedAddress) *rippleapi.ResponseGenerateAddress {
	classic, address := g.ClassicAddress, g.Address
	return &rippleapi.ResponseGenerateAddress{
		XAddress:       g.XAddress,
		ClassicAddress: &classic,
		Address:        &address,
		Secret:         g.Secret,
	}
}

func toGenerateXAddressResponse(g *ledgerclient.GeneratedXAddress) *rippleapi.ResponseGenerateXAddress {
	return &rippleapi.ResponseGenerateXAddress{XAddress: g.XAddress, Secret: g.Secret}
}

// toPrepareResponse passes TxJSON through untouched; it is JSON already.
func toPrepareResponse(p *ledgerclient.Prepared) *rippleapi.ResponsePrepareTransaction {
	fee, sequence := p.Instructions.Fee, p.Instructions.Sequence
	return &rippleapi.ResponsePrepareTransaction{
		TxJson: p.TxJSON,
		Instructions: &rippleapi.Instructions{
			Fee:              &fee,
			Sequence:         &sequence,
			MaxLedgerVersion: copyPtr(p.Instructions.MaxLedgerVersion),
		},
	}
}

func toSignResponse(s *ledgerclient.SignResult) *rippleapi.ResponseSignTransaction {
	return &rippleapi.ResponseSignTransaction{TxId: s.ID, TxBlob: s.SignedTransaction}
}

func toSubmitResponse(res *ledgerclient.SubmitResult, ledgerVersion uint32) (*rippleapi.ResponseSubmitTransaction, error) {
	encoded, err := json.Marshal(res)
	if err != nil {
		return nil, &Error{Kind: KindLocal, Message: "encode submit result: " + err.Error(), Err: err}
	}
	return &rippleapi.ResponseSubmitTransaction{
		ResultJsonString:      string(encoded),
		EarliestLedgerVersion: ledgerVersion + 1,
	}, nil
}

func toGetTransactionResponse(tx *ledgerclient.TransactionResult) (*rippleapi.ResponseGetTransaction, error) {
	encoded, err := json.Marshal(tx)
	if err != nil {
		return nil, &Error{Kind: KindLocal, Message: "encode transaction: " + err.Error(), Err: err}
	}
	return &rippleapi.ResponseGetTransaction{ResultJsonString: string(encoded)}, nil
}

// toCombineResponse rejects a result missing either field instead of
// answering with empty strings.
func toCombineResponse(c *ledgerclient.CombineResult) (*rippleapi.ResponseCombineTransaction, error) {
	if c == nil || c.SignedTransaction == "" || c.ID == "" {
		return nil, &Error{Kind: KindLedgerTerminal, Name: NameCombine, Message: "combine produced no signed transaction"}
	}
	return &rippleapi.ResponseCombineTransaction{SignedTransaction: c.SignedTransaction, TxId: c.ID}, nil
}

func toWaitValidationResponse(ev ledgerclient.LedgerEvent) *rippleapi.ResponseWaitValidation {
	return &rippleapi.ResponseWaitValidation{LedgerVersion: ev.LedgerVersion}
}

// fromLedgerError normalizes a ledger client failure. A node error takes its
// message from error_message; any other error keeps its own text.
func fromLedgerError(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	le, ok := ledgerclient.AsLedgerError(err)
	if !ok {
		return &Error{Kind: KindLocal, Message: err.Error(), Err: err}
	}
	return &Error{Kind: ledgerKind(le), Name: le.Name, Message: ledgerMessage(le), Err: err}
}

func ledgerMessage(err error) string {
	le, ok := ledgerclient.AsLedgerError(err)
	if !ok {
		return err.Error()
	}
	if le.Data == nil {
		return le.Message
	}
	if le.Data.ErrorMessage != "" {
		return le.Data.ErrorMessage
	}
	if le.Data.Error != "" {
		return genericLedgerMessage + " (" + le.Data.Error + ")"
	}
	return genericLedgerMessage
}

func ledgerKind(le *ledgerclient.LedgerError) Kind {
	switch {
	case errors.Is(le, ledgerclient.ErrNotConnected), errors.Is(le, ledgerclient.ErrDisconnected):
		return KindNotConnected
	case errors.Is(le, ledgerclient.ErrValidation):
		return KindCaller
	case errors.Is(le, ledgerclient.ErrPendingLedgerVersion), errors.Is(le, ledgerclient.ErrTimeout):
		return KindLedgerRetryable
	case errors.Is(le, ledgerclient.ErrNotFound):
		if strings.Contains(le.Message, "not been validated") {
			return KindLedgerRetryable
		}
		return KindLedgerTerminal
	default:
		return KindLedgerTerminal
	}
}
