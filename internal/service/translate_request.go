package service

import (
	"encoding/hex"
	"fmt"

	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient"
	"github.com/LeJamon/goXRPLGateway/internal/rippleapi"
)

var transactionTypes = map[rippleapi.EnumTransactionType]string{
	rippleapi.EnumTransactionType_TX_ACCOUNT_SET:            "AccountSet",
	rippleapi.EnumTransactionType_TX_ACCOUNT_DELETE:         "AccountDelete",
	rippleapi.EnumTransactionType_TX_CHECK_CANCEL:           "CheckCancel",
	rippleapi.EnumTransactionType_TX_CHECK_CASH:             "CheckCash",
	rippleapi.EnumTransactionType_TX_CHECK_CREATE:           "CheckCreate",
	rippleapi.EnumTransactionType_TX_DEPOSIT_PREAUTH:        "DepositPreauth",
	rippleapi.EnumTransactionType_TX_ESCROW_CANCEL:          "EscrowCancel",
	rippleapi.EnumTransactionType_TX_ESCROW_CREATE:          "EscrowCreate",
	rippleapi.EnumTransactionType_TX_ESCROW_FINISH:          "EscrowFinish",
	rippleapi.EnumTransactionType_TX_OFFER_CANCEL:           "OfferCancel",
	rippleapi.EnumTransactionType_TX_OFFER_CREATE:           "OfferCreate",
	rippleapi.EnumTransactionType_TX_PAYMENT:                "Payment",
	rippleapi.EnumTransactionType_TX_PAYMENT_CHANNEL_CLAIM:  "PaymentChannelClaim",
	rippleapi.EnumTransactionType_TX_PAYMENT_CHANNEL_CREATE: "PaymentChannelCreate",
	rippleapi.EnumTransactionType_TX_PAYMENT_CHANNEL_FUND:   "PaymentChannelFund",
	rippleapi.EnumTransactionType_TX_SET_REGULAR_KEY:        "SetRegularKey",
	rippleapi.EnumTransactionType_TX_SIGNER_LIST_SET:        "SignerListSet",
	rippleapi.EnumTransactionType_TX_TRUST_SET:              "TrustSet",
}

// transactionTypeName returns the ledger's name for t.
func transactionTypeName(t rippleapi.EnumTransactionType) (string, bool) {
	name, ok := transactionTypes[t]
	return name, ok
}

// toTransaction builds the body PrepareTransaction completes. The amount
// is forwarded for payments and whenever it is non-zero.
func toTransaction(req *rippleapi.RequestPrepareTransaction) (ledgerclient.Transaction, error) {
	txType, ok := transactionTypeName(req.TxType)
	if !ok {
		return ledgerclient.Transaction{}, callerError(fmt.Sprintf("unknown transaction type %d", int32(req.TxType)))
	}
	if req.SenderAccount == "" {
		return ledgerclient.Transaction{}, callerError("senderAccount is required")
	}

	tx := ledgerclient.Transaction{
		TransactionType: txType,
		Account:         req.SenderAccount,
		Destination:     req.ReceiverAccount,
	}
	if req.Amount != 0 || req.TxType == rippleapi.EnumTransactionType_TX_PAYMENT {
		drops, err := ledgerclient.FloatXRPToDrops(req.Amount)
		if err != nil {
			return ledgerclient.Transaction{}, callerError(fmt.Sprintf("amount %v: %s", req.Amount, ledgerMessage(err)))
		}
		tx.Amount = drops
	}
	return tx, nil
}

// toInstructions copies the fields present in in. Nothing else is set, so
// the ledger client autofills exactly what the caller left out.
func toInstructions(in *rippleapi.Instructions) ledgerclient.Instructions {
	var out ledgerclient.Instructions
	if in == nil {
		return out
	}
	out.Fee = copyPtr(in.Fee)
	out.MaxFee = copyPtr(in.MaxFee)
	out.MaxLedgerVersion = copyPtr(in.MaxLedgerVersion)
	out.MaxLedgerVersionOffset = copyPtr(in.MaxLedgerVersionOffset)
	out.Sequence = copyPtr(in.Sequence)
	out.SignersCount = copyPtr(in.SignersCount)
	return out
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func toSignArgs(req *rippleapi.RequestSignTransaction) (string, string, ledgerclient.SignOptions, error) {
	if req.TxJson == "" {
		return "", "", ledgerclient.SignOptions{}, callerError("txJson is required")
	}
	if req.Secret == "" {
		return "", "", ledgerclient.SignOptions{}, callerError("secret is required")
	}
	var opts ledgerclient.SignOptions
	if req.SignAs != nil {
		opts.SignAs = *req.SignAs
	}
	return req.TxJson, req.Secret, opts, nil
}

func toSubmitBlob(req *rippleapi.RequestSubmitTransaction) (string, error) {
	if req.TxBlob == "" {
		return "", callerError("txBlob is required")
	}
	if _, err := hex.DecodeString(req.TxBlob); err != nil {
		return "", callerError("txBlob must be hex")
	}
	return req.TxBlob, nil
}

func toTransactionLookup(req *rippleapi.RequestGetTransaction) (string, ledgerclient.TransactionOptions, error) {
	if len(req.TxId) != 64 {
		return "", ledgerclient.TransactionOptions{}, callerError("txId must be a 64 character hex hash")
	}
	if _, err := hex.DecodeString(req.TxId); err != nil {
		return "", ledgerclient.TransactionOptions{}, callerError("txId must be a 64 character hex hash")
	}
	return req.TxId, ledgerclient.TransactionOptions{MinLedgerVersion: req.MinLedgerVersion}, nil
}

func toCombineInputs(req *rippleapi.RequestCombineTransaction) ([]string, error) {
	if len(req.SignedTransactions) == 0 {
		return nil, callerError("signedTransactions must not be empty")
	}
	for i, blob := range req.SignedTransactions {
		if blob == "" {
			return nil, callerError(fmt.Sprintf("signedTransactions[%d] is empty", i))
		}
	}
	return req.SignedTransactions, nil
}
