// Package rippleapi holds the wire schema of the gateway: request and
// response records, the transaction type enum, service descriptors, client
// stubs and the JSON codec they travel with.
//
// Optional fields are pointers. A nil pointer means the caller did not set
// the field; a non-nil pointer is forwarded even when it points at zero.
package rippleapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EnumTransactionType selects the transaction kind built by PrepareTransaction.
type EnumTransactionType int32

const (
	EnumTransactionType_TX_ACCOUNT_SET            EnumTransactionType = 0
	EnumTransactionType_TX_ACCOUNT_DELETE         EnumTransactionType = 1
	EnumTransactionType_TX_CHECK_CANCEL           EnumTransactionType = 2
	EnumTransactionType_TX_CHECK_CASH             EnumTransactionType = 3
	EnumTransactionType_TX_CHECK_CREATE           EnumTransactionType = 4
	EnumTransactionType_TX_DEPOSIT_PREAUTH        EnumTransactionType = 5
	EnumTransactionType_TX_ESCROW_CANCEL          EnumTransactionType = 6
	EnumTransactionType_TX_ESCROW_CREATE          EnumTransactionType = 7
	EnumTransactionType_TX_ESCROW_FINISH          EnumTransactionType = 8
	EnumTransactionType_TX_OFFER_CANCEL           EnumTransactionType = 9
	EnumTransactionType_TX_OFFER_CREATE           EnumTransactionType = 10
	EnumTransactionType_TX_PAYMENT                EnumTransactionType = 11
	EnumTransactionType_TX_PAYMENT_CHANNEL_CLAIM  EnumTransactionType = 12
	EnumTransactionType_TX_PAYMENT_CHANNEL_CREATE EnumTransactionType = 13
	EnumTransactionType_TX_PAYMENT_CHANNEL_FUND   EnumTransactionType = 14
	EnumTransactionType_TX_SET_REGULAR_KEY        EnumTransactionType = 15
	EnumTransactionType_TX_SIGNER_LIST_SET        EnumTransactionType = 16
	EnumTransactionType_TX_TRUST_SET              EnumTransactionType = 17

	// EnumTransactionType_TX_SINGER_LIST_SET is the spelling older clients use.
	EnumTransactionType_TX_SINGER_LIST_SET = EnumTransactionType_TX_SIGNER_LIST_SET
)

var EnumTransactionType_name = map[EnumTransactionType]string{
	0:  "TX_ACCOUNT_SET",
	1:  "TX_ACCOUNT_DELETE",
	2:  "TX_CHECK_CANCEL",
	3:  "TX_CHECK_CASH",
	4:  "TX_CHECK_CREATE",
	5:  "TX_DEPOSIT_PREAUTH",
	6:  "TX_ESCROW_CANCEL",
	7:  "TX_ESCROW_CREATE",
	8:  "TX_ESCROW_FINISH",
	9:  "TX_OFFER_CANCEL",
	10: "TX_OFFER_CREATE",
	11: "TX_PAYMENT",
	12: "TX_PAYMENT_CHANNEL_CLAIM",
	13: "TX_PAYMENT_CHANNEL_CREATE",
	14: "TX_PAYMENT_CHANNEL_FUND",
	15: "TX_SET_REGULAR_KEY",
	16: "TX_SIGNER_LIST_SET",
	17: "TX_TRUST_SET",
}

var EnumTransactionType_value = func() map[string]EnumTransactionType {
	m := make(map[string]EnumTransactionType, len(EnumTransactionType_name)+1)
	for v, name := range EnumTransactionType_name {
		m[name] = v
	}
	m["TX_SINGER_LIST_SET"] = EnumTransactionType_TX_SIGNER_LIST_SET
	return m
}()

func (x EnumTransactionType) String() string {
	if name, ok := EnumTransactionType_name[x]; ok {
		return name
	}
	return fmt.Sprintf("EnumTransactionType(%d)", int32(x))
}

// UnmarshalJSON accepts the numeric value or the enum name, the way proto3
// JSON does.
func (x *EnumTransactionType) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		v, ok := EnumTransactionType_value[strings.ToUpper(name)]
		if !ok {
			return fmt.Errorf("unknown transaction type %q", name)
		}
		*x = v
		return nil
	}
	var n int32
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*x = EnumTransactionType(n)
	return nil
}

// -----------------------------------------------------------------------------
// Account
// -----------------------------------------------------------------------------

type RequestGetAccountInfo struct {
	Address string `json:"address"`
}

type ResponseGetAccountInfo struct {
	Sequence                                  uint32 `json:"sequence"`
	XrpBalance                                string `json:"xrpBalance"`
	OwnerCount                                uint32 `json:"ownerCount"`
	PreviousAffectingTransactionID            string `json:"previousAffectingTransactionId"`
	PreviousAffectingTransactionLedgerVersion uint32 `json:"previousAffectingTransactionLedgerVersion"`
}

// -----------------------------------------------------------------------------
// Address
// -----------------------------------------------------------------------------

type ResponseGenerateAddress struct {
	XAddress       string  `json:"xAddress"`
	ClassicAddress *string `json:"classicAddress,omitempty"`
	Address        *string `json:"address,omitempty"`
	Secret         string  `json:"secret"`
}

type ResponseGenerateXAddress struct {
	XAddress string `json:"xAddress"`
	Secret   string `json:"secret"`
}

type RequestIsValidAddress struct {
	Address string `json:"address"`
}

type ResponseIsValidAddress struct {
	IsValid bool `json:"isValid"`
}

// -----------------------------------------------------------------------------
// Transaction
// -----------------------------------------------------------------------------

// Instructions tune transaction preparation. Every field is independently
// optional.
type Instructions struct {
	Fee                    *string `json:"fee,omitempty"`
	MaxFee                 *string `json:"maxFee,omitempty"`
	MaxLedgerVersion       *uint32 `json:"maxLedgerVersion,omitempty"`
	MaxLedgerVersionOffset *uint32 `json:"maxLedgerVersionOffset,omitempty"`
	Sequence               *uint32 `json:"sequence,omitempty"`
	SignersCount           *uint32 `json:"signersCount,omitempty"`
}

type RequestPrepareTransaction struct {
	TxType          EnumTransactionType `json:"txType"`
	SenderAccount   string              `json:"senderAccount"`
	Amount          float64             `json:"amount"`
	ReceiverAccount string              `json:"receiverAccount"`
	Instructions    *Instructions       `json:"instructions,omitempty"`
}

type ResponsePrepareTransaction struct {
	// TxJson is the prepared transaction, already encoded as JSON text.
	TxJson       string        `json:"txJson"`
	Instructions *Instructions `json:"instructions,omitempty"`
}

type RequestSignTransaction struct {
	TxJson string `json:"txJson"`
	Secret string `json:"secret"`
	// SignAs requests a multi-signature on behalf of this account.
	SignAs *string `json:"signAs,omitempty"`
}

type ResponseSignTransaction struct {
	TxId   string `json:"txId"`
	TxBlob string `json:"txBlob"`
}

type RequestSubmitTransaction struct {
	TxBlob string `json:"txBlob"`
}

type ResponseSubmitTransaction struct {
	ResultJsonString      string `json:"resultJsonString"`
	EarliestLedgerVersion uint32 `json:"earliestLedgerVersion"`
}

type ResponseWaitValidation struct {
	LedgerVersion uint32 `json:"ledgerVersion"`
}

type RequestGetTransaction struct {
	TxId             string `json:"txId"`
	MinLedgerVersion uint32 `json:"minLedgerVersion"`
}

type ResponseGetTransaction struct {
	ResultJsonString string `json:"resultJsonString"`
}

type RequestCombineTransaction struct {
	SignedTransactions []string `json:"signedTransactions"`
}

type ResponseCombineTransaction struct {
	SignedTransaction string `json:"signedTransaction"`
	TxId              string `json:"txId"`
}
