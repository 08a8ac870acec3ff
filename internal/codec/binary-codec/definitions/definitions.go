// Package definitions holds the field and transaction type tables of the
// XRPL canonical binary format, restricted to the transaction fields the
// gateway signs and combines.
package definitions

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Type codes of the serialized types.
const (
	TypeUInt16    int32 = 1
	TypeUInt32    int32 = 2
	TypeHash128   int32 = 4
	TypeHash256   int32 = 5
	TypeAmount    int32 = 6
	TypeBlob      int32 = 7
	TypeAccountID int32 = 8
	TypeSTObject  int32 = 14
	TypeSTArray   int32 = 15
	TypeUInt8     int32 = 16
)

var typeNames = map[int32]string{
	TypeUInt16:    "UInt16",
	TypeUInt32:    "UInt32",
	TypeHash128:   "Hash128",
	TypeHash256:   "Hash256",
	TypeAmount:    "Amount",
	TypeBlob:      "Blob",
	TypeAccountID: "AccountID",
	TypeSTObject:  "STObject",
	TypeSTArray:   "STArray",
	TypeUInt8:     "UInt8",
}

var (
	ErrUnknownField           = errors.New("unknown field")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
)

// FieldHeader identifies a field on the wire.
type FieldHeader struct {
	TypeCode  int32
	FieldCode int32
}

// FieldInstance describes one field.
type FieldInstance struct {
	FieldName      string
	Type           string
	Nth            int32
	IsVLEncoded    bool
	IsSerialized   bool
	IsSigningField bool
	FieldHeader    *FieldHeader
}

// Ordinal is the canonical sort key of the field.
func (f *FieldInstance) Ordinal() int32 {
	return f.FieldHeader.TypeCode<<16 | f.FieldHeader.FieldCode
}

// Definitions indexes the field table by name and by header.
type Definitions struct {
	Fields           map[string]*FieldInstance
	FieldIDNameMap   map[FieldHeader]string
	TransactionTypes map[string]int32
	transactionNames map[int32]string
}

var (
	once sync.Once
	defs *Definitions
)

// Get returns the process wide definitions.
func Get() *Definitions {
	once.Do(func() {
		defs = load()
	})
	return defs
}

type fieldDef struct {
	name    string
	typ     int32
	nth     int32
	signing bool
}

var fieldTable = []fieldDef{
	{"TransactionType", TypeUInt16, 2, true},
	{"SignerWeight", TypeUInt16, 3, true},

	{"NetworkID", TypeUInt32, 1, true},
	{"Flags", TypeUInt32, 2, true},
	{"SourceTag", TypeUInt32, 3, true},
	{"Sequence", TypeUInt32, 4, true},
	{"Expiration", TypeUInt32, 10, true},
	{"TransferRate", TypeUInt32, 11, true},
	{"DestinationTag", TypeUInt32, 14, true},
	{"QualityIn", TypeUInt32, 20, true},
	{"QualityOut", TypeUInt32, 21, true},
	{"OfferSequence", TypeUInt32, 25, true},
	{"LastLedgerSequence", TypeUInt32, 27, true},
	{"SetFlag", TypeUInt32, 33, true},
	{"ClearFlag", TypeUInt32, 34, true},
	{"SignerQuorum", TypeUInt32, 35, true},
	{"CancelAfter", TypeUInt32, 36, true},
	{"FinishAfter", TypeUInt32, 37, true},
	{"SettleDelay", TypeUInt32, 39, true},
	{"TicketCount", TypeUInt32, 40, true},
	{"TicketSequence", TypeUInt32, 41, true},

	{"EmailHash", TypeHash128, 1, true},

	{"AccountTxnID", TypeHash256, 9, true},
	{"InvoiceID", TypeHash256, 17, true},
	{"Channel", TypeHash256, 22, true},
	{"CheckID", TypeHash256, 24, true},

	{"Amount", TypeAmount, 1, true},
	{"Balance", TypeAmount, 2, true},
	{"LimitAmount", TypeAmount, 3, true},
	{"TakerPays", TypeAmount, 4, true},
	{"TakerGets", TypeAmount, 5, true},
	{"Fee", TypeAmount, 8, true},
	{"SendMax", TypeAmount, 9, true},
	{"DeliverMin", TypeAmount, 10, true},

	{"PublicKey", TypeBlob, 1, true},
	{"MessageKey", TypeBlob, 2, true},
	{"SigningPubKey", TypeBlob, 3, true},
	{"TxnSignature", TypeBlob, 4, false},
	{"Signature", TypeBlob, 6, true},
	{"Domain", TypeBlob, 7, true},
	{"MemoType", TypeBlob, 12, true},
	{"MemoData", TypeBlob, 13, true},
	{"MemoFormat", TypeBlob, 14, true},
	{"Fulfillment", TypeBlob, 16, true},
	{"Condition", TypeBlob, 17, true},

	{"Account", TypeAccountID, 1, true},
	{"Owner", TypeAccountID, 2, true},
	{"Destination", TypeAccountID, 3, true},
	{"Issuer", TypeAccountID, 4, true},
	{"Authorize", TypeAccountID, 5, true},
	{"Unauthorize", TypeAccountID, 6, true},
	{"RegularKey", TypeAccountID, 8, true},

	{"Memo", TypeSTObject, 10, true},
	{"SignerEntry", TypeSTObject, 11, true},
	{"Signer", TypeSTObject, 16, true},

	{"Signers", TypeSTArray, 3, false},
	{"SignerEntries", TypeSTArray, 4, true},
	{"Memos", TypeSTArray, 9, true},

	{"TickSize", TypeUInt8, 16, true},
}

var transactionTypeTable = map[string]int32{
	"Payment":              0,
	"EscrowCreate":         1,
	"EscrowFinish":         2,
	"AccountSet":           3,
	"EscrowCancel":         4,
	"SetRegularKey":        5,
	"OfferCreate":          7,
	"OfferCancel":          8,
	"TicketCreate":         10,
	"SignerListSet":        12,
	"PaymentChannelCreate": 13,
	"PaymentChannelFund":   14,
	"PaymentChannelClaim":  15,
	"CheckCreate":          16,
	"CheckCash":            17,
	"CheckCancel":          18,
	"DepositPreauth":       19,
	"TrustSet":             20,
	"AccountDelete":        21,
}

func load() *Definitions {
	d := &Definitions{
		Fields:           make(map[string]*FieldInstance, len(fieldTable)),
		FieldIDNameMap:   make(map[FieldHeader]string, len(fieldTable)),
		TransactionTypes: transactionTypeTable,
		transactionNames: make(map[int32]string, len(transactionTypeTable)),
	}
	for _, f := range fieldTable {
		header := FieldHeader{TypeCode: f.typ, FieldCode: f.nth}
		d.Fields[f.name] = &FieldInstance{
			FieldName:      f.name,
			Type:           typeNames[f.typ],
			Nth:            f.nth,
			IsVLEncoded:    f.typ == TypeBlob || f.typ == TypeAccountID,
			IsSerialized:   true,
			IsSigningField: f.signing,
			FieldHeader:    &header,
		}
		d.FieldIDNameMap[header] = f.name
	}
	for name, code := range transactionTypeTable {
		d.transactionNames[code] = name
	}
	return d
}

// GetFieldInstanceByFieldName looks a field up by name.
func (d *Definitions) GetFieldInstanceByFieldName(fieldName string) (*FieldInstance, error) {
	fi, ok := d.Fields[fieldName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, fieldName)
	}
	return fi, nil
}

// GetFieldNameByFieldHeader looks a field up by its wire header.
func (d *Definitions) GetFieldNameByFieldHeader(fh FieldHeader) (string, error) {
	name, ok := d.FieldIDNameMap[fh]
	if !ok {
		return "", fmt.Errorf("%w: type %d nth %d", ErrUnknownField, fh.TypeCode, fh.FieldCode)
	}
	return name, nil
}

// GetFieldHeaderByFieldName returns the header of a named field.
func (d *Definitions) GetFieldHeaderByFieldName(fieldName string) (*FieldHeader, error) {
	fi, err := d.GetFieldInstanceByFieldName(fieldName)
	if err != nil {
		return nil, err
	}
	return fi.FieldHeader, nil
}

// CreateFieldHeader builds a header value.
func (d *Definitions) CreateFieldHeader(typecode, fieldcode int32) FieldHeader {
	return FieldHeader{TypeCode: typecode, FieldCode: fieldcode}
}

// GetTransactionTypeCodeByName maps "Payment" to 0 and so on.
func (d *Definitions) GetTransactionTypeCodeByName(name string) (int32, error) {
	code, ok := d.TransactionTypes[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTransactionType, name)
	}
	return code, nil
}

// GetTransactionTypeNameByCode is the inverse of GetTransactionTypeCodeByName.
func (d *Definitions) GetTransactionTypeNameByCode(code int32) (string, error) {
	name, ok := d.transactionNames[code]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownTransactionType, code)
	}
	return name, nil
}

// SortFields orders field names canonically. Unknown names sort last.
func (d *Definitions) SortFields(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		a, aok := d.Fields[names[i]]
		b, bok := d.Fields[names[j]]
		switch {
		case !aok:
			return false
		case !bok:
			return true
		default:
			return a.Ordinal() < b.Ordinal()
		}
	})
}
