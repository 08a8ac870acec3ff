package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient"
	"github.com/LeJamon/goXRPLGateway/internal/rippleapi"
)

func TestTransactionTypeNames(t *testing.T) {
	tests := []struct {
		txType rippleapi.EnumTransactionType
		want   string
	}{
		{rippleapi.EnumTransactionType_TX_ACCOUNT_SET, "AccountSet"},
		{rippleapi.EnumTransactionType_TX_ACCOUNT_DELETE, "AccountDelete"},
		{rippleapi.EnumTransactionType_TX_CHECK_CANCEL, "CheckCancel"},
		{rippleapi.EnumTransactionType_TX_CHECK_CASH, "CheckCash"},
		{rippleapi.EnumTransactionType_TX_CHECK_CREATE, "CheckCreate"},
		{rippleapi.EnumTransactionType_TX_DEPOSIT_PREAUTH, "DepositPreauth"},
		{rippleapi.EnumTransactionType_TX_ESCROW_CANCEL, "EscrowCancel"},
		{rippleapi.EnumTransactionType_TX_ESCROW_CREATE, "EscrowCreate"},
		{rippleapi.EnumTransactionType_TX_ESCROW_FINISH, "EscrowFinish"},
		{rippleapi.EnumTransactionType_TX_OFFER_CANCEL, "OfferCancel"},
		{rippleapi.EnumTransactionType_TX_OFFER_CREATE, "OfferCreate"},
		{rippleapi.EnumTransactionType_TX_PAYMENT, "Payment"},
		{rippleapi.EnumTransactionType_TX_PAYMENT_CHANNEL_CLAIM, "PaymentChannelClaim"},
		{rippleapi.EnumTransactionType_TX_PAYMENT_CHANNEL_CREATE, "PaymentChannelCreate"},
		{rippleapi.EnumTransactionType_TX_PAYMENT_CHANNEL_FUND, "PaymentChannelFund"},
		{rippleapi.EnumTransactionType_TX_SET_REGULAR_KEY, "SetRegularKey"},
		{rippleapi.EnumTransactionType_TX_SIGNER_LIST_SET, "SignerListSet"},
		{rippleapi.EnumTransactionType_TX_SINGER_LIST_SET, "SignerListSet"},
		{rippleapi.EnumTransactionType_TX_TRUST_SET, "TrustSet"},
	}
	for _, tc := range tests {
		t.Run(tc.txType.String(), func(t *testing.T) {
			name, ok := transactionTypeName(tc.txType)
			require.True(t, ok)
			assert.Equal(t, tc.want, name)
		})
	}

	_, ok := transactionTypeName(rippleapi.EnumTransactionType(18))
	assert.False(t, ok)
}

func TestToTransactionAmount(t *testing.T) {
	tests := []struct {
		name   string
		txType rippleapi.EnumTransactionType
		amount float64
		want   string
	}{
		{"payment", rippleapi.EnumTransactionType_TX_PAYMENT, 10.5, "10500000"},
		{"zero payment", rippleapi.EnumTransactionType_TX_PAYMENT, 0, "0"},
		{"one drop", rippleapi.EnumTransactionType_TX_PAYMENT, 0.000001, "1"},
		{"account set without amount", rippleapi.EnumTransactionType_TX_ACCOUNT_SET, 0, ""},
		{"escrow with amount", rippleapi.EnumTransactionType_TX_ESCROW_CREATE, 25, "25000000"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tx, err := toTransaction(&rippleapi.RequestPrepareTransaction{
				TxType:        tc.txType,
				SenderAccount: "rSENDER",
				Amount:        tc.amount,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, tx.Amount)
			assert.Equal(t, "rSENDER", tx.Account)
		})
	}
}

func TestToTransactionRejects(t *testing.T) {
	tests := []struct {
		name string
		req  *rippleapi.RequestPrepareTransaction
		want string
	}{
		{
			name: "unknown type",
			req:  &rippleapi.RequestPrepareTransaction{TxType: 99, SenderAccount: "rSENDER"},
			want: "unknown transaction type 99",
		},
		{
			name: "missing sender",
			req:  &rippleapi.RequestPrepareTransaction{TxType: rippleapi.EnumTransactionType_TX_PAYMENT, Amount: 1},
			want: "senderAccount is required",
		},
		{
			name: "negative amount",
			req:  &rippleapi.RequestPrepareTransaction{TxType: rippleapi.EnumTransactionType_TX_PAYMENT, SenderAccount: "rSENDER", Amount: -1},
			want: "amount -1",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := toTransaction(tc.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
			assert.Equal(t, KindCaller, KindOf(err))
		})
	}
}

func TestToInstructionsKeepsPresence(t *testing.T) {
	assert.Equal(t, ledgerclient.Instructions{}, toInstructions(nil))
	assert.Equal(t, ledgerclient.Instructions{}, toInstructions(&rippleapi.Instructions{}))

	in := &rippleapi.Instructions{
		MaxFee:                 strp("2"),
		MaxLedgerVersionOffset: u32(0),
		SignersCount:           u32(3),
	}
	out := toInstructions(in)
	assert.Nil(t, out.Fee)
	assert.Nil(t, out.Sequence)
	assert.Nil(t, out.MaxLedgerVersion)
	require.NotNil(t, out.MaxLedgerVersionOffset)
	assert.Equal(t, uint32(0), *out.MaxLedgerVersionOffset)
	assert.Equal(t, "2", *out.MaxFee)
	assert.Equal(t, uint32(3), *out.SignersCount)

	// the result does not alias the request
	*in.SignersCount = 4
	assert.Equal(t, uint32(3), *out.SignersCount)
}
