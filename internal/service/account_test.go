package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient"
	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient/mock"
	"github.com/LeJamon/goXRPLGateway/internal/rippleapi"
	gwtesting "github.com/LeJamon/goXRPLGateway/internal/testing"
)

func TestGetAccountInfo(t *testing.T) {
	client := mock.NewMockLedgerClient(gomock.NewController(t))
	svc := NewAccountService(client, zaptest.NewLogger(t))
	master := gwtesting.MasterAccount()

	client.EXPECT().GetAccountInfo(gomock.Any(), master.Address).Return(&ledgerclient.AccountInfo{
		Sequence:                                  4,
		XRPBalance:                                "99999999999.99996",
		OwnerCount:                                2,
		PreviousAffectingTransactionID:            testTxID,
		PreviousAffectingTransactionLedgerVersion: 90,
	}, nil)

	resp, err := svc.GetAccountInfo(context.Background(), &rippleapi.RequestGetAccountInfo{Address: master.Address})
	require.NoError(t, err)
	assert.Equal(t, &rippleapi.ResponseGetAccountInfo{
		Sequence:                                  4,
		XrpBalance:                                "99999999999.99996",
		OwnerCount:                                2,
		PreviousAffectingTransactionID:            testTxID,
		PreviousAffectingTransactionLedgerVersion: 90,
	}, resp)
}

func TestGetAccountInfoErrors(t *testing.T) {
	client := mock.NewMockLedgerClient(gomock.NewController(t))
	svc := NewAccountService(client, zaptest.NewLogger(t))

	_, err := svc.GetAccountInfo(context.Background(), &rippleapi.RequestGetAccountInfo{})
	gwtesting.RequireInvalidArgument(t, err, "InvalidRequest: address is required")

	client.EXPECT().GetAccountInfo(gomock.Any(), "rUnfunded").
		Return(nil, ledgerclient.NewNodeError(ledgerclient.NodeError{Error: "actNotFound", ErrorCode: 19, ErrorMessage: "Account not found."}))
	_, err = svc.GetAccountInfo(context.Background(), &rippleapi.RequestGetAccountInfo{Address: "rUnfunded"})
	gwtesting.RequireInvalidArgument(t, err, "RippledError: Account not found.")
	assert.Equal(t, KindLedgerTerminal, KindOf(err))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "caller", KindCaller.String())
	assert.Equal(t, "not_connected", KindNotConnected.String())
	assert.Equal(t, "ledger_retryable", KindLedgerRetryable.String())
	assert.Equal(t, "ledger_terminal", KindLedgerTerminal.String())
	assert.Equal(t, "local", KindLocal.String())
	assert.Equal(t, "unknown", Kind(0).String())
	assert.Equal(t, Kind(0), KindOf(nil))
}
