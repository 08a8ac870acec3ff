package service

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/LeJamon/goXRPLGateway/internal/crypto"
	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient"
	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient/mock"
	"github.com/LeJamon/goXRPLGateway/internal/rippleapi"
	gwtesting "github.com/LeJamon/goXRPLGateway/internal/testing"
)

// newAddressService uses a real client that is never connected; address
// generation and validation are local.
func newAddressService(t *testing.T, cfg AddressConfig) *AddressService {
	t.Helper()
	client, err := ledgerclient.New(ledgerclient.Config{URL: "ws://127.0.0.1:1"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return NewAddressService(client, cfg, zaptest.NewLogger(t))
}

func TestGenerateAddress(t *testing.T) {
	svc := newAddressService(t, AddressConfig{})

	resp, err := svc.GenerateAddress(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	require.NotNil(t, resp.ClassicAddress)
	require.NotNil(t, resp.Address)
	assert.Equal(t, *resp.ClassicAddress, *resp.Address)
	assert.True(t, strings.HasPrefix(*resp.ClassicAddress, "r"))
	assert.True(t, strings.HasPrefix(resp.XAddress, "X"))
	assert.True(t, strings.HasPrefix(resp.Secret, "s"))

	// the secret regenerates the same account
	account := gwtesting.NewAccountFromSeed("generated", resp.Secret)
	assert.Equal(t, *resp.ClassicAddress, account.Address)

	valid, err := svc.IsValidAddress(context.Background(), &rippleapi.RequestIsValidAddress{Address: resp.XAddress})
	require.NoError(t, err)
	assert.True(t, valid.IsValid)
}

func TestGenerateAddressEd25519TestNetwork(t *testing.T) {
	svc := newAddressService(t, AddressConfig{Algorithm: crypto.KeyTypeEd25519, TestNetwork: true})

	resp, err := svc.GenerateXAddress(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.XAddress, "T"))
	assert.True(t, strings.HasPrefix(resp.Secret, "sEd"))
}

func TestGenerateAddressIsRandom(t *testing.T) {
	svc := newAddressService(t, AddressConfig{})

	first, err := svc.GenerateAddress(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	second, err := svc.GenerateAddress(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	assert.NotEqual(t, first.Secret, second.Secret)
	assert.NotEqual(t, *first.ClassicAddress, *second.ClassicAddress)
}

func TestIsValidAddress(t *testing.T) {
	svc := newAddressService(t, AddressConfig{})
	master := gwtesting.MasterAccount()

	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{"classic", master.Address, true},
		{"x-address", master.XAddress(nil), true},
		{"tagged x-address", master.XAddress(u32(12345)), true},
		{"empty", "", false},
		{"garbage", "not an address", false},
		{"bad checksum", master.Address[:len(master.Address)-1] + "x", false},
		{"secret", master.Secret, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := svc.IsValidAddress(context.Background(), &rippleapi.RequestIsValidAddress{Address: tc.address})
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.IsValid)
		})
	}
}

func TestGenerateAddressFailure(t *testing.T) {
	client := mock.NewMockLedgerClient(gomock.NewController(t))
	client.EXPECT().GenerateAddress(ledgerclient.GenerateOptions{Algorithm: crypto.KeyTypeSecp256k1}).
		Return(nil, ledgerclient.NewLedgerError(ledgerclient.ErrValidation, "generate secp256k1 wallet: entropy unavailable"))
	svc := NewAddressService(client, AddressConfig{Algorithm: crypto.KeyTypeSecp256k1}, zaptest.NewLogger(t))

	_, err := svc.GenerateAddress(context.Background(), &emptypb.Empty{})
	gwtesting.RequireInvalidArgument(t, err, "ValidationError: generate secp256k1 wallet")
	assert.Equal(t, KindCaller, KindOf(err))
}
