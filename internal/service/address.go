package service

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/LeJamon/goXRPLGateway/internal/crypto"
	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient"
	"github.com/LeJamon/goXRPLGateway/internal/rippleapi"
)

// AddressConfig selects how new addresses are generated.
type AddressConfig struct {
	// Algorithm defaults to secp256k1.
	Algorithm crypto.KeyType
	// TestNetwork encodes X-addresses for the test networks.
	TestNetwork bool
}

// AddressService generates and validates addresses. It never contacts the
// node, and never logs the secrets it hands out.
type AddressService struct {
	rippleapi.UnimplementedRippleAddressAPIServer

	client ledgerclient.LedgerClient
	opts   ledgerclient.GenerateOptions
	log    *zap.Logger
}

var _ rippleapi.RippleAddressAPIServer = (*AddressService)(nil)

// NewAddressService returns an AddressService generating keys per cfg.
func NewAddressService(client ledgerclient.LedgerClient, cfg AddressConfig, logger *zap.Logger) *AddressService {
	return &AddressService{
		client: client,
		opts:   ledgerclient.GenerateOptions{Algorithm: cfg.Algorithm, Test: cfg.TestNetwork},
		log:    named(logger, "address"),
	}
}

func (s *AddressService) GenerateAddress(ctx context.Context, _ *emptypb.Empty) (*rippleapi.ResponseGenerateAddress, error) {
	g, err := s.client.GenerateAddress(s.opts)
	if err != nil {
		return nil, failed(s.log, "GenerateAddress", err)
	}
	s.log.Debug("address generated", zap.String("address", g.ClassicAddress))
	return toGenerateAddressResponse(g), nil
}

func (s *AddressService) GenerateXAddress(ctx context.Context, _ *emptypb.Empty) (*rippleapi.ResponseGenerateXAddress, error) {
	g, err := s.client.GenerateXAddress(s.opts)
	if err != nil {
		return nil, failed(s.log, "GenerateXAddress", err)
	}
	s.log.Debug("x-address generated", zap.String("x_address", g.XAddress))
	return toGenerateXAddressResponse(g), nil
}

// IsValidAddress never fails; anything that is not a well-formed classic or
// X-address is simply invalid.
func (s *AddressService) IsValidAddress(ctx context.Context, req *rippleapi.RequestIsValidAddress) (*rippleapi.ResponseIsValidAddress, error) {
	return &rippleapi.ResponseIsValidAddress{IsValid: s.client.IsValidAddress(req.Address)}, nil
}
