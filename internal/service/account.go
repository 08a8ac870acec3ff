// Package service implements the account, address and transaction gRPC
// services on top of a ledger client.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient"
	"github.com/LeJamon/goXRPLGateway/internal/rippleapi"
)

// AccountService answers account queries.
type AccountService struct {
	rippleapi.UnimplementedRippleAccountAPIServer

	client ledgerclient.LedgerClient
	log    *zap.Logger
}

var _ rippleapi.RippleAccountAPIServer = (*AccountService)(nil)

// NewAccountService returns an AccountService reading through client.
func NewAccountService(client ledgerclient.LedgerClient, logger *zap.Logger) *AccountService {
	return &AccountService{client: client, log: named(logger, "account")}
}

func (s *AccountService) GetAccountInfo(ctx context.Context, req *rippleapi.RequestGetAccountInfo) (*rippleapi.ResponseGetAccountInfo, error) {
	if req.Address == "" {
		return nil, callerError("address is required")
	}
	info, err := s.client.GetAccountInfo(ctx, req.Address)
	if err != nil {
		return nil, failed(s.log, "GetAccountInfo", err)
	}
	return toAccountInfoResponse(info), nil
}

func named(logger *zap.Logger, service string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger.With(zap.String("component", "service"), zap.String("service", service))
}
