package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/LeJamon/goXRPLGateway/internal/journal"
	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient"
	"github.com/LeJamon/goXRPLGateway/internal/rippleapi"
)

// StreamObserver is told about WaitValidation streams.
type StreamObserver interface {
	StreamOpened()
	StreamClosed(reason string)
	LedgerEventSent()
}

type nopObserver struct{}

func (nopObserver) StreamOpened()       {}
func (nopObserver) StreamClosed(string) {}
func (nopObserver) LedgerEventSent()    {}

// TransactionService prepares, signs, submits, looks up and combines
// transactions, and streams validated ledger versions.
type TransactionService struct {
	rippleapi.UnimplementedRippleTransactionAPIServer

	client   ledgerclient.LedgerClient
	log      *zap.Logger
	journal  journal.Store
	observer StreamObserver
	now      func() time.Time

	mu      sync.Mutex
	closed  bool
	closing chan struct{}
	streams sync.WaitGroup
}

var _ rippleapi.RippleTransactionAPIServer = (*TransactionService)(nil)

// TransactionOption configures a TransactionService.
type TransactionOption func(*TransactionService)

// WithJournal records submissions and validated outcomes in store.
func WithJournal(store journal.Store) TransactionOption {
	return func(s *TransactionService) { s.journal = store }
}

// WithStreamObserver reports stream lifecycle to o.
func WithStreamObserver(o StreamObserver) TransactionOption {
	return func(s *TransactionService) { s.observer = o }
}

// NewTransactionService returns a TransactionService over client. Without
// options submissions are not journaled and streams are not observed.
func NewTransactionService(client ledgerclient.LedgerClient, logger *zap.Logger, opts ...TransactionOption) *TransactionService {
	s := &TransactionService{
		client:   client,
		log:      named(logger, "transaction"),
		journal:  journal.Nop{},
		observer: nopObserver{},
		now:      time.Now,
		closing:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close ends every open WaitValidation stream and waits for their handlers
// to return, or for ctx to be done. A handler blocked sending to a client
// that stopped reading only returns once the gRPC transport is closed, so
// callers stop the server after Close whatever it returns. Unary calls are
// unaffected.
func (s *TransactionService) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.closing)
	}
	s.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		s.streams.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// enterStream registers a stream handler unless the service is closed.
func (s *TransactionService) enterStream() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.streams.Add(1)
	return true
}

func (s *TransactionService) PrepareTransaction(ctx context.Context, req *rippleapi.RequestPrepareTransaction) (*rippleapi.ResponsePrepareTransaction, error) {
	if !s.client.IsConnected() {
		return nil, failed(s.log, "PrepareTransaction", notConnected())
	}
	tx, err := toTransaction(req)
	if err != nil {
		return nil, failed(s.log, "PrepareTransaction", err)
	}

	prepared, err := s.client.PrepareTransaction(ctx, tx, toInstructions(req.Instructions))
	if err != nil {
		return nil, failed(s.log, "PrepareTransaction", err)
	}
	s.log.Debug("transaction prepared",
		zap.String("type", tx.TransactionType),
		zap.String("account", tx.Account),
		zap.String("fee", prepared.Instructions.Fee),
		zap.Uint32("sequence", prepared.Instructions.Sequence),
	)
	return toPrepareResponse(prepared), nil
}

// SignTransaction signs locally. The secret is used for this call only.
func (s *TransactionService) SignTransaction(ctx context.Context, req *rippleapi.RequestSignTransaction) (*rippleapi.ResponseSignTransaction, error) {
	txJSON, secret, opts, err := toSignArgs(req)
	if err != nil {
		return nil, failed(s.log, "SignTransaction", err)
	}
	signed, err := s.client.Sign(txJSON, secret, opts)
	if err != nil {
		return nil, failed(s.log, "SignTransaction", err)
	}
	s.log.Debug("transaction signed", zap.String("tx_id", signed.ID), zap.Bool("multisign", opts.SignAs != ""))
	return toSignResponse(signed), nil
}

// SubmitTransaction submits a signed blob. The earliest ledger the
// transaction can appear in is the current validated ledger plus one.
func (s *TransactionService) SubmitTransaction(ctx context.Context, req *rippleapi.RequestSubmitTransaction) (*rippleapi.ResponseSubmitTransaction, error) {
	blob, err := toSubmitBlob(req)
	if err != nil {
		return nil, failed(s.log, "SubmitTransaction", err)
	}
	ledgerVersion, err := s.client.GetLedgerVersion(ctx)
	if err != nil {
		return nil, failed(s.log, "SubmitTransaction", err)
	}
	res, err := s.client.Submit(ctx, blob)
	if err != nil {
		return nil, failed(s.log, "SubmitTransaction", err)
	}
	resp, err := toSubmitResponse(res, ledgerVersion)
	if err != nil {
		return nil, failed(s.log, "SubmitTransaction", err)
	}

	txID := submittedID(res)
	s.log.Info("transaction submitted",
		zap.String("tx_id", txID),
		zap.String("result", res.ResultCode),
		zap.Uint32("earliest_ledger_version", resp.EarliestLedgerVersion),
	)
	if txID != "" {
		err := s.journal.RecordSubmission(ctx, journal.Submission{
			TxID:                  txID,
			TxBlob:                blob,
			ResultCode:            res.ResultCode,
			ResultMessage:         res.ResultMessage,
			EarliestLedgerVersion: resp.EarliestLedgerVersion,
			SubmittedAt:           s.now(),
		})
		if err != nil {
			s.log.Warn("journal write failed", zap.String("tx_id", txID), zap.Error(err))
		}
	}
	return resp, nil
}

func submittedID(res *ledgerclient.SubmitResult) string {
	var body struct {
		Hash string `json:"hash"`
	}
	if len(res.TxJSON) == 0 || json.Unmarshal(res.TxJSON, &body) != nil {
		return ""
	}
	return body.Hash
}

// GetTransaction looks up a validated transaction from MinLedgerVersion on.
// The failure's name tells "not validated yet" apart from "not found" and
// "missing history".
func (s *TransactionService) GetTransaction(ctx context.Context, req *rippleapi.RequestGetTransaction) (*rippleapi.ResponseGetTransaction, error) {
	id, opts, err := toTransactionLookup(req)
	if err != nil {
		return nil, failed(s.log, "GetTransaction", err)
	}
	tx, err := s.client.GetTransaction(ctx, id, opts)
	if err != nil {
		return nil, failed(s.log, "GetTransaction", err)
	}
	resp, err := toGetTransactionResponse(tx)
	if err != nil {
		return nil, failed(s.log, "GetTransaction", err)
	}

	err = s.journal.RecordOutcome(ctx, tx.ID, tx.Outcome.LedgerVersion, tx.Outcome.Result)
	if err != nil && !errors.Is(err, journal.ErrNotFound) {
		s.log.Warn("journal write failed", zap.String("tx_id", tx.ID), zap.Error(err))
	}
	return resp, nil
}

func (s *TransactionService) CombineTransaction(ctx context.Context, req *rippleapi.RequestCombineTransaction) (*rippleapi.ResponseCombineTransaction, error) {
	blobs, err := toCombineInputs(req)
	if err != nil {
		return nil, failed(s.log, "CombineTransaction", err)
	}
	combined, err := s.client.Combine(blobs)
	if err != nil {
		return nil, failed(s.log, "CombineTransaction", err)
	}
	resp, err := toCombineResponse(combined)
	if err != nil {
		return nil, failed(s.log, "CombineTransaction", err)
	}
	return resp, nil
}

// WaitValidation streams the version of every ledger validated while the
// stream is open. It only ever ends with a nil error: on cancellation, on a
// failed send, when the stream falls too far behind, when the ledger client
// session ends, or when the service closes.
func (s *TransactionService) WaitValidation(_ *emptypb.Empty, stream rippleapi.RippleTransactionAPI_WaitValidationServer) error {
	if !s.enterStream() {
		return nil
	}
	defer s.streams.Done()

	ctx := stream.Context()
	sub := subscribe(ctx, s.client, s.log)
	s.observer.StreamOpened()
	reason := "cancelled"
	defer func() {
		sub.close()
		s.observer.StreamClosed(reason)
		sub.log.Debug("stream closed", zap.String("reason", reason))
	}()

	sessionDone := s.client.SessionDone()
	for {
		select {
		case ev := <-sub.events:
			if ctx.Err() != nil {
				return nil
			}
			if sub.ended() {
				reason = endReason(sub)
				return nil
			}
			if err := stream.Send(toWaitValidationResponse(ev)); err != nil {
				reason = "send_failed"
				return nil
			}
			s.observer.LedgerEventSent()
		case <-sub.done:
			reason = endReason(sub)
			return nil
		case <-ctx.Done():
			return nil
		case <-sessionDone:
			reason = "session_ended"
			return nil
		case <-s.closing:
			reason = "shutdown"
			return nil
		}
	}
}

func endReason(sub *subscription) string {
	if sub.overflowed.Load() {
		return "slow_consumer"
	}
	return "cancelled"
}
