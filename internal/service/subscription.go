package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient"
)

// streamQueueSize is how many ledger events may wait for one stream's
// handler. A stream that falls further behind is ended.
const streamQueueSize = 16

// subscription ties one WaitValidation call to one ledger listener. The
// listener is removed exactly once, by whichever of the stream handler or the
// dispatcher notices the end first.
type subscription struct {
	ctx    context.Context
	client ledgerclient.LedgerClient
	log    *zap.Logger

	events chan ledgerclient.LedgerEvent
	done   chan struct{}

	// overflowed is set before done is closed when the queue was full
	overflowed atomic.Bool

	mu       sync.Mutex
	listener ledgerclient.ListenerID
	once     sync.Once
}

func subscribe(ctx context.Context, client ledgerclient.LedgerClient, logger *zap.Logger) *subscription {
	sub := &subscription{
		ctx:    ctx,
		client: client,
		log:    logger.With(zap.String("subscription", uuid.NewString())),
		events: make(chan ledgerclient.LedgerEvent, streamQueueSize),
		done:   make(chan struct{}),
	}
	sub.mu.Lock()
	sub.listener = client.AddLedgerListener(sub.deliver)
	sub.mu.Unlock()
	sub.log.Debug("stream opened")
	return sub
}

// deliver runs on the ledger client's dispatcher and never blocks it. A
// cancelled stream is torn down here instead of being handed the event, and
// so is one whose queue is full.
func (s *subscription) deliver(ev ledgerclient.LedgerEvent) {
	if s.ctx.Err() != nil {
		s.close()
		return
	}
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.events <- ev:
	default:
		s.overflowed.Store(true)
		if s.close() {
			s.log.Warn("stream is not keeping up, closing it",
				zap.Uint32("ledger_version", ev.LedgerVersion),
				zap.Int("queued", streamQueueSize),
			)
		}
	}
}

// ended reports whether the dispatcher already closed the subscription.
func (s *subscription) ended() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// close removes the listener on first call and reports whether it did.
func (s *subscription) close() bool {
	removed := false
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		id := s.listener
		s.mu.Unlock()
		s.client.RemoveLedgerListener(id)
		removed = true
	})
	return removed
}
