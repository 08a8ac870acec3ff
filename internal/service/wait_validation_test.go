package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient"
	"github.com/LeJamon/goXRPLGateway/internal/rippleapi"
)

// fakeSource is an event source that counts listener registrations. It
// calls listeners synchronously from emit, like the ledger client's
// dispatcher does.
type fakeSource struct {
	ledgerclient.LedgerClient

	adds    atomic.Int32
	removes atomic.Int32

	mu          sync.Mutex
	nextID      ledgerclient.ListenerID
	listeners   []fakeListener
	sessionDone chan struct{}
}

type fakeListener struct {
	id ledgerclient.ListenerID
	fn ledgerclient.LedgerListener
}

func newFakeSource() *fakeSource {
	return &fakeSource{sessionDone: make(chan struct{})}
}

func (f *fakeSource) AddLedgerListener(fn ledgerclient.LedgerListener) ledgerclient.ListenerID {
	f.adds.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.listeners = append(f.listeners, fakeListener{id: f.nextID, fn: fn})
	return f.nextID
}

func (f *fakeSource) RemoveLedgerListener(id ledgerclient.ListenerID) bool {
	f.removes.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, l := range f.listeners {
		if l.id == id {
			f.listeners = append(f.listeners[:i:i], f.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (f *fakeSource) SessionDone() <-chan struct{} {
	return f.sessionDone
}

func (f *fakeSource) IsConnected() bool {
	return true
}

func (f *fakeSource) emit(version uint32) {
	f.mu.Lock()
	snapshot := append([]fakeListener(nil), f.listeners...)
	f.mu.Unlock()
	for _, l := range snapshot {
		l.fn(ledgerclient.LedgerEvent{LedgerVersion: version})
	}
}

func (f *fakeSource) listenerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

// fakeStream records what the handler sends.
type fakeStream struct {
	grpc.ServerStream

	ctx     context.Context
	sendErr error
	// block, when set, holds every Send until it is closed, like a client
	// that stopped reading
	block    chan struct{}
	attempts atomic.Int32

	mu   sync.Mutex
	sent []uint32
}

func (s *fakeStream) Context() context.Context {
	return s.ctx
}

func (s *fakeStream) Send(m *rippleapi.ResponseWaitValidation) error {
	s.attempts.Add(1)
	if s.block != nil {
		<-s.block
	}
	if s.sendErr != nil {
		return s.sendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, m.LedgerVersion)
	return nil
}

func (s *fakeStream) received() []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uint32(nil), s.sent...)
}

type countingObserver struct {
	opened, sent atomic.Int32
	mu           sync.Mutex
	reasons      []string
}

func (o *countingObserver) StreamOpened()    { o.opened.Add(1) }
func (o *countingObserver) LedgerEventSent() { o.sent.Add(1) }
func (o *countingObserver) StreamClosed(reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reasons = append(o.reasons, reason)
}

// openStream starts WaitValidation and waits for its listener.
func openStream(t *testing.T, svc *TransactionService, src *fakeSource, stream *fakeStream) <-chan error {
	t.Helper()
	before := src.adds.Load()
	done := make(chan error, 1)
	go func() { done <- svc.WaitValidation(&emptypb.Empty{}, stream) }()
	require.Eventually(t, func() bool { return src.adds.Load() == before+1 }, 5*time.Second, time.Millisecond)
	return done
}

func waitDone(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("WaitValidation did not return")
	}
}

func TestWaitValidationDeliversInOrder(t *testing.T) {
	src := newFakeSource()
	obs := &countingObserver{}
	svc := NewTransactionService(src, zaptest.NewLogger(t), WithStreamObserver(obs))
	ctx, cancel := context.WithCancel(context.Background())
	stream := &fakeStream{ctx: ctx}

	done := openStream(t, svc, src, stream)
	for v := uint32(101); v <= 105; v++ {
		src.emit(v)
	}
	require.Eventually(t, func() bool { return len(stream.received()) == 5 }, 5*time.Second, time.Millisecond)

	cancel()
	waitDone(t, done)

	assert.Equal(t, []uint32{101, 102, 103, 104, 105}, stream.received())
	assert.Equal(t, int32(1), src.adds.Load())
	assert.Equal(t, int32(1), src.removes.Load())
	assert.Equal(t, 0, src.listenerCount())

	// nothing is delivered after the stream ended
	src.emit(106)
	assert.Len(t, stream.received(), 5)

	assert.Equal(t, int32(1), obs.opened.Load())
	assert.Equal(t, int32(5), obs.sent.Load())
	assert.Equal(t, []string{"cancelled"}, obs.reasons)
}

func TestWaitValidationCancelBeforeEvent(t *testing.T) {
	src := newFakeSource()
	svc := NewTransactionService(src, zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	stream := &fakeStream{ctx: ctx}

	done := openStream(t, svc, src, stream)
	cancel()
	src.emit(101)
	waitDone(t, done)

	assert.Empty(t, stream.received())
	assert.Equal(t, int32(1), src.adds.Load())
	assert.Equal(t, int32(1), src.removes.Load())
}

func TestWaitValidationCancelConcurrentWithEvent(t *testing.T) {
	for i := 0; i < 100; i++ {
		src := newFakeSource()
		svc := NewTransactionService(src, zaptest.NewLogger(t))
		ctx, cancel := context.WithCancel(context.Background())
		stream := &fakeStream{ctx: ctx}
		done := openStream(t, svc, src, stream)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			cancel()
		}()
		go func() {
			defer wg.Done()
			src.emit(101)
			src.emit(102)
		}()
		wg.Wait()
		waitDone(t, done)

		require.Equal(t, int32(1), src.adds.Load(), "iteration %d", i)
		require.Equal(t, int32(1), src.removes.Load(), "iteration %d", i)
		require.Equal(t, 0, src.listenerCount(), "iteration %d", i)
	}
}

func TestWaitValidationSendFailure(t *testing.T) {
	src := newFakeSource()
	obs := &countingObserver{}
	svc := NewTransactionService(src, zaptest.NewLogger(t), WithStreamObserver(obs))
	stream := &fakeStream{ctx: context.Background(), sendErr: errors.New("transport is closing")}

	done := openStream(t, svc, src, stream)
	src.emit(101)
	waitDone(t, done)

	assert.Equal(t, int32(1), src.removes.Load())
	assert.Equal(t, []string{"send_failed"}, obs.reasons)
}

func TestWaitValidationSessionEnd(t *testing.T) {
	src := newFakeSource()
	obs := &countingObserver{}
	svc := NewTransactionService(src, zaptest.NewLogger(t), WithStreamObserver(obs))
	stream := &fakeStream{ctx: context.Background()}

	done := openStream(t, svc, src, stream)
	close(src.sessionDone)
	waitDone(t, done)

	assert.Equal(t, int32(1), src.removes.Load())
	assert.Equal(t, []string{"session_ended"}, obs.reasons)
}

func TestWaitValidationServiceClose(t *testing.T) {
	src := newFakeSource()
	svc := NewTransactionService(src, zaptest.NewLogger(t))

	first := openStream(t, svc, src, &fakeStream{ctx: context.Background()})
	second := openStream(t, svc, src, &fakeStream{ctx: context.Background()})

	require.NoError(t, svc.Close(context.Background()))
	waitDone(t, first)
	waitDone(t, second)
	assert.Equal(t, int32(2), src.removes.Load())
	assert.Equal(t, 0, src.listenerCount())

	// a closed service ends new streams at once
	require.NoError(t, svc.WaitValidation(&emptypb.Empty{}, &fakeStream{ctx: context.Background()}))
	assert.Equal(t, int32(2), src.adds.Load())
	require.NoError(t, svc.Close(context.Background()))
}

func TestWaitValidationIndependentStreams(t *testing.T) {
	src := newFakeSource()
	svc := NewTransactionService(src, zaptest.NewLogger(t))

	ctxA, cancelA := context.WithCancel(context.Background())
	streamA := &fakeStream{ctx: ctxA}
	streamB := &fakeStream{ctx: context.Background()}
	doneA := openStream(t, svc, src, streamA)
	doneB := openStream(t, svc, src, streamB)

	src.emit(101)
	require.Eventually(t, func() bool {
		return len(streamA.received()) == 1 && len(streamB.received()) == 1
	}, 5*time.Second, time.Millisecond)

	cancelA()
	waitDone(t, doneA)

	src.emit(102)
	require.Eventually(t, func() bool { return len(streamB.received()) == 2 }, 5*time.Second, time.Millisecond)
	assert.Equal(t, []uint32{101}, streamA.received())
	assert.Equal(t, []uint32{101, 102}, streamB.received())

	require.NoError(t, svc.Close(context.Background()))
	waitDone(t, doneB)
	assert.Equal(t, int32(2), src.removes.Load())
}

func TestSubscriptionCloseOnce(t *testing.T) {
	src := newFakeSource()
	sub := subscribe(context.Background(), src, zaptest.NewLogger(t))

	var wg sync.WaitGroup
	var removed atomic.Int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sub.close() {
				removed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), removed.Load())
	assert.Equal(t, int32(1), src.removes.Load())

	// a late event never blocks the dispatcher
	sub.deliver(ledgerclient.LedgerEvent{LedgerVersion: 1})
}

// emitAll emits versions from another goroutine and fails the test if the
// listeners hold it up.
func emitAll(t *testing.T, src *fakeSource, versions ...uint32) {
	t.Helper()
	emitted := make(chan struct{})
	go func() {
		defer close(emitted)
		for _, v := range versions {
			src.emit(v)
		}
	}()
	select {
	case <-emitted:
	case <-time.After(5 * time.Second):
		t.Fatal("dispatcher blocked by a stream")
	}
}

func TestWaitValidationStuckStreamDoesNotStallOthers(t *testing.T) {
	src := newFakeSource()
	svc := NewTransactionService(src, zaptest.NewLogger(t))

	stuck := &fakeStream{ctx: context.Background(), block: make(chan struct{})}
	healthy := &fakeStream{ctx: context.Background()}
	doneStuck := openStream(t, svc, src, stuck)
	doneHealthy := openStream(t, svc, src, healthy)

	emitAll(t, src, 101, 102, 103)
	require.Eventually(t, func() bool { return len(healthy.received()) == 3 }, 5*time.Second, time.Millisecond)
	assert.Equal(t, []uint32{101, 102, 103}, healthy.received())

	// the stuck stream catches up once its client reads again
	close(stuck.block)
	require.Eventually(t, func() bool { return len(stuck.received()) == 3 }, 5*time.Second, time.Millisecond)
	assert.Equal(t, []uint32{101, 102, 103}, stuck.received())

	require.NoError(t, svc.Close(context.Background()))
	waitDone(t, doneStuck)
	waitDone(t, doneHealthy)
	assert.Equal(t, int32(2), src.removes.Load())
}

func TestWaitValidationSlowConsumerIsClosed(t *testing.T) {
	src := newFakeSource()
	obs := &countingObserver{}
	svc := NewTransactionService(src, zaptest.NewLogger(t), WithStreamObserver(obs))

	stuck := &fakeStream{ctx: context.Background(), block: make(chan struct{})}
	healthy := &fakeStream{ctx: context.Background()}
	doneStuck := openStream(t, svc, src, stuck)
	doneHealthy := openStream(t, svc, src, healthy)

	// one more than the queue plus the event held in Send; the healthy
	// stream drains each event before the next
	var versions []uint32
	for v := uint32(1); v <= streamQueueSize+2; v++ {
		versions = append(versions, v)
		emitAll(t, src, v)
		require.Eventually(t, func() bool { return len(healthy.received()) == len(versions) }, 5*time.Second, time.Millisecond)
	}

	assert.Equal(t, int32(1), src.removes.Load())
	assert.Equal(t, 1, src.listenerCount())
	assert.Equal(t, versions, healthy.received())

	close(stuck.block)
	waitDone(t, doneStuck)
	assert.LessOrEqual(t, len(stuck.received()), 1)
	assert.Equal(t, int32(1), src.removes.Load())

	require.NoError(t, svc.Close(context.Background()))
	waitDone(t, doneHealthy)
	assert.ElementsMatch(t, []string{"slow_consumer", "shutdown"}, obs.reasons)
}

func TestTransactionServiceCloseIsBounded(t *testing.T) {
	src := newFakeSource()
	svc := NewTransactionService(src, zaptest.NewLogger(t))

	stuck := &fakeStream{ctx: context.Background(), block: make(chan struct{})}
	done := openStream(t, svc, src, stuck)
	emitAll(t, src, 101)
	require.Eventually(t, func() bool { return stuck.attempts.Load() == 1 }, 5*time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, svc.Close(ctx), context.DeadlineExceeded)

	// the handler returns once the send is released
	close(stuck.block)
	waitDone(t, done)
	assert.Equal(t, int32(1), src.removes.Load())
	require.NoError(t, svc.Close(context.Background()))
}
