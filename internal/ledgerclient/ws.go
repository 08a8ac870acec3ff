package ledgerclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Config holds the settings of a Client.
type Config struct {
	// URL is the rippled WebSocket endpoint, e.g. wss://s.altnet.rippletest.net:51233.
	URL string

	RequestTimeout   time.Duration
	HandshakeTimeout time.Duration

	// FeeCushion multiplies the node's current fee when Fee is autofilled.
	FeeCushion float64
	// MaxFeeXRP caps an autofilled fee, per signature.
	MaxFeeXRP string
	// MaxLedgerVersionOffset is added to the validated ledger version to
	// obtain LastLedgerSequence when the caller gives neither bound.
	MaxLedgerVersionOffset uint32

	// MaxFeeDrops rejects signing of transactions with a larger Fee.
	MaxFeeDrops uint64

	TxCacheSize    int
	EventQueueSize int
}

// DefaultConfig returns the settings ripple-lib ships with.
func DefaultConfig() Config {
	return Config{
		URL:                    "wss://s.altnet.rippletest.net:51233",
		RequestTimeout:         20 * time.Second,
		HandshakeTimeout:       10 * time.Second,
		FeeCushion:             1.2,
		MaxFeeXRP:              "2",
		MaxLedgerVersionOffset: 3,
		MaxFeeDrops:            2_000_000,
		TxCacheSize:            1024,
		EventQueueSize:         64,
	}
}

// envelope is any message rippled sends on the socket.
type envelope struct {
	ID     *uint64         `json:"id,omitempty"`
	Type   string          `json:"type"`
	Status string          `json:"status,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	NodeError
}

// Client is a LedgerClient backed by one WebSocket session at a time.
type Client struct {
	cfg    Config
	log    *zap.Logger
	dialer websocket.Dialer

	// connectMu serializes Connect; mu is not held while dialing
	connectMu sync.Mutex

	mu          sync.Mutex
	conn        *websocket.Conn
	pending     map[uint64]chan *envelope
	nextID      uint64
	sessionDone chan struct{}
	readerDone  chan struct{}

	writeMu sync.Mutex

	// ledgerVersion is the last validated ledger seen on the stream.
	ledgerVersion atomic.Uint32

	listeners listenerSet
	txCache   *lru.Cache[string, *TransactionResult]
}

var _ LedgerClient = (*Client)(nil)

// New returns a disconnected client.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("ledger client: url is required")
	}
	if cfg.TxCacheSize <= 0 {
		cfg.TxCacheSize = DefaultConfig().TxCacheSize
	}
	if cfg.EventQueueSize <= 0 {
		cfg.EventQueueSize = DefaultConfig().EventQueueSize
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultConfig().RequestTimeout
	}
	cache, err := lru.New[string, *TransactionResult](cfg.TxCacheSize)
	if err != nil {
		return nil, fmt.Errorf("ledger client: tx cache: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	closed := make(chan struct{})
	close(closed)

	return &Client{
		cfg:         cfg,
		log:         logger.With(zap.String("component", "ledgerclient")),
		dialer:      websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout, Proxy: http.ProxyFromEnvironment},
		pending:     make(map[uint64]chan *envelope),
		sessionDone: closed,
		readerDone:  closed,
		txCache:     cache,
	}, nil
}

// Connect dials the node and subscribes to the ledger stream. It is a no-op
// when already connected.
func (c *Client) Connect(ctx context.Context) error {
	c.connectMu.Lock()
	defer c.connectMu.Unlock()
	if c.IsConnected() {
		return nil
	}

	conn, resp, err := c.dialer.DialContext(ctx, c.cfg.URL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return newError(ErrNotConnected, NameNotConnected, "dial %s: %v", c.cfg.URL, err)
	}

	events := make(chan LedgerEvent, c.cfg.EventQueueSize)
	c.mu.Lock()
	c.conn = conn
	c.sessionDone = make(chan struct{})
	c.readerDone = make(chan struct{})
	go c.readLoop(conn, events, c.readerDone)
	go c.dispatch(events)
	c.mu.Unlock()

	var sub LedgerEvent
	if err := c.request(ctx, map[string]any{"command": "subscribe", "streams": []string{"ledger"}}, &sub); err != nil {
		_ = c.Disconnect()
		return err
	}
	c.ledgerVersion.Store(sub.LedgerVersion)
	c.log.Info("connected", zap.String("url", c.cfg.URL), zap.Uint32("ledger_version", sub.LedgerVersion))
	return nil
}

// Disconnect closes the session and waits for the reader to exit.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	conn := c.conn
	readerDone := c.readerDone
	c.mu.Unlock()
	if conn == nil {
		return nil
	}

	c.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.writeMu.Unlock()
	err := conn.Close()

	<-readerDone
	return err
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *Client) SessionDone() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionDone
}

func (c *Client) AddLedgerListener(fn LedgerListener) ListenerID {
	return c.listeners.add(fn)
}

func (c *Client) RemoveLedgerListener(id ListenerID) bool {
	return c.listeners.remove(id)
}

// ListenerCount reports the number of registered ledger listeners.
func (c *Client) ListenerCount() int {
	return c.listeners.len()
}

func (c *Client) readLoop(conn *websocket.Conn, events chan<- LedgerEvent, done chan struct{}) {
	defer close(done)
	defer close(events)
	defer c.endSession(conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Warn("connection lost", zap.Error(err))
			}
			return
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.log.Warn("unparseable message", zap.Error(err))
			continue
		}

		switch env.Type {
		case "response":
			if env.ID == nil {
				continue
			}
			c.mu.Lock()
			ch, ok := c.pending[*env.ID]
			c.mu.Unlock()
			if ok {
				ch <- &env
			}
		case "ledgerClosed":
			var ev LedgerEvent
			if err := json.Unmarshal(data, &ev); err != nil {
				c.log.Warn("bad ledgerClosed message", zap.Error(err))
				continue
			}
			c.ledgerVersion.Store(ev.LedgerVersion)
			select {
			case events <- ev:
			default:
				c.log.Warn("ledger event dropped, listeners are behind", zap.Uint32("ledger_version", ev.LedgerVersion))
			}
		}
	}
}

// dispatch calls listeners for each event of one session, in order.
func (c *Client) dispatch(events <-chan LedgerEvent) {
	for ev := range events {
		c.listeners.emit(ev)
	}
}

func (c *Client) endSession(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != conn {
		return
	}
	conn.Close()
	c.conn = nil
	close(c.sessionDone)
	c.log.Info("disconnected", zap.Int("pending_requests", len(c.pending)))
}

// request sends one command and decodes its result into out.
func (c *Client) request(ctx context.Context, cmd map[string]any, out any) error {
	c.mu.Lock()
	conn := c.conn
	if conn == nil {
		c.mu.Unlock()
		return notConnectedError()
	}
	c.nextID++
	id := c.nextID
	ch := make(chan *envelope, 1)
	c.pending[id] = ch
	done := c.sessionDone
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	cmd["id"] = id
	c.writeMu.Lock()
	_ = conn.SetWriteDeadline(time.Now().Add(c.cfg.RequestTimeout))
	err := conn.WriteJSON(cmd)
	c.writeMu.Unlock()
	if err != nil {
		return newError(ErrDisconnected, NameDisconnected, "send %v: %v", cmd["command"], err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	var env *envelope
	select {
	case env = <-ch:
	case <-done:
		return newError(ErrDisconnected, NameDisconnected, "websocket closed while waiting for %v", cmd["command"])
	case <-ctx.Done():
		return newError(ErrTimeout, NameTimeout, "%v: %v", cmd["command"], ctx.Err())
	}

	if env.Status == "error" || env.Error != "" {
		return nodeError(env.NodeError)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return newError(ErrResponseFormat, NameResponseFormat, "%v result: %v", cmd["command"], err)
	}
	return nil
}

// GetLedgerVersion returns the most recent validated ledger version.
func (c *Client) GetLedgerVersion(ctx context.Context) (uint32, error) {
	if !c.IsConnected() {
		return 0, notConnectedError()
	}
	if v := c.ledgerVersion.Load(); v != 0 {
		return v, nil
	}
	var res struct {
		LedgerIndex uint32 `json:"ledger_index"`
	}
	if err := c.request(ctx, map[string]any{"command": "ledger", "ledger_index": "validated"}, &res); err != nil {
		return 0, err
	}
	c.ledgerVersion.Store(res.LedgerIndex)
	return res.LedgerIndex, nil
}
