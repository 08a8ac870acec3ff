package ledgerclient

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	xtesting "github.com/LeJamon/goXRPLGateway/internal/testing"
)

func newTestClient(t *testing.T, node *xtesting.FakeNode, mutate ...func(*Config)) *Client {
	t.Helper()
	cfg := DefaultConfig()
	cfg.URL = node.URL()
	cfg.RequestTimeout = 5 * time.Second
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { _ = c.Disconnect() })
	return c
}

func u32(v uint32) *uint32 { return &v }
func str(v string) *string { return &v }

func TestConnect(t *testing.T) {
	node := xtesting.NewFakeNode(t)
	c := newTestClient(t, node)

	assert.True(t, c.IsConnected())
	assert.Equal(t, 1, node.Subscribers())

	v, err := c.GetLedgerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, xtesting.GenesisLedger, v)

	// a second Connect reuses the session
	require.NoError(t, c.Connect(context.Background()))
	assert.Equal(t, 1, node.Calls("subscribe"))
}

func TestConnectUnreachable(t *testing.T) {
	c, err := New(Config{URL: "ws://127.0.0.1:1", HandshakeTimeout: time.Second}, nil)
	require.NoError(t, err)

	err = c.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotConnected))
	assert.False(t, c.IsConnected())
}

func TestConnectDoesNotBlockReaders(t *testing.T) {
	// accepts connections but never answers the handshake
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := lis.Accept()
		if err == nil {
			accepted <- conn
		}
	}()
	t.Cleanup(func() {
		lis.Close()
		select {
		case conn := <-accepted:
			conn.Close()
		default:
		}
	})

	c, err := New(Config{URL: "ws://" + lis.Addr().String(), HandshakeTimeout: 2 * time.Second}, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dialed := make(chan error, 1)
	go func() { dialed <- c.Connect(ctx) }()

	conn := <-accepted
	accepted <- conn

	answered := make(chan struct{})
	go func() {
		c.IsConnected()
		<-c.SessionDone()
		close(answered)
	}()
	select {
	case <-answered:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("IsConnected blocked while dialing")
	}

	cancel()
	assert.ErrorIs(t, <-dialed, ErrNotConnected)
}

func TestNewRequiresURL(t *testing.T) {
	_, err := New(Config{}, nil)
	assert.Error(t, err)
}

func TestGetAccountInfo(t *testing.T) {
	node := xtesting.NewFakeNode(t)
	alice := xtesting.NewAccount("alice")
	node.SetAccount(alice.Address, xtesting.AccountState{
		Balance:           xtesting.XRP(1000) + 5,
		Sequence:          23,
		OwnerCount:        2,
		PreviousTxnID:     strings.Repeat("AB", 32),
		PreviousTxnLgrSeq: 88,
	})
	c := newTestClient(t, node)

	info, err := c.GetAccountInfo(context.Background(), alice.Address)
	require.NoError(t, err)
	assert.Equal(t, &AccountInfo{
		Sequence:                                  23,
		XRPBalance:                                "1000.000005",
		OwnerCount:                                2,
		PreviousAffectingTransactionID:            strings.Repeat("AB", 32),
		PreviousAffectingTransactionLedgerVersion: 88,
	}, info)

	// X-addresses resolve to the same account root
	byX, err := c.GetAccountInfo(context.Background(), alice.XAddress(u32(7)))
	require.NoError(t, err)
	assert.Equal(t, info, byX)
}

func TestGetAccountInfoErrors(t *testing.T) {
	node := xtesting.NewFakeNode(t)
	c := newTestClient(t, node)

	_, err := c.GetAccountInfo(context.Background(), xtesting.NewAccount("nobody").Address)
	require.Error(t, err)
	le, ok := AsLedgerError(err)
	require.True(t, ok)
	assert.Equal(t, NameRippled, le.Name)
	assert.Equal(t, "Account not found.", le.Message)
	require.NotNil(t, le.Data)
	assert.Equal(t, "actNotFound", le.Data.Error)
	assert.Equal(t, 19, le.Data.ErrorCode)
	assert.True(t, errors.Is(err, ErrRippled))

	_, err = c.GetAccountInfo(context.Background(), "not-an-address")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, 1, node.Calls("account_info"))
}

func TestPrepareTransactionAutofill(t *testing.T) {
	node := xtesting.NewFakeNode(t)
	alice := xtesting.NewAccount("alice")
	bob := xtesting.NewAccount("bob")
	node.Fund(alice, xtesting.XRP(1000))
	c := newTestClient(t, node)

	prepared, err := c.PrepareTransaction(context.Background(), Transaction{
		TransactionType: "Payment",
		Account:         alice.Address,
		Amount:          "10500000",
		Destination:     bob.Address,
	}, Instructions{})
	require.NoError(t, err)

	var tx map[string]any
	require.NoError(t, json.Unmarshal([]byte(prepared.TxJSON), &tx))
	assert.Equal(t, "Payment", tx["TransactionType"])
	assert.Equal(t, alice.Address, tx["Account"])
	assert.Equal(t, bob.Address, tx["Destination"])
	assert.Equal(t, "10500000", tx["Amount"])
	assert.Equal(t, "12", tx["Fee"])
	assert.EqualValues(t, 2147483648, tx["Flags"])
	assert.EqualValues(t, 1, tx["Sequence"])
	assert.EqualValues(t, xtesting.GenesisLedger+3, tx["LastLedgerSequence"])

	assert.Equal(t, "0.000012", prepared.Instructions.Fee)
	assert.Equal(t, uint32(1), prepared.Instructions.Sequence)
	require.NotNil(t, prepared.Instructions.MaxLedgerVersion)
	assert.Equal(t, xtesting.GenesisLedger+3, *prepared.Instructions.MaxLedgerVersion)
}

func TestPrepareTransactionInstructions(t *testing.T) {
	node := xtesting.NewFakeNode(t)
	alice := xtesting.NewAccount("alice")
	bob := xtesting.NewAccount("bob")
	c := newTestClient(t, node)
	payment := Transaction{TransactionType: "Payment", Account: alice.Address, Amount: "1", Destination: bob.Address}

	t.Run("explicit values skip the node", func(t *testing.T) {
		prepared, err := c.PrepareTransaction(context.Background(), payment, Instructions{
			Fee:              str("0.0001"),
			Sequence:         u32(7),
			MaxLedgerVersion: u32(0),
		})
		require.NoError(t, err)

		var tx map[string]any
		require.NoError(t, json.Unmarshal([]byte(prepared.TxJSON), &tx))
		assert.Equal(t, "100", tx["Fee"])
		assert.EqualValues(t, 7, tx["Sequence"])
		assert.NotContains(t, tx, "LastLedgerSequence")
		assert.Nil(t, prepared.Instructions.MaxLedgerVersion)
		assert.Equal(t, 0, node.Calls("server_info"))
		assert.Equal(t, 0, node.Calls("account_info"))
	})

	t.Run("offset", func(t *testing.T) {
		prepared, err := c.PrepareTransaction(context.Background(), payment, Instructions{
			Fee:                    str("0.00001"),
			Sequence:               u32(1),
			MaxLedgerVersionOffset: u32(10),
		})
		require.NoError(t, err)
		assert.Equal(t, xtesting.GenesisLedger+10, *prepared.Instructions.MaxLedgerVersion)
	})

	t.Run("explicit fee is paid per signature", func(t *testing.T) {
		prepared, err := c.PrepareTransaction(context.Background(), payment, Instructions{
			Fee:          str("0.00001"),
			Sequence:     u32(1),
			SignersCount: u32(2),
		})
		require.NoError(t, err)
		assert.Equal(t, "0.00003", prepared.Instructions.Fee)
	})

	t.Run("both ledger bounds", func(t *testing.T) {
		_, err := c.PrepareTransaction(context.Background(), payment, Instructions{
			MaxLedgerVersion:       u32(200),
			MaxLedgerVersionOffset: u32(3),
		})
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("fee above max", func(t *testing.T) {
		_, err := c.PrepareTransaction(context.Background(), payment, Instructions{
			Fee:    str("3"),
			MaxFee: str("2"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds max")
	})

	t.Run("bad destination", func(t *testing.T) {
		bad := payment
		bad.Destination = "rNOPE"
		_, err := c.PrepareTransaction(context.Background(), bad, Instructions{})
		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestPrepareTransactionMultisignFee(t *testing.T) {
	node := xtesting.NewFakeNode(t)
	alice := xtesting.NewAccount("alice")
	node.Fund(alice, xtesting.XRP(100))
	node.SetFees("0.00001", 2)
	c := newTestClient(t, node)

	prepared, err := c.PrepareTransaction(context.Background(), Transaction{
		TransactionType: "AccountSet",
		Account:         alice.Address,
	}, Instructions{SignersCount: u32(3)})
	require.NoError(t, err)
	// 10 drops × 2 load × 1.2 cushion × 4 signatures
	assert.Equal(t, "0.000096", prepared.Instructions.Fee)
}

func TestPrepareTransactionXAddressTags(t *testing.T) {
	node := xtesting.NewFakeNode(t)
	alice := xtesting.NewAccount("alice")
	bob := xtesting.NewAccount("bob")
	node.Fund(alice, xtesting.XRP(100))
	c := newTestClient(t, node)

	prepared, err := c.PrepareTransaction(context.Background(), Transaction{
		TransactionType: "Payment",
		Account:         alice.XAddress(u32(12)),
		Amount:          "1000",
		Destination:     bob.XAddress(u32(34)),
	}, Instructions{})
	require.NoError(t, err)

	var tx map[string]any
	require.NoError(t, json.Unmarshal([]byte(prepared.TxJSON), &tx))
	assert.Equal(t, alice.Address, tx["Account"])
	assert.EqualValues(t, 12, tx["SourceTag"])
	assert.Equal(t, bob.Address, tx["Destination"])
	assert.EqualValues(t, 34, tx["DestinationTag"])
}

// preparePayment prepares and signs a drops payment.
func preparePayment(t *testing.T, c *Client, from, to *xtesting.Account, drops string) *SignResult {
	t.Helper()
	prepared, err := c.PrepareTransaction(context.Background(), Transaction{
		TransactionType: "Payment",
		Account:         from.Address,
		Amount:          drops,
		Destination:     to.Address,
	}, Instructions{})
	require.NoError(t, err)

	signed, err := c.Sign(prepared.TxJSON, from.Secret, SignOptions{})
	require.NoError(t, err)
	return signed
}

func TestSubmitAndGetTransaction(t *testing.T) {
	node := xtesting.NewFakeNode(t)
	alice := xtesting.NewAccount("alice")
	bob := xtesting.NewAccount("bob")
	node.Fund(alice, xtesting.XRP(1000))
	c := newTestClient(t, node)
	ctx := context.Background()

	signed := preparePayment(t, c, alice, bob, "10500000")
	submitted, err := c.Submit(ctx, signed.SignedTransaction)
	require.NoError(t, err)
	assert.Equal(t, "tesSUCCESS", submitted.ResultCode)
	assert.Equal(t, "The transaction was applied. Only final in a validated ledger.", submitted.ResultMessage)

	_, err = c.GetTransaction(ctx, signed.ID, TransactionOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "has not been validated yet")

	closed := node.CloseLedger()
	require.Eventually(t, func() bool {
		v, err := c.GetLedgerVersion(ctx)
		return err == nil && v == closed
	}, 5*time.Second, 10*time.Millisecond)

	tx, err := c.GetTransaction(ctx, signed.ID, TransactionOptions{MinLedgerVersion: closed})
	require.NoError(t, err)
	assert.Equal(t, "payment", tx.Type)
	assert.Equal(t, alice.Address, tx.Address)
	assert.Equal(t, signed.ID, tx.ID)
	assert.Equal(t, "tesSUCCESS", tx.Outcome.Result)
	assert.Equal(t, closed, tx.Outcome.LedgerVersion)
	assert.Equal(t, "0.000012", tx.Outcome.Fee)
	assert.NotEmpty(t, tx.Outcome.Timestamp)
	assert.Contains(t, string(tx.Raw), `"TransactionType":"Payment"`)

	// served from the cache
	calls := node.Calls("tx")
	_, err = c.GetTransaction(ctx, strings.ToLower(signed.ID), TransactionOptions{})
	require.NoError(t, err)
	assert.Equal(t, calls, node.Calls("tx"))

	bobState, ok := node.Account(bob.Address)
	require.True(t, ok)
	assert.Equal(t, uint64(10_500_000), bobState.Balance)

	// the same blob again is a past sequence
	again, err := c.Submit(ctx, signed.SignedTransaction)
	require.NoError(t, err)
	assert.Equal(t, "tefPAST_SEQ", again.ResultCode)
}

func TestSubmitValidation(t *testing.T) {
	node := xtesting.NewFakeNode(t)
	c := newTestClient(t, node)

	_, err := c.Submit(context.Background(), "")
	assert.True(t, errors.Is(err, ErrValidation))
	_, err = c.Submit(context.Background(), "zz")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, 0, node.Calls("submit"))
}

func TestGetTransactionNotFound(t *testing.T) {
	node := xtesting.NewFakeNode(t)
	c := newTestClient(t, node)
	ctx := context.Background()
	unknown := strings.Repeat("0A", 32)

	t.Run("full history", func(t *testing.T) {
		_, err := c.GetTransaction(ctx, unknown, TransactionOptions{MinLedgerVersion: 50})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Equal(t, "NotFoundError: Transaction not found", err.Error())
	})

	t.Run("pending ledger", func(t *testing.T) {
		_, err := c.GetTransaction(ctx, unknown, TransactionOptions{MinLedgerVersion: xtesting.GenesisLedger + 1})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPendingLedgerVersion))
	})

	t.Run("missing history", func(t *testing.T) {
		node.SetCompleteLedgers("90-100")
		t.Cleanup(func() { node.SetCompleteLedgers("") })

		_, err := c.GetTransaction(ctx, unknown, TransactionOptions{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingLedgerHistory))
		assert.Equal(t, "MissingLedgerHistoryError: Server is missing ledger history in the specified range", err.Error())
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := c.GetTransaction(ctx, "ABC", TransactionOptions{})
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := c.GetTransaction(ctx, unknown, TransactionOptions{MinLedgerVersion: 10, MaxLedgerVersion: u32(5)})
		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestLedgerListenersInOrder(t *testing.T) {
	node := xtesting.NewFakeNode(t)
	c := newTestClient(t, node)

	got := make(chan uint32, 8)
	id := c.AddLedgerListener(func(ev LedgerEvent) { got <- ev.LedgerVersion })
	assert.Equal(t, 1, c.ListenerCount())

	for range 3 {
		node.CloseLedger()
	}
	for i := uint32(1); i <= 3; i++ {
		select {
		case v := <-got:
			assert.Equal(t, xtesting.GenesisLedger+i, v)
		case <-time.After(5 * time.Second):
			t.Fatalf("ledger event %d not delivered", i)
		}
	}

	assert.True(t, c.RemoveLedgerListener(id))
	assert.False(t, c.RemoveLedgerListener(id))
	assert.Equal(t, 0, c.ListenerCount())
}

func TestSessionEndsOnDrop(t *testing.T) {
	node := xtesting.NewFakeNode(t)
	c := newTestClient(t, node)
	done := c.SessionDone()

	node.DropConnections()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("session did not end")
	}
	assert.False(t, c.IsConnected())

	_, err := c.GetAccountInfo(context.Background(), xtesting.NewAccount("alice").Address)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotConnected))
	assert.Equal(t, "NotConnectedError: websocket was closed", err.Error())

	// reconnecting starts a new session
	require.NoError(t, c.Connect(context.Background()))
	assert.NotEqual(t, done, c.SessionDone())
}

func TestRequestTimeout(t *testing.T) {
	node := xtesting.NewFakeNode(t)
	release := make(chan struct{})
	node.Handle("server_info", func(map[string]any) (any, *xtesting.ErrorReply) {
		<-release
		return map[string]any{}, nil
	})
	c := newTestClient(t, node, func(cfg *Config) { cfg.RequestTimeout = 50 * time.Millisecond })
	t.Cleanup(func() { close(release) })

	_, err := c.PrepareTransaction(context.Background(), Transaction{
		TransactionType: "AccountSet",
		Account:         xtesting.NewAccount("alice").Address,
	}, Instructions{Sequence: u32(1)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
}

func TestDisconnect(t *testing.T) {
	node := xtesting.NewFakeNode(t)
	c := newTestClient(t, node)

	require.NoError(t, c.Disconnect())
	assert.False(t, c.IsConnected())
	require.NoError(t, c.Disconnect())

	_, err := c.GetLedgerVersion(context.Background())
	assert.True(t, errors.Is(err, ErrNotConnected))
}
