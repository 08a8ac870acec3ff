package testing

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	binarycodec "github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec"
)

// GenesisLedger is the validated ledger a FakeNode starts at.
const GenesisLedger uint32 = 100

// rippleEpoch is 2000-01-01T00:00:00Z.
const rippleEpoch = 946684800

// ErrorReply is an error body as rippled returns it.
type ErrorReply struct {
	Error   string
	Code    int
	Message string
}

// Handler answers one command. A nil reply means success with result.
type Handler func(req map[string]any) (result any, reply *ErrorReply)

// AccountState is the account root a FakeNode reports for an address.
type AccountState struct {
	Balance           uint64
	Sequence          uint32
	OwnerCount        uint32
	PreviousTxnID     string
	PreviousTxnLgrSeq uint32
}

type fakeTx struct {
	json      map[string]any
	hash      string
	ledger    uint32
	index     uint32
	validated bool
	result    string
}

type fakeConn struct {
	ws         *websocket.Conn
	writeMu    sync.Mutex
	subscribed bool
}

func (c *fakeConn) send(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.ws.WriteJSON(v)
}

// FakeNode is an in-process rippled WebSocket endpoint. Its ledger only
// moves when CloseLedger is called.
type FakeNode struct {
	t        *testing.T
	srv      *httptest.Server
	upgrader websocket.Upgrader

	mu              sync.Mutex
	ledger          uint32
	firstLedger     uint32
	completeLedgers string
	baseFeeXRP      string
	loadFactor      float64
	reserveBaseXRP  string
	reserveIncXRP   string
	accounts        map[string]*AccountState
	txs             map[string]*fakeTx
	pending         []string
	handlers        map[string]Handler
	calls           map[string]int
	conns           map[*fakeConn]struct{}
}

// NewFakeNode starts a node that is shut down when the test ends.
func NewFakeNode(t *testing.T) *FakeNode {
	t.Helper()
	n := &FakeNode{
		t:              t,
		upgrader:       websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		ledger:         GenesisLedger,
		firstLedger:    1,
		baseFeeXRP:     "0.00001",
		loadFactor:     1,
		reserveBaseXRP: "10",
		reserveIncXRP:  "2",
		accounts:       make(map[string]*AccountState),
		txs:            make(map[string]*fakeTx),
		handlers:       make(map[string]Handler),
		calls:          make(map[string]int),
		conns:          make(map[*fakeConn]struct{}),
	}
	n.srv = httptest.NewServer(http.HandlerFunc(n.serveWS))
	t.Cleanup(n.Close)
	return n
}

// URL returns the ws:// endpoint.
func (n *FakeNode) URL() string {
	return "ws" + strings.TrimPrefix(n.srv.URL, "http")
}

// Close drops every connection and stops the server.
func (n *FakeNode) Close() {
	n.DropConnections()
	n.srv.Close()
}

// DropConnections closes every open socket without a close handshake.
func (n *FakeNode) DropConnections() {
	n.mu.Lock()
	conns := make([]*fakeConn, 0, len(n.conns))
	for c := range n.conns {
		conns = append(conns, c)
	}
	n.mu.Unlock()
	for _, c := range conns {
		c.ws.Close()
	}
}

// Fund creates or tops up an account.
func (n *FakeNode) Fund(a *Account, drops uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if st, ok := n.accounts[a.Address]; ok {
		st.Balance += drops
		return
	}
	n.accounts[a.Address] = &AccountState{Balance: drops, Sequence: 1}
}

// SetAccount replaces the account root of address.
func (n *FakeNode) SetAccount(address string, st AccountState) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.accounts[address] = &st
}

// Account returns a copy of the account root of address.
func (n *FakeNode) Account(address string) (AccountState, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	st, ok := n.accounts[address]
	if !ok {
		return AccountState{}, false
	}
	return *st, true
}

// SetFees sets the validated base fee and the load factor.
func (n *FakeNode) SetFees(baseFeeXRP string, loadFactor float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.baseFeeXRP = baseFeeXRP
	n.loadFactor = loadFactor
}

// SetCompleteLedgers overrides the complete_ledgers server_info reports.
func (n *FakeNode) SetCompleteLedgers(s string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completeLedgers = s
}

// Handle overrides the answer to cmd.
func (n *FakeNode) Handle(cmd string, h Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[cmd] = h
}

// Calls reports how many times cmd was received.
func (n *FakeNode) Calls(cmd string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[cmd]
}

// LedgerIndex returns the last validated ledger.
func (n *FakeNode) LedgerIndex() uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.ledger
}

// Subscribers reports the number of connections on the ledger stream.
func (n *FakeNode) Subscribers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for c := range n.conns {
		if c.subscribed {
			count++
		}
	}
	return count
}

// CloseLedger validates the pending transactions into a new ledger and
// publishes it to subscribers. It returns the new ledger index.
func (n *FakeNode) CloseLedger() uint32 {
	n.mu.Lock()
	n.ledger++
	seq := n.ledger
	for i, hash := range n.pending {
		tx := n.txs[hash]
		tx.ledger = seq
		tx.index = uint32(i)
		tx.validated = true
		n.apply(tx)
	}
	txnCount := len(n.pending)
	n.pending = nil

	event := n.ledgerHeader(seq)
	event["type"] = "ledgerClosed"
	event["txn_count"] = txnCount

	var subs []*fakeConn
	for c := range n.conns {
		if c.subscribed {
			subs = append(subs, c)
		}
	}
	n.mu.Unlock()

	for _, c := range subs {
		_ = c.send(event)
	}
	return seq
}

// apply moves the fee and a drops Amount. Callers hold n.mu.
func (n *FakeNode) apply(tx *fakeTx) {
	sender, ok := n.accounts[fmt.Sprint(tx.json["Account"])]
	if !ok {
		return
	}
	fee, _ := strconv.ParseUint(fmt.Sprint(tx.json["Fee"]), 10, 64)
	sender.Balance -= min(fee, sender.Balance)
	sender.PreviousTxnID = tx.hash
	sender.PreviousTxnLgrSeq = tx.ledger

	if tx.json["TransactionType"] != "Payment" {
		return
	}
	amount, ok := tx.json["Amount"].(string)
	if !ok {
		return
	}
	drops, err := strconv.ParseUint(amount, 10, 64)
	if err != nil || drops > sender.Balance {
		return
	}
	sender.Balance -= drops
	dest := fmt.Sprint(tx.json["Destination"])
	if st, ok := n.accounts[dest]; ok {
		st.Balance += drops
	} else {
		n.accounts[dest] = &AccountState{Balance: drops, Sequence: tx.ledger}
	}
	n.accounts[dest].PreviousTxnID = tx.hash
	n.accounts[dest].PreviousTxnLgrSeq = tx.ledger
}

func (n *FakeNode) ledgerHeader(seq uint32) map[string]any {
	return map[string]any{
		"ledger_index":      seq,
		"ledger_hash":       fmt.Sprintf("%064X", seq),
		"ledger_time":       uint32(time.Now().Unix() - rippleEpoch),
		"fee_base":          10,
		"fee_ref":           10,
		"reserve_base":      10_000_000,
		"reserve_inc":       2_000_000,
		"validated_ledgers": fmt.Sprintf("%d-%d", n.firstLedger, seq),
	}
}

func (n *FakeNode) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := n.upgrader.Upgrade(w, r, nil)
	if err != nil {
		n.t.Logf("fake node: upgrade failed: %v", err)
		return
	}
	c := &fakeConn{ws: ws}
	n.mu.Lock()
	n.conns[c] = struct{}{}
	n.mu.Unlock()

	defer func() {
		n.mu.Lock()
		delete(n.conns, c)
		n.mu.Unlock()
		ws.Close()
	}()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		var req map[string]any
		if err := json.Unmarshal(data, &req); err != nil {
			continue
		}
		if err := c.send(n.respond(c, req)); err != nil {
			return
		}
	}
}

func (n *FakeNode) respond(c *fakeConn, req map[string]any) map[string]any {
	cmd, _ := req["command"].(string)

	n.mu.Lock()
	n.calls[cmd]++
	h, overridden := n.handlers[cmd]
	n.mu.Unlock()

	var (
		result any
		reply  *ErrorReply
	)
	if overridden {
		result, reply = h(req)
	} else {
		result, reply = n.builtin(c, cmd, req)
	}

	resp := map[string]any{"id": req["id"], "type": "response"}
	if reply != nil {
		resp["status"] = "error"
		resp["error"] = reply.Error
		resp["error_code"] = reply.Code
		resp["error_message"] = reply.Message
		resp["request"] = req
		return resp
	}
	resp["status"] = "success"
	resp["result"] = result
	return resp
}

func (n *FakeNode) builtin(c *fakeConn, cmd string, req map[string]any) (any, *ErrorReply) {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch cmd {
	case "subscribe":
		c.subscribed = true
		return n.ledgerHeader(n.ledger), nil
	case "ledger":
		return map[string]any{
			"ledger_index": n.ledger,
			"ledger_hash":  fmt.Sprintf("%064X", n.ledger),
			"validated":    true,
		}, nil
	case "server_info":
		return n.serverInfo(), nil
	case "account_info":
		return n.accountInfo(req)
	case "submit":
		return n.submit(req)
	case "tx":
		return n.tx(req)
	default:
		return nil, &ErrorReply{Error: "unknownCmd", Code: 32, Message: "Unknown method."}
	}
}

func (n *FakeNode) serverInfo() map[string]any {
	complete := n.completeLedgers
	if complete == "" {
		complete = fmt.Sprintf("%d-%d", n.firstLedger, n.ledger)
	}
	return map[string]any{
		"info": map[string]any{
			"build_version":    "2.2.0",
			"complete_ledgers": complete,
			"load_factor":      n.loadFactor,
			"server_state":     "full",
			"validated_ledger": map[string]any{
				"age":              1,
				"base_fee_xrp":     json.Number(n.baseFeeXRP),
				"hash":             fmt.Sprintf("%064X", n.ledger),
				"reserve_base_xrp": json.Number(n.reserveBaseXRP),
				"reserve_inc_xrp":  json.Number(n.reserveIncXRP),
				"seq":              n.ledger,
			},
		},
	}
}

func (n *FakeNode) accountInfo(req map[string]any) (any, *ErrorReply) {
	address, _ := req["account"].(string)
	st, ok := n.accounts[address]
	if !ok {
		return nil, &ErrorReply{Error: "actNotFound", Code: 19, Message: "Account not found."}
	}
	return map[string]any{
		"account_data": map[string]any{
			"Account":           address,
			"Balance":           strconv.FormatUint(st.Balance, 10),
			"Flags":             0,
			"LedgerEntryType":   "AccountRoot",
			"OwnerCount":        st.OwnerCount,
			"PreviousTxnID":     st.PreviousTxnID,
			"PreviousTxnLgrSeq": st.PreviousTxnLgrSeq,
			"Sequence":          st.Sequence,
		},
		"ledger_index": n.ledger,
		"validated":    true,
	}, nil
}

func (n *FakeNode) submit(req map[string]any) (any, *ErrorReply) {
	blob, _ := req["tx_blob"].(string)
	raw, err := hex.DecodeString(blob)
	if err != nil {
		return nil, &ErrorReply{Error: "invalidParams", Code: 31, Message: "Invalid parameters."}
	}
	txJSON, err := binarycodec.DecodeBytes(raw)
	if err != nil {
		return nil, &ErrorReply{Error: "invalidTransaction", Code: 0, Message: "fails local checks: " + err.Error()}
	}
	hash := binarycodec.TransactionID(raw)
	txJSON["hash"] = hash

	result, message := n.engineResult(txJSON)
	if result == "tesSUCCESS" {
		n.txs[hash] = &fakeTx{json: txJSON, hash: hash, result: result}
		n.pending = append(n.pending, hash)
		n.accounts[fmt.Sprint(txJSON["Account"])].Sequence++
	}
	return map[string]any{
		"accepted":               result == "tesSUCCESS",
		"engine_result":          result,
		"engine_result_code":     engineCodes[result],
		"engine_result_message":  message,
		"tx_blob":                blob,
		"tx_json":                txJSON,
		"validated_ledger_index": n.ledger,
	}, nil
}

var engineCodes = map[string]int{
	"tesSUCCESS":    0,
	"tefPAST_SEQ":   -190,
	"terPRE_SEQ":    -92,
	"terNO_ACCOUNT": -96,
	"tefMAX_LEDGER": -186,
}

func (n *FakeNode) engineResult(txJSON map[string]any) (string, string) {
	st, ok := n.accounts[fmt.Sprint(txJSON["Account"])]
	if !ok {
		return "terNO_ACCOUNT", "The source account does not exist."
	}
	seq, _ := txJSON["Sequence"].(uint32)
	switch {
	case seq < st.Sequence:
		return "tefPAST_SEQ", "This sequence number has already passed."
	case seq > st.Sequence:
		return "terPRE_SEQ", "Missing/inapplicable prior transaction."
	}
	if last, ok := txJSON["LastLedgerSequence"].(uint32); ok && last <= n.ledger {
		return "tefMAX_LEDGER", "Ledger sequence too high."
	}
	return "tesSUCCESS", "The transaction was applied. Only final in a validated ledger."
}

func (n *FakeNode) tx(req map[string]any) (any, *ErrorReply) {
	id, _ := req["transaction"].(string)
	tx, ok := n.txs[strings.ToUpper(id)]
	if !ok {
		return nil, &ErrorReply{Error: "txnNotFound", Code: 29, Message: "Transaction not found."}
	}
	out := make(map[string]any, len(tx.json)+4)
	for k, v := range tx.json {
		out[k] = v
	}
	out["validated"] = tx.validated
	if tx.validated {
		out["ledger_index"] = tx.ledger
		out["date"] = uint32(time.Now().Unix() - rippleEpoch)
		out["meta"] = map[string]any{
			"TransactionIndex":  tx.index,
			"TransactionResult": tx.result,
		}
	}
	return out, nil
}
