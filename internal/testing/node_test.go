package testing

import (
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, n *FakeNode) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial(n.URL(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func call(t *testing.T, ws *websocket.Conn, req map[string]any) map[string]any {
	t.Helper()
	require.NoError(t, ws.WriteJSON(req))
	var resp map[string]any
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, ws.ReadJSON(&resp))
	return resp
}

func TestAccountDeterministic(t *testing.T) {
	a1 := NewAccount("alice")
	a2 := NewAccount("alice")
	b := NewAccount("bob")

	assert.Equal(t, a1.Address, a2.Address)
	assert.Equal(t, a1.Secret, a2.Secret)
	assert.NotEqual(t, a1.Address, b.Address)
	assert.Equal(t, "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh", MasterAccount().Address)
}

func TestFakeNodeAccountInfo(t *testing.T) {
	n := NewFakeNode(t)
	alice := NewAccount("alice")
	n.Fund(alice, XRP(1000))
	ws := dial(t, n)

	resp := call(t, ws, map[string]any{"id": 1, "command": "account_info", "account": alice.Address})
	require.Equal(t, "success", resp["status"])
	data := resp["result"].(map[string]any)["account_data"].(map[string]any)
	assert.Equal(t, "1000000000", data["Balance"])
	assert.EqualValues(t, 1, data["Sequence"])

	resp = call(t, ws, map[string]any{"id": 2, "command": "account_info", "account": NewAccount("nobody").Address})
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, "actNotFound", resp["error"])
	assert.EqualValues(t, 2, resp["id"])
}

func TestFakeNodeLedgerStream(t *testing.T) {
	n := NewFakeNode(t)
	ws := dial(t, n)

	resp := call(t, ws, map[string]any{"id": 1, "command": "subscribe", "streams": []string{"ledger"}})
	require.Equal(t, "success", resp["status"])
	assert.EqualValues(t, GenesisLedger, resp["result"].(map[string]any)["ledger_index"])
	assert.Equal(t, 1, n.Subscribers())

	seq := n.CloseLedger()
	assert.Equal(t, GenesisLedger+1, seq)

	var ev map[string]any
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, ws.ReadJSON(&ev))
	assert.Equal(t, "ledgerClosed", ev["type"])
	assert.EqualValues(t, seq, ev["ledger_index"])
}

func TestFakeNodeOverride(t *testing.T) {
	n := NewFakeNode(t)
	n.Handle("server_info", func(map[string]any) (any, *ErrorReply) {
		return nil, &ErrorReply{Error: "tooBusy", Code: 9}
	})
	ws := dial(t, n)

	resp := call(t, ws, map[string]any{"id": 7, "command": "server_info"})
	assert.Equal(t, "tooBusy", resp["error"])
	assert.Equal(t, 1, n.Calls("server_info"))

	resp = call(t, ws, map[string]any{"id": 8, "command": "nonsense"})
	assert.Equal(t, "unknownCmd", resp["error"])
}
