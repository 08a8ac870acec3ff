// Package testing provides test infrastructure for the gateway.
//
// # Overview
//
// The package provides:
//   - FakeNode: an in-process rippled WebSocket endpoint with just enough
//     ledger state to answer account_info, server_info, ledger, submit and
//     tx, and to publish the ledger stream on demand
//   - Account: deterministic test accounts with family seeds
//   - Amount helpers: XRP and drops conversions for fixtures
//   - Assertions: helpers for gRPC status checks
//
// # Basic Usage
//
//	func TestSubmit(t *testing.T) {
//	    node := xtesting.NewFakeNode(t)
//	    alice := xtesting.NewAccount("alice")
//	    node.Fund(alice, xtesting.XRP(1000))
//
//	    client := newClient(t, node.URL())
//	    ...
//	    node.CloseLedger()
//	}
package testing
