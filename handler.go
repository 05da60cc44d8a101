package quorum

import (
	"github.com/tendermint/tendermint/libs/common"
)

// Handler processes the messages routed to it. Check validates a
// transaction for the mempool, Deliver executes it.
type Handler interface {
	Checker
	Deliverer
}

type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around the next handler of a stack, for example to
// authenticate signatures or to roll back a failed transaction.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(path string, h Handler)
}

// CheckResult is returned by a successful Check. Failures are reported
// through the error only.
type CheckResult struct {
	Data []byte
	Log  string
}

// DeliverResult is returned by a successful Deliver.
type DeliverResult struct {
	// Data is for clients, for example the id of a created proposal.
	Data []byte
	Log  string
	// Tags are indexed by tendermint and allow searching transactions.
	Tags []common.KVPair
}
