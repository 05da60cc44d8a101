package app

import (
	"context"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Node is the quorumd abci application. It holds the committed state
// together with the check and deliver caches of the block in progress,
// decodes incoming transactions and hands them to the handler stack.
//
// ABCI calls that carry no user input (InitChain, BeginBlock, Commit...)
// panic on failure, as tendermint offers no way to report an error there.
type Node struct {
	name   string
	logger log.Logger
	debug  bool

	db      quorum.CommitKVStore
	deliver quorum.KVCacheWrap
	check   quorum.KVCacheWrap

	genesis quorum.Initializer
	queries quorum.QueryRouter
	decode  quorum.TxDecoder
	handler quorum.Handler

	chainID string
	// base lives as long as the node, block is replaced on BeginBlock.
	base  quorum.Context
	block quorum.Context
}

// NewNode loads the latest version of db and restores the chain id
// saved by a previous InitChain.
func NewNode(name string, db quorum.CommitKVStore, queries quorum.QueryRouter, genesis quorum.Initializer) (*Node, error) {
	if err := db.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load state")
	}
	n := &Node{
		name:    name,
		db:      db,
		deliver: db.CacheWrap(),
		check:   db.CacheWrap(),
		genesis: genesis,
		queries: queries,
		base:    context.Background(),
	}
	n.WithLogger(log.NewNopLogger())

	chainID, err := loadChainID(n.deliver)
	if err != nil {
		return nil, err
	}
	if chainID != "" {
		n.setChainID(chainID)
	}
	version, err := db.LatestVersion()
	if err != nil {
		return nil, errors.Wrap(err, "latest version")
	}
	n.block = quorum.WithHeight(n.base, version.Version)
	return n, nil
}

// WithHandler sets how transactions are decoded and processed. In debug
// mode failed transactions report the full error stack.
func (n *Node) WithHandler(decode quorum.TxDecoder, h quorum.Handler, debug bool) *Node {
	n.decode = decode
	n.handler = h
	n.debug = debug
	return n
}

// WithLogger sets the logger of the node and of every handler context.
func (n *Node) WithLogger(logger log.Logger) *Node {
	n.logger = logger
	n.base = quorum.WithLogger(n.base, logger)
	if n.block != nil {
		n.block = quorum.WithLogger(n.block, logger)
	}
	return n
}

// ChainID is empty until the chain was initialized.
func (n *Node) ChainID() string {
	return n.chainID
}

// DeliverStore is the state transactions of the current block write to.
func (n *Node) DeliverStore() quorum.CacheableKVStore {
	return n.deliver
}

// CheckStore is the scratch state used to check mempool transactions.
func (n *Node) CheckStore() quorum.CacheableKVStore {
	return n.check
}

func (n *Node) setChainID(chainID string) {
	n.chainID = chainID
	n.base = quorum.WithChainID(n.base, chainID)
}

// initChain runs the genesis initializer once, on the first start of
// the chain.
func (n *Node) initChain(chainID string, appState []byte) error {
	if n.chainID != "" {
		return errors.Wrapf(errors.ErrState, "chain %s already initialized", n.chainID)
	}
	if n.genesis == nil {
		return errors.Wrap(errors.ErrState, "no genesis initializer")
	}
	opts, err := parseAppState(appState)
	if err != nil {
		return err
	}
	if err := saveChainID(n.deliver, chainID); err != nil {
		return err
	}
	n.setChainID(chainID)
	return n.genesis.FromGenesis(opts, n.deliver)
}

// commit flushes the deliver cache into a new version and opens fresh
// caches for the next block.
func (n *Node) commit() (quorum.CommitID, error) {
	if err := n.deliver.Write(); err != nil {
		return quorum.CommitID{}, err
	}
	n.check.Discard()
	id, err := n.db.Commit()
	if err != nil {
		return id, err
	}
	n.deliver = n.db.CacheWrap()
	n.check = n.db.CacheWrap()
	return id, nil
}
