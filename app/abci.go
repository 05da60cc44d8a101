package app

import (
	"fmt"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

var _ abci.Application = (*Node)(nil)

// Info reports the last committed height and app hash.
func (n *Node) Info(abci.RequestInfo) abci.ResponseInfo {
	id, err := n.db.LatestVersion()
	if err != nil {
		panic(err)
	}
	n.logger.Info("state loaded", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseInfo{
		Data:             n.name,
		Version:          quorum.Version(),
		LastBlockHeight:  id.Version,
		LastBlockAppHash: id.Hash,
	}
}

// SetOption is not supported.
func (n *Node) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// InitChain loads the app_state of the genesis file.
func (n *Node) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := n.initChain(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock records height and time of the block for the handlers.
func (n *Node) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := quorum.WithHeight(n.base, req.Header.GetHeight())
	n.block = quorum.WithBlockTime(ctx, req.Header.GetTime().UTC())
	return abci.ResponseBeginBlock{}
}

// CheckTx runs a transaction against the check state.
func (n *Node) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, ctx, err := n.prepare(raw, "check_tx")
	if err == nil {
		var res *quorum.CheckResult
		if res, err = n.handler.Check(ctx, n.check, tx); err == nil {
			return abci.ResponseCheckTx{Data: res.Data, Log: res.Log}
		}
	}
	code, log := n.failure("check", err)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

// DeliverTx runs a transaction against the deliver state.
func (n *Node) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, ctx, err := n.prepare(raw, "deliver_tx")
	if err == nil {
		var res *quorum.DeliverResult
		if res, err = n.handler.Deliver(ctx, n.deliver, tx); err == nil {
			return abci.ResponseDeliverTx{Data: res.Data, Log: res.Log, Tags: res.Tags}
		}
	}
	code, log := n.failure("deliver", err)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

func (n *Node) prepare(raw []byte, call string) (quorum.Tx, quorum.Context, error) {
	tx, err := n.decodeTx(raw)
	if err != nil {
		return nil, nil, err
	}
	ctx := quorum.WithLogInfo(n.block, "call", call, "path", quorum.GetPath(tx))
	return tx, ctx, nil
}

// decodeTx turns a panicking decoder into an error.
func (n *Node) decodeTx(raw []byte) (tx quorum.Tx, err error) {
	defer errors.Recover(&err)
	return n.decode(raw)
}

func (n *Node) failure(step string, err error) (uint32, string) {
	code, log := errors.ABCIInfo(err, n.debug)
	return code, fmt.Sprintf("cannot %s tx: %s", step, log)
}

// EndBlock changes neither validators nor consensus params.
func (n *Node) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit persists the block and returns the new app hash.
func (n *Node) Commit() abci.ResponseCommit {
	id, err := n.commit()
	if err != nil {
		panic(err)
	}
	n.logger.Debug("block committed", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// Query reads the last committed state. The path names a registered
// query handler and may end with "?<mod>", for example
// "/proposals?prefix". Key and Value of the response hold ResultSets of
// equal length.
func (n *Node) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, quorum.KeyQueryMod
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	h := n.queries.Handler(path)
	if h == nil {
		return queryFailure(errors.Wrapf(errors.ErrNotFound, "no query handler for %q", req.Path))
	}
	id, err := n.db.LatestVersion()
	if err != nil {
		return queryFailure(err)
	}
	models, err := h.Query(n.db.CacheWrap(), mod, req.Data)
	if err != nil {
		return queryFailure(err)
	}
	keys, values, err := encodeResults(models)
	if err != nil {
		return queryFailure(err)
	}
	return abci.ResponseQuery{Height: id.Version, Key: keys, Value: values}
}

func queryFailure(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}
