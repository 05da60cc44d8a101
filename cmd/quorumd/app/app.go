/*
Package app links together all the various components
to construct the quorumd application.
*/
package app

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store/iavl"
	"github.com/iov-one/quorum/x"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/sigs"
	"github.com/iov-one/quorum/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is reported by the abci Info call.
const Name = "quorumd"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery. Metrics are collected only when a
// registerer is given.
func Chain(reg prometheus.Registerer) app.Decorators {
	var metrics *utils.Metrics
	if reg != nil {
		metrics = utils.NewMetrics("quorum", reg)
	}
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the cash and multisig handlers.
func Router(authFn x.Authenticator) app.Router {
	r := app.NewRouter()
	ctrl := cash.NewController(cash.NewBalanceBucket())
	cash.RegisterRoutes(r, authFn, ctrl)
	multisig.RegisterRoutes(r, authFn, ctrl)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/balances", "/auth", "/wallets" and "/proposals"
func QueryRouter() quorum.QueryRouter {
	r := quorum.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		multisig.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain, the handler of a Node.
func Stack(reg prometheus.Registerer) quorum.Handler {
	authFn := Authenticator()
	return Chain(reg).WithHandler(Router(authFn))
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() quorum.Initializer {
	return quorum.ChainInitializers(
		cash.Initializer{},
		multisig.Initializer{},
	)
}

// Application opens the state at dbPath, in memory when empty, and
// serves it with handler h.
func Application(name string, h quorum.Handler,
	tx quorum.TxDecoder, dbPath string, debug bool) (*app.Node, error) {

	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create database instance")
	}
	node, err := app.NewNode(name, kv, QueryRouter(), Initializers())
	if err != nil {
		return nil, err
	}
	return node.WithHandler(tx, h, debug), nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (*app.Node, error) {
	dbPath := filepath.Join(home, "quorum.db")
	node, err := Application(Name, Stack(reg), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	return node.WithLogger(logger), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (quorum.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
