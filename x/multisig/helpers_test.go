package multisig

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/gconf"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/x/cash"
)

// routes is a minimal registry used to dispatch messages by path.
type routes map[string]quorum.Handler

func (r routes) Handle(path string, h quorum.Handler) {
	r[path] = h
}

// testEnv runs messages against the multisig handlers backed by a memory
// store and the cash ledger.
type testEnv struct {
	t      testing.TB
	db     quorum.CacheableKVStore
	auth   *quorumtest.CtxAuth
	routes routes
	cash   cash.BaseController
	now    time.Time
}

func newTestEnv(t testing.TB) *testEnv {
	return newTestEnvWithTransfer(t, nil)
}

func newTestEnvWithTransfer(t testing.TB, transfer TransferService) *testEnv {
	t.Helper()
	env := &testEnv{
		t:      t,
		db:     store.MemStore(),
		auth:   &quorumtest.CtxAuth{Key: "auth"},
		routes: make(routes),
		cash:   cash.NewController(cash.NewBalanceBucket()),
		now:    time.Now().UTC(),
	}
	if err := gconf.Save(env.db, "cash", &cash.Configuration{NativeTicker: "IOV"}); err != nil {
		t.Fatalf("cannot configure cash: %s", err)
	}
	if transfer == nil {
		transfer = env.cash
	}
	RegisterRoutes(env.routes, env.auth, transfer)
	return env
}

func (env *testEnv) ctx(signers ...quorum.Condition) quorum.Context {
	ctx := quorum.WithBlockTime(context.Background(), env.now)
	return env.auth.SetConditions(ctx, signers...)
}

func (env *testEnv) check(msg quorum.Msg, signers ...quorum.Condition) error {
	_, err := env.routes[msg.Path()].Check(env.ctx(signers...), env.db, &quorumtest.Tx{Msg: msg})
	return err
}

func (env *testEnv) deliver(msg quorum.Msg, signers ...quorum.Condition) (*quorum.DeliverResult, error) {
	return env.routes[msg.Path()].Deliver(env.ctx(signers...), env.db, &quorumtest.Tx{Msg: msg})
}

func (env *testEnv) mustDeliver(msg quorum.Msg, signers ...quorum.Condition) *quorum.DeliverResult {
	env.t.Helper()
	res, err := env.deliver(msg, signers...)
	if err != nil {
		env.t.Fatalf("cannot deliver %s: %+v", msg.Path(), err)
	}
	return res
}

// createWallet creates a wallet funded with the given native amount and
// returns its identifier.
func (env *testEnv) createWallet(creator quorum.Condition, signers []quorum.Condition, threshold uint32, funds uint64) []byte {
	env.t.Helper()
	res := env.mustDeliver(&CreateWalletMsg{
		Signers:   addresses(signers...),
		Threshold: threshold,
		Nonce:     1,
	}, creator)
	if funds > 0 {
		if err := env.cash.IssueCoins(env.db, CustodyCondition(res.Data).Address(), coin.NewCoin(funds, "IOV")); err != nil {
			env.t.Fatalf("cannot fund wallet: %s", err)
		}
	}
	return res.Data
}

func (env *testEnv) createProposal(walletID []byte, creator quorum.Condition, dest quorum.Address, amount uint64) uint64 {
	env.t.Helper()
	before := env.wallet(walletID).ProposalCount
	env.mustDeliver(&CreateProposalMsg{
		WalletID:    walletID,
		Destination: dest,
		Amount:      amount,
	}, creator)
	return before
}

func (env *testEnv) wallet(id []byte) *Wallet {
	env.t.Helper()
	w, err := NewWalletBucket().GetWallet(env.db, id)
	if err != nil {
		env.t.Fatalf("cannot load wallet: %s", err)
	}
	return w
}

func (env *testEnv) proposal(walletID []byte, id uint64) *Proposal {
	env.t.Helper()
	p, err := NewProposalBucket().GetProposal(env.db, walletID, id)
	if err != nil {
		env.t.Fatalf("cannot load proposal: %s", err)
	}
	return p
}

func (env *testEnv) balance(addr quorum.Address) coin.Coins {
	env.t.Helper()
	b, err := env.cash.Balance(env.db, addr)
	if err != nil {
		env.t.Fatalf("cannot load balance: %s", err)
	}
	return b
}

func addresses(conds ...quorum.Condition) []quorum.Address {
	res := make([]quorum.Address, len(conds))
	for i, c := range conds {
		res[i] = c.Address()
	}
	return res
}

func iov(n uint64) coin.Coins {
	if n == 0 {
		return nil
	}
	return coin.Coins{coin.NewCoinp(n, "IOV")}
}
