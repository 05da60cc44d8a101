package app

import (
	"encoding/binary"
	"fmt"
	"testing"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/sigs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"golang.org/x/crypto/ed25519"
)

const chainID = "quorum-test-1"

type account struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

func newAccount() account {
	pub, priv := quorumtest.NewKey()
	return account{pub: pub, priv: priv}
}

func (a account) address() quorum.Address {
	return sigs.KeyCondition(a.pub).Address()
}

type testApp struct {
	t      *testing.T
	app    *app.Node
	height int64
}

func newTestApp(t *testing.T, genesis string) *testApp {
	t.Helper()
	a, err := Application(Name, Stack(prometheus.NewRegistry()), TxDecoder, "", false)
	require.NoError(t, err)
	a.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: []byte(genesis)})
	ta := &testApp{t: t, app: a}
	ta.beginBlock()
	return ta
}

func (ta *testApp) beginBlock() {
	ta.height++
	ta.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{
			ChainID: chainID,
			Height:  ta.height,
			Time:    time.Date(2019, 6, 1, 0, 0, int(ta.height), 0, time.UTC),
		},
	})
}

func (ta *testApp) commit() {
	ta.app.EndBlock(abci.RequestEndBlock{Height: ta.height})
	ta.app.Commit()
	ta.beginBlock()
}

// deliver signs the message with all given accounts and delivers it.
func (ta *testApp) deliver(msg quorum.Msg, signers ...account) abci.ResponseDeliverTx {
	ta.t.Helper()
	tx := &Tx{Msg: msg}
	for _, s := range signers {
		seq, err := sigs.NextNonce(ta.app.DeliverStore(), s.address())
		require.NoError(ta.t, err)
		sig, err := sigs.SignTx(s.priv, tx, chainID, seq)
		require.NoError(ta.t, err)
		tx.Signatures = append(tx.Signatures, sig)
	}
	raw, err := tx.Marshal()
	require.NoError(ta.t, err)
	return ta.app.DeliverTx(raw)
}

func (ta *testApp) mustDeliver(msg quorum.Msg, signers ...account) abci.ResponseDeliverTx {
	ta.t.Helper()
	res := ta.deliver(msg, signers...)
	require.EqualValues(ta.t, 0, res.Code, res.Log)
	return res
}

func (ta *testApp) query(path string, data []byte) []quorum.Model {
	ta.t.Helper()
	res := ta.app.Query(abci.RequestQuery{Path: path, Data: data})
	require.EqualValues(ta.t, 0, res.Code, res.Log)

	var keys, values app.ResultSet
	require.NoError(ta.t, proto.Unmarshal(res.Key, &keys))
	require.NoError(ta.t, proto.Unmarshal(res.Value, &values))
	models, err := app.JoinResults(&keys, &values)
	require.NoError(ta.t, err)
	return models
}

func (ta *testApp) balance(addr quorum.Address) coin.Coins {
	ta.t.Helper()
	models := ta.query("/balances", addr)
	if len(models) == 0 {
		return nil
	}
	var b cash.Balance
	require.NoError(ta.t, proto.Unmarshal(models[0].Value, &b))
	return coin.Coins(b.Coins)
}

func TestMultisigWalletLifecycle(t *testing.T) {
	alice := newAccount()
	bob := newAccount()
	carol := newAccount()
	dave := newAccount()

	ta := newTestApp(t, fmt.Sprintf(`{
		"conf": {"cash": {"native_ticker": "IOV"}},
		"cash": [{"address": %q, "coins": ["1000 IOV"]}]
	}`, alice.address()))

	res := ta.mustDeliver(&multisig.CreateWalletMsg{
		Signers:   []quorum.Address{alice.address(), bob.address(), carol.address()},
		Threshold: 2,
		Nonce:     1,
	}, alice)
	walletID := res.Data
	require.Equal(t, multisig.WalletID(alice.address(), 1), walletID)
	custody := multisig.CustodyCondition(walletID).Address()

	ta.mustDeliver(&cash.SendMsg{
		Source:      alice.address(),
		Destination: custody,
		Amount:      coin.NewCoinp(500, "IOV"),
	}, alice)

	res = ta.mustDeliver(&multisig.CreateProposalMsg{
		WalletID:    walletID,
		Destination: dave.address(),
		Amount:      100,
	}, bob)
	proposalID := binary.BigEndian.Uint64(res.Data)
	assert.EqualValues(t, 0, proposalID)

	ta.mustDeliver(&multisig.ApproveProposalMsg{WalletID: walletID, ProposalID: proposalID}, bob)

	execute := &multisig.ExecuteProposalMsg{WalletID: walletID, ProposalID: proposalID}
	res = ta.deliver(execute, alice)
	assert.Equal(t, multisig.ErrInsufficientApprovals.ABCICode(), res.Code, res.Log)

	// A non signer cannot approve.
	res = ta.deliver(&multisig.ApproveProposalMsg{WalletID: walletID, ProposalID: proposalID}, dave)
	assert.Equal(t, multisig.ErrNotASigner.ABCICode(), res.Code, res.Log)

	ta.mustDeliver(&multisig.ApproveProposalMsg{WalletID: walletID, ProposalID: proposalID}, carol)
	ta.mustDeliver(execute, alice)

	res = ta.deliver(execute, alice)
	assert.Equal(t, multisig.ErrProposalAlreadyExecuted.ABCICode(), res.Code, res.Log)

	ta.commit()

	assert.Equal(t, coin.Coins{coin.NewCoinp(100, "IOV")}, ta.balance(dave.address()))
	assert.Equal(t, coin.Coins{coin.NewCoinp(400, "IOV")}, ta.balance(custody))
	assert.Equal(t, coin.Coins{coin.NewCoinp(500, "IOV")}, ta.balance(alice.address()))

	proposals := ta.query("/proposals?prefix", walletID)
	require.Len(t, proposals, 1)
	var p multisig.Proposal
	require.NoError(t, proto.Unmarshal(proposals[0].Value, &p))
	assert.True(t, p.Executed)
	assert.Equal(t, []quorum.Address{bob.address(), carol.address()}, p.Approvals)

	wallets := ta.query("/wallets", walletID)
	require.Len(t, wallets, 1)
	var w multisig.Wallet
	require.NoError(t, proto.Unmarshal(wallets[0].Value, &w))
	assert.EqualValues(t, 1, w.ProposalCount)
}

func TestUpdateWalletRequiresAllSigners(t *testing.T) {
	alice := newAccount()
	bob := newAccount()
	carol := newAccount()

	ta := newTestApp(t, `{"conf": {"cash": {"native_ticker": "IOV"}}}`)

	res := ta.mustDeliver(&multisig.CreateWalletMsg{
		Signers:   []quorum.Address{alice.address(), bob.address()},
		Threshold: 1,
		Nonce:     3,
	}, alice)
	walletID := res.Data

	update := &multisig.UpdateWalletMsg{
		WalletID:           walletID,
		Signers:            []quorum.Address{alice.address(), carol.address()},
		Threshold:          2,
		AllSignersApproved: true,
	}
	res = ta.deliver(update, alice)
	assert.Equal(t, multisig.ErrNotAllSignersApproved.ABCICode(), res.Code, res.Log)

	ta.mustDeliver(update, alice, bob)
	ta.commit()

	wallets := ta.query("/wallets", walletID)
	require.Len(t, wallets, 1)
	var w multisig.Wallet
	require.NoError(t, proto.Unmarshal(wallets[0].Value, &w))
	assert.Equal(t, update.Signers, w.Signers)
	assert.EqualValues(t, 2, w.Threshold)
}

func TestSignatureRequired(t *testing.T) {
	alice := newAccount()
	ta := newTestApp(t, `{"conf": {"cash": {"native_ticker": "IOV"}}}`)

	tx := &Tx{Msg: &multisig.CreateWalletMsg{
		Signers:   []quorum.Address{alice.address()},
		Threshold: 1,
	}}
	raw, err := tx.Marshal()
	require.NoError(t, err)
	res := ta.app.DeliverTx(raw)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code, res.Log)

	// Replayed transaction is rejected.
	sig, err := sigs.SignTx(alice.priv, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	raw, err = tx.Marshal()
	require.NoError(t, err)
	res = ta.app.DeliverTx(raw)
	require.EqualValues(t, 0, res.Code, res.Log)
	res = ta.app.DeliverTx(raw)
	assert.Equal(t, sigs.ErrInvalidSequence.ABCICode(), res.Code, res.Log)

	res = ta.app.DeliverTx([]byte("garbage"))
	assert.NotEqual(t, uint32(0), res.Code)
}
