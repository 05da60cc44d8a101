package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	const chainID = "deco-rate"
	ctx := quorum.WithChainID(context.Background(), chainID)
	pub, priv := quorumtest.NewKey()
	tx := NewStdTx([]byte("art"))

	sig0, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	runners := map[string]func(db quorum.KVStore, tx quorum.Tx, h *SigCheckHandler) error{
		"check": func(db quorum.KVStore, tx quorum.Tx, h *SigCheckHandler) error {
			_, err := NewDecorator().Check(ctx, db, tx, h)
			return err
		},
		"deliver": func(db quorum.KVStore, tx quorum.Tx, h *SigCheckHandler) error {
			_, err := NewDecorator().Deliver(ctx, db, tx, h)
			return err
		},
	}

	for name, run := range runners {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			h := new(SigCheckHandler)

			tx.Signatures = nil
			assert.True(t, errors.ErrUnauthorized.Is(run(db, tx, h)))
			assert.Nil(t, h.Signers)

			tx.Signatures = []*StdSignature{sig0}
			require.NoError(t, run(db, tx, h))
			assert.Equal(t, []quorum.Condition{KeyCondition(pub)}, h.Signers)

			h.Signers = nil
			assert.True(t, ErrInvalidSequence.Is(run(db, tx, h)))
			assert.Nil(t, h.Signers)

			tx.Signatures = []*StdSignature{sig1}
			require.NoError(t, run(db, tx, h))
			assert.Equal(t, []quorum.Condition{KeyCondition(pub)}, h.Signers)

			unsigned := &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "test/unsigned"}}
			assert.True(t, errors.ErrUnauthorized.Is(run(db, unsigned, h)))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	pub, _ := quorumtest.NewKey()
	cond := KeyCondition(pub)
	other := quorumtest.NewCondition()

	ctx := context.Background()
	var auth Authenticate
	assert.Empty(t, auth.GetConditions(ctx))
	assert.False(t, auth.HasAddress(ctx, cond.Address()))

	ctx = withSigners(ctx, []quorum.Condition{cond})
	assert.Equal(t, []quorum.Condition{cond}, auth.GetConditions(ctx))
	assert.True(t, auth.HasAddress(ctx, cond.Address()))
	assert.False(t, auth.HasAddress(ctx, other.Address()))
}
