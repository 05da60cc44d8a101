package sigs

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignBytes(t *testing.T) {
	const chainID = "test-sign-bytes"
	base, err := SignBytes([]byte("foobar"), chainID, 17)
	require.NoError(t, err)
	assert.Len(t, base, 64)

	cases := map[string]struct {
		payload []byte
		chainID string
		seq     int64
		wantErr *errors.Error
		same    bool
	}{
		"same input": {
			payload: []byte("foobar"),
			chainID: chainID,
			seq:     17,
			same:    true,
		},
		"other payload": {
			payload: []byte("blast"),
			chainID: chainID,
			seq:     17,
		},
		"other chain": {
			payload: []byte("foobar"),
			chainID: chainID + "2",
			seq:     17,
		},
		"next sequence": {
			payload: []byte("foobar"),
			chainID: chainID,
			seq:     18,
		},
		"negative sequence": {
			payload: []byte("foobar"),
			chainID: chainID,
			seq:     -1,
			wantErr: ErrInvalidSequence,
		},
		"invalid chain id": {
			payload: []byte("foobar"),
			chainID: "bad",
			seq:     1,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := SignBytes(tc.payload, tc.chainID, tc.seq)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.same, string(base) == string(got))
			}
		})
	}
}

func TestVerify(t *testing.T) {
	const chainID = "emo-music-2345"
	payload := []byte("my special valentine")
	tx := NewStdTx(payload)
	pub, priv := quorumtest.NewKey()
	signer := KeyCondition(pub)

	sign := func(seq int64) *StdSignature {
		sig, err := SignTx(priv, tx, chainID, seq)
		require.NoError(t, err)
		return sig
	}

	// Steps run in order against one store.
	steps := []struct {
		name    string
		sig     *StdSignature
		payload []byte
		chainID string
		wantErr *errors.Error
		nonce   int64
	}{
		{name: "sequence ahead", sig: sign(1), payload: payload, chainID: chainID, wantErr: ErrInvalidSequence, nonce: 0},
		{name: "other chain", sig: sign(0), payload: payload, chainID: "other-chain", wantErr: errors.ErrUnauthorized, nonce: 0},
		{name: "other payload", sig: sign(0), payload: []byte("foo"), chainID: chainID, wantErr: errors.ErrUnauthorized, nonce: 0},
		{name: "first", sig: sign(0), payload: payload, chainID: chainID, nonce: 1},
		{name: "replay", sig: sign(0), payload: payload, chainID: chainID, wantErr: ErrInvalidSequence, nonce: 1},
		{name: "second", sig: sign(1), payload: payload, chainID: chainID, nonce: 2},
		{name: "no signature", sig: &StdSignature{PubKey: pub, Sequence: 2}, payload: payload, chainID: chainID, wantErr: errors.ErrUnauthorized, nonce: 2},
		{name: "third", sig: sign(2), payload: payload, chainID: chainID, nonce: 3},
	}

	db := store.MemStore()
	for _, s := range steps {
		got, err := verify(db, s.sig, s.payload, s.chainID)
		if !s.wantErr.Is(err) {
			t.Fatalf("%s: unexpected error: %+v", s.name, err)
		}
		if s.wantErr == nil {
			assert.Equal(t, signer, got, s.name)
		}
		n, err := NextNonce(db, signer.Address())
		require.NoError(t, err)
		assert.Equal(t, s.nonce, n, s.name)
	}
}

func TestVerifyTx(t *testing.T) {
	const chainID = "hot_summer_days"
	db := store.MemStore()
	pub, priv := quorumtest.NewKey()
	pub2, priv2 := quorumtest.NewKey()
	tx := NewStdTx([]byte("hot pepper"))

	conds, err := verifyTx(db, tx, chainID)
	require.NoError(t, err)
	assert.Empty(t, conds)

	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig2, err := SignTx(priv2, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig, sig2}

	conds, err = verifyTx(db, tx, chainID)
	require.NoError(t, err)
	assert.Equal(t, []quorum.Condition{KeyCondition(pub), KeyCondition(pub2)}, conds)

	_, err = verifyTx(db, tx, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))
}
