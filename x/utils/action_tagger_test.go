package utils_test

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/common"
)

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		handler quorum.Handler
		tx      quorum.Tx
		err     *errors.Error
		tags    []common.KVPair
	}{
		"simple call": {
			handler: &quorumtest.Handler{},
			tx:      &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "multisig/approve_proposal"}},
			tags:    []common.KVPair{stringTag(utils.ActionKey, "multisig/approve_proposal")},
		},
		"passes through error": {
			handler: &quorumtest.Handler{DeliverErr: errors.ErrHuman},
			tx:      &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "multisig/approve_proposal"}},
			err:     errors.ErrHuman,
		},
		"invalid transaction is rejected early": {
			handler: &quorumtest.Handler{},
			tx:      &quorumtest.Tx{Err: errors.ErrInput},
			err:     errors.ErrInput,
		},
		"tags are additive": {
			handler: &quorumtest.Handler{
				DeliverResult: quorum.DeliverResult{Tags: []common.KVPair{stringTag(utils.ActionKey, "random")}},
			},
			tx:   &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "cash/send"}},
			tags: []common.KVPair{stringTag(utils.ActionKey, "random"), stringTag(utils.ActionKey, "cash/send")},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			stack := quorumtest.Decorate(tc.handler, utils.NewActionTagger())
			db := store.MemStore()

			// check does nothing
			_, err := stack.Check(context.Background(), db, tc.tx)
			assert.Nil(t, err)

			dres, err := stack.Deliver(context.Background(), db, tc.tx)
			if tc.err != nil {
				if !tc.err.Is(err) {
					t.Fatalf("unexpected error: %+v", err)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.tags, dres.Tags)
		})
	}
}
