package utils

import (
	"github.com/iov-one/quorum"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key under which ActionTagger stores the message path.
const ActionKey = "action"

// ActionTagger tags every delivered transaction with the path of its
// message, so clients can subscribe to events like "multisig/execute_proposal".
type ActionTagger struct{}

var _ quorum.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver fails before calling next when the message cannot be read.
func (ActionTagger) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{Key: []byte(ActionKey), Value: []byte(msg.Path())})
	return res, nil
}
