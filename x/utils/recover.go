package utils

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Recovery returns a panic below it as an errors.ErrPanic error.
type Recovery struct{}

var _ quorum.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (res *quorum.CheckResult, err error) {
	defer errors.Recover(&err)
	res, err = next.Check(ctx, db, tx)
	return res, err
}

func (Recovery) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (res *quorum.DeliverResult, err error) {
	defer errors.Recover(&err)
	res, err = next.Deliver(ctx, db, tx)
	return res, err
}
