/*
Package sigs authenticates transactions by their ed25519 signatures.

Every signing key owns an account holding its sequence number. A signature
is only valid for the current sequence of its key, which protects against
replays. The decorator puts the conditions of all verified signers in the
context, where Authenticate reads them back.
*/
package sigs

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// RegisterQuery exposes the accounts under "/auth".
func RegisterQuery(qr quorum.QueryRouter) {
	NewUserBucket().Register("auth", qr)
}

// Decorator rejects transactions that carry no valid signature.
type Decorator struct{}

var _ quorum.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

func (Decorator) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	ctx, err := authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (Decorator) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	ctx, err := authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func authenticate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (quorum.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return nil, errors.Wrap(errors.ErrUnauthorized, "transaction cannot carry signatures")
	}
	signers, err := verifyTx(db, stx, quorum.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}
