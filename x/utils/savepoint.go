package utils

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Savepoint runs the rest of the stack on a cache wrap of the store and
// keeps its writes only when no error is returned. It is off for both
// modes until OnCheck or OnDeliver turns it on.
//
// Placed below the signature decorator, a failed proposal still
// consumes the signer's sequence while its own writes are dropped.
type Savepoint struct {
	check   bool
	deliver bool
}

var _ quorum.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.check = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.deliver = true
	return s
}

func (s Savepoint) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	var res *quorum.CheckResult
	err := atomically(s.check, db, func(db quorum.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	var res *quorum.DeliverResult
	err := atomically(s.deliver, db, func(db quorum.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// atomically calls fn on a cache wrap of db and writes it back on success.
// fn gets db itself when disabled or when db cannot be cache wrapped.
func atomically(enabled bool, db quorum.KVStore, fn func(quorum.KVStore) error) error {
	cdb, ok := db.(quorum.CacheableKVStore)
	if !enabled || !ok {
		return fn(db)
	}
	cache := cdb.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "write savepoint")
}
