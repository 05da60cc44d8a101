package quorumtest

import "github.com/iov-one/quorum"

// Decorator counts the requests passing through it. A request stops here
// with CheckErr or DeliverErr when the one for its mode is set.
type Decorator struct {
	calls
	CheckErr   error
	DeliverErr error
}

var _ quorum.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate wraps h with a single decorator.
func Decorate(h quorum.Handler, d quorum.Decorator) quorum.Handler {
	return decorated{next: h, dec: d}
}

type decorated struct {
	next quorum.Handler
	dec  quorum.Decorator
}

func (d decorated) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	return d.dec.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	return d.dec.Deliver(ctx, db, tx, d.next)
}
