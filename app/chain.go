package app

import (
	"reflect"

	"github.com/iov-one/quorum"
)

// Decorators is an ordered stack of decorators waiting for the handler
// they wrap. The first decorator runs first.
//
//   app.ChainDecorators(
//     utils.NewRecovery(),
//     sigs.NewDecorator(),
//   ).WithHandler(router)
type Decorators []quorum.Decorator

// ChainDecorators starts a stack. Nil entries, including typed nil
// pointers of optional decorators, are dropped.
func ChainDecorators(ds ...quorum.Decorator) Decorators {
	return Decorators(nil).Chain(ds...)
}

// Chain returns a new stack with ds appended.
func (d Decorators) Chain(ds ...quorum.Decorator) Decorators {
	res := append(Decorators(nil), d...)
	for _, dec := range ds {
		if dec == nil {
			continue
		}
		if v := reflect.ValueOf(dec); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		res = append(res, dec)
	}
	return res
}

// WithHandler closes the stack around h.
func (d Decorators) WithHandler(h quorum.Handler) quorum.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = wrapped{dec: d[i], next: h}
	}
	return h
}

type wrapped struct {
	dec  quorum.Decorator
	next quorum.Handler
}

func (w wrapped) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	return w.dec.Check(ctx, db, tx, w.next)
}

func (w wrapped) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	return w.dec.Deliver(ctx, db, tx, w.next)
}
