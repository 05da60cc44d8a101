package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

var validRoute = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router dispatches a transaction to the handler registered for the
// path of its message.
type Router map[string]quorum.Handler

var (
	_ quorum.Registry = Router(nil)
	_ quorum.Handler  = Router(nil)
)

// NewRouter returns an empty router.
func NewRouter() Router {
	return make(Router)
}

// Handle registers h for path. Registering a malformed or already
// taken path panics.
func (r Router) Handle(path string, h quorum.Handler) {
	switch _, taken := r[path]; {
	case !validRoute(path):
		panic(fmt.Sprintf("invalid route %q", path))
	case taken:
		panic(fmt.Sprintf("route %q registered twice", path))
	}
	r[path] = h
}

func (r Router) route(tx quorum.Tx) (quorum.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "message")
	}
	h, ok := r[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "route %q", msg.Path())
	}
	return h, nil
}

func (r Router) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r Router) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}
