package cash

import (
	"fmt"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x"
)

// RegisterRoutes routes SendMsg to a SendHandler moving funds with ctrl.
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, ctrl))
}

// RegisterQuery exposes the balances under "/balances".
func RegisterQuery(qr quorum.QueryRouter) {
	NewBalanceBucket().Register("balances", qr)
}

// SendHandler moves coins out of an account whose owner signed the
// transaction.
type SendHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ quorum.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, ctrl Controller) SendHandler {
	return SendHandler{auth: auth, ctrl: ctrl}
}

// Check does not look at the balance. A send that passes Check may still
// fail in Deliver for lack of funds.
func (h SendHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.authorized(ctx, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h SendHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, err := h.authorized(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{
		Log: fmt.Sprintf("sent %s from %s to %s", msg.Amount, msg.Source, msg.Destination),
	}, nil
}

// authorized loads the message and requires a signature of its source.
func (h SendHandler) authorized(ctx quorum.Context, tx quorum.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "no signature of %s", msg.Source)
	}
	return &msg, nil
}
