package cash

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Ensure we implement the Msg interface
var _ quorum.Msg = (*SendMsg)(nil)

const (
	pathSendMsg = "cash/send"

	maxMemoSize int = 128
)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	var errs error
	if s.Amount == nil || s.Amount.IsZero() {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	} else {
		errs = errors.AppendField(errs, "Amount", s.Amount.Validate())
	}
	errs = errors.AppendField(errs, "Source", s.Source.Validate())
	errs = errors.AppendField(errs, "Destination", s.Destination.Validate())
	if len(s.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.Wrap(errors.ErrInput, "memo too long"))
	}
	return errs
}
