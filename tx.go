package quorum

import (
	"reflect"

	"github.com/iov-one/quorum/errors"
)

// Msg is the action a transaction requests, for example creating a
// proposal. Who requested it is recorded by the wrapping Tx.
type Msg interface {
	// Path selects the handler, for example "multisig/create_proposal".
	Path() string
	// Validate checks the message on its own, without any state.
	Validate() error
}

// Tx carries one message together with its signatures.
type Tx interface {
	GetMsg() (Msg, error)
}

// GetPath is meant for logging and never fails.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder parses the raw bytes tendermint passes to CheckTx and
// DeliverTx.
type TxDecoder func(raw []byte) (Tx, error)

// LoadMsg copies the message of tx into dst, a pointer to the expected
// message type, and validates it.
//
//   var msg CreateProposalMsg
//   if err := quorum.LoadMsg(tx, &msg); err != nil {
//     return err
//   }
func LoadMsg(tx Tx, dst interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "transaction message")
	case msg == nil:
		return errors.Wrap(errors.ErrMsg, "transaction without a message")
	}

	out := reflect.ValueOf(dst)
	if out.Kind() != reflect.Ptr {
		return errors.Wrapf(errors.ErrHuman, "cannot load into %T", dst)
	}
	in := reflect.Indirect(reflect.ValueOf(msg))
	if !in.Type().AssignableTo(out.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", dst, msg)
	}
	out.Elem().Set(in)

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
