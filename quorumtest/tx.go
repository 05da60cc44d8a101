package quorumtest

import "github.com/iov-one/quorum"

// Tx represents a quorum transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg quorum.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ quorum.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (quorum.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is a message that is routed by its path and can be forced to fail
// validation.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the Validate method.
	Err error
}

var _ quorum.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
