package quorumtest

import "github.com/iov-one/quorum"

// calls counts check and deliver requests.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler answers every request with the configured result, or with the
// configured error when it is set.
type Handler struct {
	calls
	CheckResult   quorum.CheckResult
	CheckErr      error
	DeliverResult quorum.DeliverResult
	DeliverErr    error
}

var _ quorum.Handler = (*Handler)(nil)

func (h *Handler) Check(quorum.Context, quorum.KVStore, quorum.Tx) (*quorum.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(quorum.Context, quorum.KVStore, quorum.Tx) (*quorum.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// WriteHandler sets Key to Value and then fails with Err, if set. Tests use
// it to see whether a failed request left its write behind.
type WriteHandler struct {
	Key, Value []byte
	Err        error
}

var _ quorum.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(_ quorum.Context, db quorum.KVStore, _ quorum.Tx) (*quorum.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, h.Err
}

func (h *WriteHandler) Deliver(_ quorum.Context, db quorum.KVStore, _ quorum.Tx) (*quorum.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{}, h.Err
}

// PanicHandler panics with Msg.
type PanicHandler struct {
	Msg string
}

var _ quorum.Handler = PanicHandler{}

func (h PanicHandler) Check(quorum.Context, quorum.KVStore, quorum.Tx) (*quorum.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(quorum.Context, quorum.KVStore, quorum.Tx) (*quorum.DeliverResult, error) {
	panic(h.Msg)
}
