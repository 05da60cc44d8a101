package utils

import (
	"time"

	"github.com/iov-one/quorum"
)

// Logging writes one line per processed transaction to the context logger.
// Failures are logged as errors, delivered transactions at info level and
// checked ones at debug level.
type Logging struct{}

var _ quorum.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	l := txLog{ctx: ctx, tx: tx, start: start, err: err}
	if err == nil {
		l.log = res.Log
	}
	l.write(false)
	return res, err
}

func (Logging) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	l := txLog{ctx: ctx, tx: tx, start: start, err: err}
	if err == nil {
		l.log = res.Log
	}
	l.write(true)
	return res, err
}

type txLog struct {
	ctx   quorum.Context
	tx    quorum.Tx
	start time.Time
	log   string
	err   error
}

func (l txLog) write(delivered bool) {
	logger := quorum.GetLogger(l.ctx).With(
		"path", quorum.GetPath(l.tx),
		"duration", time.Since(l.start)/time.Microsecond,
	)
	switch {
	case l.err != nil:
		logger.Error(l.log, "err", l.err)
	case delivered:
		logger.Info(l.log)
	default:
		logger.Debug(l.log)
	}
}
