package quorum

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block information down to the handlers. Values are
// set by the node before a transaction is processed and read with the
// matching getter below. Extensions add their own keys, like the signers
// verified by x/sigs.
type Context = context.Context

type ctxKey int

const (
	heightKey ctxKey = iota
	blockTimeKey
	chainIDKey
	loggerKey
)

// DefaultLogger is returned by GetLogger when the context has none.
var DefaultLogger = log.NewNopLogger()

var chainIDRx = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`)

// IsValidChainID reports whether id is 6 to 20 letters, digits, '_' or '-'.
func IsValidChainID(id string) bool {
	return chainIDRx.MatchString(id)
}

// WithHeight panics if the height is already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("block height already set")
	}
	return context.WithValue(ctx, heightKey, height)
}

func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, blockTimeKey, t)
}

// BlockTime fails when the node did not set the block time. Proposal
// expiration must never be judged against a zero time.
func BlockTime(ctx Context) (time.Time, error) {
	t, ok := ctx.Value(blockTimeKey).(time.Time)
	if !ok {
		return time.Time{}, errors.Wrap(errors.ErrHuman, "no block time in context")
	}
	return t, nil
}

// WithChainID panics on an invalid id or if an id is already set.
func WithChainID(ctx Context, id string) Context {
	if _, ok := ctx.Value(chainIDKey).(string); ok {
		panic("chain id already set")
	}
	if !IsValidChainID(id) {
		panic(fmt.Sprintf("invalid chain id %q", id))
	}
	return context.WithValue(ctx, chainIDKey, id)
}

// GetChainID panics if no chain id is set. The node sets it before any
// transaction is processed.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("no chain id in context")
	}
	return id
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}

// WithLogInfo adds keyvals to every line logged through the returned
// context.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}
