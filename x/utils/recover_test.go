package utils

import (
	"context"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/store"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	h := quorumtest.PanicHandler{Msg: "boom"}
	r := NewRecovery()
	ctx := context.Background()
	db := store.MemStore()

	// Panic handler panics, test the test tool.
	assert.Panics(t, func() { h.Check(ctx, db, nil) })
	assert.Panics(t, func() { h.Deliver(ctx, db, nil) })

	// Recovery wrapped handler returns an error.
	_, err := r.Check(ctx, db, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "boom")

	_, err = r.Deliver(ctx, db, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
}

func TestRecoveryPassThrough(t *testing.T) {
	h := &quorumtest.Handler{DeliverErr: errors.ErrNotFound}
	r := NewRecovery()
	ctx := context.Background()
	db := store.MemStore()

	_, err := r.Check(ctx, db, nil, h)
	assert.NoError(t, err)
	_, err = r.Deliver(ctx, db, nil, h)
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.Equal(t, 2, h.CallCount())
}
