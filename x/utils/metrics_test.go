package utils

import (
	"context"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("quorum", reg)

	ctx := context.Background()
	db := store.MemStore()
	tx := &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "multisig/execute_proposal"}}

	ok := &quorumtest.Handler{}
	_, err := m.Deliver(ctx, db, tx, ok)
	require.NoError(t, err)
	_, err = m.Deliver(ctx, db, tx, ok)
	require.NoError(t, err)
	_, err = m.Check(ctx, db, tx, ok)
	require.NoError(t, err)

	failing := &quorumtest.Handler{DeliverErr: errors.ErrNotFound}
	_, err = m.Deliver(ctx, db, tx, failing)
	require.Error(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := make(map[string]float64)
	var histograms int
	for _, f := range families {
		switch f.GetName() {
		case "quorum_requests_total":
			for _, metric := range f.GetMetric() {
				labels := make(map[string]string)
				for _, l := range metric.GetLabel() {
					labels[l.GetName()] = l.GetValue()
				}
				assert.Equal(t, "multisig/execute_proposal", labels["path"])
				counts[labels["mode"]+":"+labels["code"]] = metric.GetCounter().GetValue()
			}
		case "quorum_request_duration_seconds":
			histograms = len(f.GetMetric())
		}
	}

	assert.Equal(t, map[string]float64{
		"deliver:ok": 2,
		"check:ok":   1,
		"deliver:3":  1,
	}, counts)
	assert.Equal(t, 2, histograms)
}

func TestMetricsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics("quorum", reg)
	assert.Panics(t, func() { NewMetrics("quorum", reg) })
}
