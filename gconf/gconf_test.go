package gconf_test

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
	"github.com/iov-one/quorum/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got coin.Coin
	err := gconf.Load(db, "fee", &got)
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)

	err = gconf.Save(db, "fee", &coin.Coin{Ticker: "x", Amount: 1})
	assert.True(t, errors.ErrCurrency.Is(err), "got %+v", err)

	want := coin.NewCoin(3, "IOV")
	require.NoError(t, gconf.Save(db, "fee", &want))
	require.NoError(t, gconf.Load(db, "fee", &got))
	assert.Equal(t, want, got)

	// Packages are stored independently.
	err = gconf.Load(db, "other", &got)
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		want    coin.Coin
	}{
		"configuration present": {
			genesis: `{"conf": {"fee": {"ticker": "ETH", "amount": 7}}}`,
			want:    coin.NewCoin(7, "ETH"),
		},
		"no conf section": {
			genesis: `{}`,
			wantErr: errors.ErrNotFound,
		},
		"package not configured": {
			genesis: `{"conf": {"cash": {}}}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			genesis: `{"conf": {"fee": {"ticker": "eth", "amount": 7}}}`,
			wantErr: errors.ErrCurrency,
		},
		"malformed configuration": {
			genesis: `{"conf": {"fee": [1, 2]}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts quorum.Options
			require.NoError(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			var conf coin.Coin
			err := gconf.InitConfig(db, opts, "fee", &conf)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)

			var got coin.Coin
			require.NoError(t, gconf.Load(db, "fee", &got))
			assert.Equal(t, tc.want, got)
		})
	}
}
