package coin

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinAdd(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"same ticker": {
			a:    NewCoin(5, "IOV"),
			b:    NewCoin(7, "IOV"),
			want: NewCoin(12, "IOV"),
		},
		"different ticker": {
			a:       NewCoin(5, "IOV"),
			b:       NewCoin(7, "ETH"),
			wantErr: errors.ErrCurrency,
		},
		"overflow": {
			a:       NewCoin(MaxAmount, "IOV"),
			b:       NewCoin(1, "IOV"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoinSubtract(t *testing.T) {
	got, err := NewCoin(10, "IOV").Subtract(NewCoin(4, "IOV"))
	require.NoError(t, err)
	assert.Equal(t, NewCoin(6, "IOV"), got)

	_, err = NewCoin(3, "IOV").Subtract(NewCoin(4, "IOV"))
	assert.True(t, errors.ErrInsufficientAmount.Is(err))

	_, err = NewCoin(3, "IOV").Subtract(NewCoin(1, "ETH"))
	assert.True(t, errors.ErrCurrency.Is(err))
}

func TestCoinValidate(t *testing.T) {
	assert.NoError(t, NewCoin(1, "IOV").Validate())
	assert.NoError(t, NewCoin(0, "ETHC").Validate())
	assert.True(t, errors.ErrCurrency.Is(NewCoin(1, "iov").Validate()))
	assert.True(t, errors.ErrCurrency.Is(NewCoin(1, "").Validate()))
	assert.True(t, errors.ErrOverflow.Is(NewCoin(MaxAmount+1, "IOV").Validate()))
}

func TestCoinJSON(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Coin
		wantErr bool
	}{
		"human format": {
			raw:  `"12 IOV"`,
			want: NewCoin(12, "IOV"),
		},
		"human format without space": {
			raw:  `"3ETH"`,
			want: NewCoin(3, "ETH"),
		},
		"object": {
			raw:  `{"ticker": "IOV", "amount": 99}`,
			want: NewCoin(99, "IOV"),
		},
		"invalid human format": {
			raw:     `"12.5 IOV"`,
			wantErr: true,
		},
		"negative": {
			raw:     `"-1 IOV"`,
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Coin
			err := json.Unmarshal([]byte(tc.raw), &got)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoinString(t *testing.T) {
	assert.Equal(t, "12 IOV", NewCoin(12, "IOV").String())
	assert.Equal(t, "12", NewCoin(12, "").String())
}
