package x

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/stretchr/testify/assert"
)

func TestAuthenticators(t *testing.T) {
	alice := quorumtest.NewCondition()
	bert := quorumtest.NewCondition()
	carol := quorumtest.NewCondition()

	signed := &quorumtest.CtxAuth{Key: "sigs"}
	other := &quorumtest.CtxAuth{Key: "other"}
	bg := context.Background()

	cases := map[string]struct {
		ctx      quorum.Context
		auth     Authenticator
		wantMain quorum.Condition
		want     []quorum.Condition
	}{
		"unsigned": {
			ctx:  bg,
			auth: &quorumtest.Auth{},
		},
		"single signer": {
			ctx:      bg,
			auth:     &quorumtest.Auth{Signers: []quorum.Condition{alice}},
			wantMain: alice,
			want:     []quorum.Condition{alice},
		},
		"chain keeps authenticator order": {
			ctx:      bg,
			auth:     ChainAuth(&quorumtest.Auth{Signers: []quorum.Condition{bert}}, &quorumtest.Auth{Signers: []quorum.Condition{alice}}),
			wantMain: bert,
			want:     []quorum.Condition{bert, alice},
		},
		"conditions read from the context": {
			ctx:      signed.SetConditions(bg, alice, bert),
			auth:     signed,
			wantMain: alice,
			want:     []quorum.Condition{alice, bert},
		},
		"context key of another authenticator": {
			ctx:  signed.SetConditions(bg, alice, bert),
			auth: other,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantMain, MainSigner(tc.ctx, tc.auth))
			got := tc.auth.GetConditions(tc.ctx)
			assert.Equal(t, len(tc.want), len(got))
			for i, c := range tc.want {
				assert.Equal(t, c, got[i])
				assert.True(t, tc.auth.HasAddress(tc.ctx, c.Address()))
			}
			assert.False(t, tc.auth.HasAddress(tc.ctx, carol.Address()))
		})
	}
}

func TestSignedBy(t *testing.T) {
	alice := quorumtest.NewCondition().Address()
	bert := quorumtest.NewCondition().Address()
	carol := quorumtest.NewCondition().Address()

	ctx := context.Background()

	cases := map[string]struct {
		signed     []quorum.Address
		candidates []quorum.Address
		want       []quorum.Address
		wantAll    bool
	}{
		"no candidates": {
			signed:  []quorum.Address{alice},
			wantAll: true,
		},
		"nobody signed": {
			candidates: []quorum.Address{alice, bert},
		},
		"two of three in candidate order": {
			signed:     []quorum.Address{carol, alice},
			candidates: []quorum.Address{alice, bert, carol},
			want:       []quorum.Address{alice, carol},
		},
		"everybody signed": {
			signed:     []quorum.Address{bert, alice},
			candidates: []quorum.Address{alice, bert},
			want:       []quorum.Address{alice, bert},
			wantAll:    true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := addressAuth(tc.signed)
			assert.Equal(t, tc.want, SignedBy(ctx, auth, tc.candidates))
			assert.Equal(t, tc.wantAll, HasAllAddresses(ctx, auth, tc.candidates))
		})
	}
}

// addressAuth reports a fixed list of signed addresses.
type addressAuth []quorum.Address

func (a addressAuth) GetConditions(quorum.Context) []quorum.Condition {
	return nil
}

func (a addressAuth) HasAddress(_ quorum.Context, addr quorum.Address) bool {
	for _, s := range a {
		if s.Equals(addr) {
			return true
		}
	}
	return false
}
