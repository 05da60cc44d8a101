package quorumtest

import (
	"context"

	"github.com/iov-one/quorum"
)

// Auth authenticates a fixed list of signers, whatever the context.
type Auth struct {
	Signers []quorum.Condition
}

func (a *Auth) GetConditions(quorum.Context) []quorum.Condition {
	return a.Signers
}

func (a *Auth) HasAddress(_ quorum.Context, addr quorum.Address) bool {
	return signedBy(a.Signers, addr)
}

// CtxAuth authenticates the signers that SetConditions stored in the
// context. Instances with different keys do not see each other's signers.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx quorum.Context, signers ...quorum.Condition) quorum.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), signers)
}

func (a *CtxAuth) GetConditions(ctx quorum.Context) []quorum.Condition {
	signers, _ := ctx.Value(ctxAuthKey(a.Key)).([]quorum.Condition)
	return signers
}

func (a *CtxAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	return signedBy(a.GetConditions(ctx), addr)
}

func signedBy(signers []quorum.Condition, addr quorum.Address) bool {
	for _, c := range signers {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
