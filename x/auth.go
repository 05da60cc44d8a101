package x

import (
	"github.com/iov-one/quorum"
)

// Authenticator tells which conditions the current transaction fulfils.
// Handlers receive it in their constructor instead of depending on
// x/sigs directly.
type Authenticator interface {
	// GetConditions lists every fulfilled condition, main signer first.
	GetConditions(quorum.Context) []quorum.Condition
	HasAddress(quorum.Context, quorum.Address) bool
}

// ChainAuth merges several authenticators. Conditions keep the order of
// the authenticators.
func ChainAuth(auths ...Authenticator) Authenticator {
	return multiAuth(auths)
}

type multiAuth []Authenticator

func (m multiAuth) GetConditions(ctx quorum.Context) []quorum.Condition {
	var res []quorum.Condition
	for _, a := range m {
		res = append(res, a.GetConditions(ctx)...)
	}
	return res
}

func (m multiAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner is nil for an unsigned transaction.
func MainSigner(ctx quorum.Context, auth Authenticator) quorum.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// HasAllAddresses is true when every address of required signed. An
// empty list is always satisfied.
func HasAllAddresses(ctx quorum.Context, auth Authenticator, required []quorum.Address) bool {
	return len(SignedBy(ctx, auth, required)) == len(required)
}

// SignedBy returns the candidates that signed the transaction, in
// candidate order.
func SignedBy(ctx quorum.Context, auth Authenticator, candidates []quorum.Address) []quorum.Address {
	var res []quorum.Address
	for _, c := range candidates {
		if auth.HasAddress(ctx, c) {
			res = append(res, c)
		}
	}
	return res
}
