package sigs

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// NextNonce returns the next numeric nonce value that should be used during a
// transaction signing by the account with the given address.
func NextNonce(db quorum.ReadOnlyKVStore, signer quorum.Address) (int64, error) {
	var user UserData
	switch err := NewUserBucket().One(db, signer, &user); {
	case err == nil:
		return user.Sequence, nil
	case errors.ErrNotFound.Is(err):
		// If not yet present, nonce counting starts with zero.
		return 0, nil
	default:
		return 0, errors.Wrap(err, "bucket get")
	}
}
