package sigs

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"golang.org/x/crypto/ed25519"
)

// bucketName prefixes the accounts of signing keys.
const bucketName = "sigs"

// maxSequence is the highest sequence javascript clients can represent
// exactly, 2^53 - 1.
const maxSequence = 1<<53 - 1

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	var errs error
	if n := len(u.PubKey); n != ed25519.PublicKeySize {
		errs = errors.AppendField(errs, "PubKey", errors.Wrapf(errors.ErrModel, "%d bytes, want %d", n, ed25519.PublicKeySize))
	}
	if u.Sequence < 0 {
		errs = errors.AppendField(errs, "Sequence", errors.Wrapf(ErrInvalidSequence, "%d", u.Sequence))
	}
	return errs
}

// Condition is what a signature of this key authorizes.
func (u *UserData) Condition() quorum.Condition {
	return KeyCondition(u.PubKey)
}

// consume accepts seq only if it is the current sequence of the account,
// and then moves the account to the next one.
func (u *UserData) consume(seq int64) error {
	if seq != u.Sequence {
		return errors.Wrapf(ErrInvalidSequence, "got %d, account is at %d", seq, u.Sequence)
	}
	if u.Sequence >= maxSequence {
		return errors.Wrapf(errors.ErrOverflow, "sequence %d is the last one", u.Sequence)
	}
	u.Sequence++
	return nil
}

// KeyCondition returns the condition of an ed25519 public key.
func KeyCondition(pubKey []byte) quorum.Condition {
	return quorum.NewCondition("sigs", "ed25519", pubKey)
}

// UserBucket stores UserData indexed by the address of the account.
type UserBucket struct {
	orm.ModelBucket
}

// NewUserBucket creates the proper bucket for this extension
func NewUserBucket() *UserBucket {
	return &UserBucket{
		ModelBucket: orm.NewModelBucket(bucketName, &UserData{}),
	}
}

// GetOrCreate loads the account of given public key or initializes a fresh
// one with sequence zero if none exist.
func (b *UserBucket) GetOrCreate(db quorum.ReadOnlyKVStore, pubKey []byte) (*UserData, error) {
	var user UserData
	switch err := b.One(db, KeyCondition(pubKey).Address(), &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{PubKey: pubKey}, nil
	default:
		return nil, err
	}
}

// Save stores the account under the address of its public key.
func (b *UserBucket) Save(db quorum.KVStore, u *UserData) error {
	return b.Put(db, u.Condition().Address(), u)
}
