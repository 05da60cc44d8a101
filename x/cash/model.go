package cash

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

var _ orm.Model = (*Balance)(nil)

// Validate requires that all coins are in alphabetical order, have no
// duplicates and are not zero.
func (b *Balance) Validate() error {
	return coin.Coins(b.Coins).Validate()
}

// BalanceBucket stores the balance of each address.
type BalanceBucket struct {
	orm.ModelBucket
}

// NewBalanceBucket initializes a BalanceBucket with default name
func NewBalanceBucket() *BalanceBucket {
	return &BalanceBucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Balance{}),
	}
}

// GetOrEmpty returns the balance of an address. An address that was never
// funded has an empty balance.
func (b *BalanceBucket) GetOrEmpty(db quorum.ReadOnlyKVStore, addr quorum.Address) (*Balance, error) {
	var bal Balance
	switch err := b.One(db, addr, &bal); {
	case err == nil:
		return &bal, nil
	case errors.ErrNotFound.Is(err):
		return &Balance{}, nil
	default:
		return nil, err
	}
}

// Save stores the balance. An empty balance is removed from the database.
func (b *BalanceBucket) Save(db quorum.KVStore, addr quorum.Address, bal *Balance) error {
	if len(bal.Coins) == 0 {
		if err := b.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return b.Put(db, addr, bal)
}
