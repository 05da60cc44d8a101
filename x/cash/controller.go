package cash

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
)

// Controller is the functionality needed by cash.Handler and other
// extensions that move funds.
type Controller interface {
	// Balance returns the coins held by the address.
	Balance(db quorum.ReadOnlyKVStore, addr quorum.Address) (coin.Coins, error)
	// MoveCoins moves the given amount from src to dest.
	MoveCoins(db quorum.KVStore, src, dest quorum.Address, amount coin.Coin) error
	// IssueCoins adds the given amount to dest.
	IssueCoins(db quorum.KVStore, dest quorum.Address, amount coin.Coin) error
	// Transfer moves amount of the asset from src to dest. An empty asset
	// refers to the configured native currency.
	Transfer(db quorum.KVStore, src, dest quorum.Address, amount uint64, asset string) error
}

// BaseController is a simple implementation of controller.
type BaseController struct {
	bucket *BalanceBucket
}

var _ Controller = BaseController{}

// NewController returns a basic controller implementation
func NewController(bucket *BalanceBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by the address.
func (c BaseController) Balance(db quorum.ReadOnlyKVStore, addr quorum.Address) (coin.Coins, error) {
	bal, err := c.bucket.GetOrEmpty(db, addr)
	if err != nil {
		return nil, err
	}
	return coin.Coins(bal.Coins), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db quorum.KVStore, src, dest quorum.Address, amount coin.Coin) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}

	sender, err := c.bucket.GetOrEmpty(db, src)
	if err != nil {
		return err
	}
	if len(sender.Coins) == 0 {
		return errors.Wrapf(errors.ErrEmpty, "account %s", src)
	}
	remaining, err := coin.Coins(sender.Coins).Subtract(amount)
	if err != nil {
		return errors.Wrap(err, "insufficient funds")
	}

	recipient, err := c.bucket.GetOrEmpty(db, dest)
	if err != nil {
		return err
	}
	received, err := coin.Coins(recipient.Coins).Add(amount)
	if err != nil {
		return err
	}

	if err := c.bucket.Save(db, src, &Balance{Coins: remaining}); err != nil {
		return errors.Wrap(err, "save sender")
	}
	if err := c.bucket.Save(db, dest, &Balance{Coins: received}); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the balance.
func (c BaseController) IssueCoins(db quorum.KVStore, dest quorum.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	recipient, err := c.bucket.GetOrEmpty(db, dest)
	if err != nil {
		return err
	}
	coins, err := coin.Coins(recipient.Coins).Add(amount)
	if err != nil {
		return err
	}
	return c.bucket.Save(db, dest, &Balance{Coins: coins})
}

// Transfer moves amount of the asset from src to dest. The empty asset is
// resolved to the native ticker of the configuration.
func (c BaseController) Transfer(db quorum.KVStore, src, dest quorum.Address, amount uint64, asset string) error {
	ticker := asset
	if ticker == "" {
		conf, err := LoadConfiguration(db)
		if err != nil {
			return errors.Wrap(err, "native currency")
		}
		ticker = conf.NativeTicker
	}
	return c.MoveCoins(db, src, dest, coin.NewCoin(amount, ticker))
}
