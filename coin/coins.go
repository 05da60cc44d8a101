package coin

import (
	"sort"
	"strings"

	"github.com/iov-one/quorum/errors"
)

// Coins is a balance holding several assets. A valid set is sorted by
// ticker, holds each ticker once and contains no zero coin. Add and
// Subtract keep that form and never modify the receiver.
type Coins []*Coin

// CombineCoins sums the given coins into a valid set. Zero coins are
// dropped.
func CombineCoins(cs ...Coin) (Coins, error) {
	var (
		res Coins
		err error
	)
	for _, c := range cs {
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

func (cs Coins) Add(c Coin) (Coins, error) {
	return cs.update(c, Coin.Add)
}

// Subtract fails with ErrInsufficientAmount when the set holds less than c.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.update(c, Coin.Subtract)
}

// update returns a copy of cs with the coin of c's ticker replaced by
// op(held, c). A missing ticker is held as zero.
func (cs Coins) update(c Coin, op func(held, c Coin) (Coin, error)) (Coins, error) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Ticker >= c.Ticker })
	found := i < len(cs) && cs[i].Ticker == c.Ticker

	held := NewCoin(0, c.Ticker)
	if found {
		held = *cs[i]
	}
	next, err := op(held, c)
	if err != nil {
		return nil, err
	}

	res := make(Coins, 0, len(cs)+1)
	for _, have := range cs[:i] {
		res = append(res, NewCoinp(have.Amount, have.Ticker))
	}
	if !next.IsZero() {
		res = append(res, &next)
	}
	rest := cs[i:]
	if found {
		rest = cs[i+1:]
	}
	for _, have := range rest {
		res = append(res, NewCoinp(have.Amount, have.Ticker))
	}
	if len(res) == 0 && cs == nil {
		return nil, nil
	}
	return res, nil
}

func (cs Coins) Validate() error {
	for i, c := range cs {
		if c == nil {
			return errors.Wrapf(errors.ErrAmount, "coin %d is nil", i)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.Wrapf(errors.ErrAmount, "zero %s", c.Ticker)
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			return errors.Wrapf(errors.ErrCurrency, "%s after %s", c.Ticker, cs[i-1].Ticker)
		}
	}
	return nil
}

func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
