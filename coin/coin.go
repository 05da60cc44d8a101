package coin

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/iov-one/quorum/errors"
)

// MaxAmount is the largest value a single coin can hold.
const MaxAmount uint64 = 1<<63 - 1

var (
	tickerRx = regexp.MustCompile(`^[A-Z]{3,4}$`)
	humanRx  = regexp.MustCompile(`^(\d+)\s*([A-Z]{3,4})$`)
)

// IsCC reports whether s is a valid ticker: three or four capital letters.
func IsCC(s string) bool {
	return tickerRx.MatchString(s)
}

func NewCoin(amount uint64, ticker string) Coin {
	return Coin{Ticker: ticker, Amount: amount}
}

// NewCoinp is NewCoin returning a pointer, for building Coins literals.
func NewCoinp(amount uint64, ticker string) *Coin {
	return &Coin{Ticker: ticker, Amount: amount}
}

func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// Add sums two coins of one ticker. The sum may not exceed MaxAmount.
func (c Coin) Add(o Coin) (Coin, error) {
	if c.Ticker != o.Ticker {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "cannot add %s to %s", o.Ticker, c.Ticker)
	}
	if c.Amount > MaxAmount || o.Amount > MaxAmount-c.Amount {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", c, o)
	}
	return NewCoin(c.Amount+o.Amount, c.Ticker), nil
}

// Subtract takes o from c. The result may not go below zero.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if c.Ticker != o.Ticker {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "cannot subtract %s from %s", o.Ticker, c.Ticker)
	}
	if o.Amount > c.Amount {
		return Coin{}, errors.Wrapf(errors.ErrInsufficientAmount, "%s is less than %s", c, o)
	}
	return NewCoin(c.Amount-o.Amount, c.Ticker), nil
}

func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "ticker %q", c.Ticker)
	}
	if c.Amount > MaxAmount {
		return errors.Wrapf(errors.ErrOverflow, "amount %d", c.Amount)
	}
	return nil
}

// String formats the coin as "<amount> <ticker>", the form UnmarshalJSON
// reads back.
func (c Coin) String() string {
	if c.Ticker == "" {
		return strconv.FormatUint(c.Amount, 10)
	}
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

// UnmarshalJSON reads either a "<amount> <ticker>" string, for example
// "12 IOV", or a {"ticker": ..., "amount": ...} object.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		parsed, err := parseHuman(s)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// plain has no methods, so decoding it does not recurse into here.
	type plain Coin
	var obj plain
	if err := json.Unmarshal(raw, &obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "coin: %s", err)
	}
	*c = Coin(obj)
	return nil
}

func parseHuman(s string) (Coin, error) {
	m := humanRx.FindStringSubmatch(s)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "coin %q: want \"<amount> <ticker>\"", s)
	}
	amount, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil || amount > MaxAmount {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "coin amount %s", m[1])
	}
	return NewCoin(amount, m[2]), nil
}
