package cash

import (
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

const confPkg = "cash"

func (c *Configuration) Validate() error {
	if !coin.IsCC(c.NativeTicker) {
		return errors.Wrapf(errors.ErrCurrency, "native ticker %q", c.NativeTicker)
	}
	return nil
}

// LoadConfiguration reads the cash configuration from the database.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
