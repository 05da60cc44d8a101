package cash

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use quorum.Address, so address in hex, not base64
type GenesisAccount struct {
	Address quorum.Address `json:"address"`
	Coins   []coin.Coin    `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ quorum.Initializer = Initializer{}

// FromGenesis will parse the configuration and initial account info from
// genesis and save it to the database
func (Initializer) FromGenesis(opts quorum.Options, kv quorum.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(kv, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBalanceBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		coins, err := coin.CombineCoins(acct.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if err := bucket.Save(kv, acct.Address, &Balance{Coins: coins}); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
