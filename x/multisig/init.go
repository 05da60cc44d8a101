package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const optKey = "multisig"

// GenesisWallet describes a wallet created at chain initialization.
type GenesisWallet struct {
	Creator   quorum.Address   `json:"creator"`
	Nonce     uint64           `json:"nonce"`
	Signers   []quorum.Address `json:"signers"`
	Threshold uint32           `json:"threshold"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ quorum.Initializer = Initializer{}

// FromGenesis will parse initial wallets from genesis and save them to the
// database.
func (Initializer) FromGenesis(opts quorum.Options, db quorum.KVStore) error {
	var wallets []GenesisWallet
	if err := opts.ReadOptions(optKey, &wallets); err != nil {
		return err
	}
	bucket := NewWalletBucket()
	for i, w := range wallets {
		id := WalletID(w.Creator, w.Nonce)
		wallet := &Wallet{
			Signers:   w.Signers,
			Threshold: w.Threshold,
			Creator:   w.Creator,
			Nonce:     w.Nonce,
			Address:   CustodyCondition(id).Address(),
		}
		if err := bucket.Insert(db, id, wallet); err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
	}
	return nil
}
