package app

import (
	"encoding/json"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// chainIDKey lives outside of every bucket namespace.
var chainIDKey = []byte("_q:chainID")

func loadChainID(db quorum.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "chain id")
	}
	return string(raw), nil
}

// saveChainID is allowed once per state.
func saveChainID(db quorum.KVStore, chainID string) error {
	if !quorum.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	switch ok, err := db.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "chain id")
	case ok:
		return errors.Wrap(errors.ErrImmutable, "chain id")
	}
	return db.Set(chainIDKey, []byte(chainID))
}

func parseAppState(raw []byte) (quorum.Options, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "genesis app_state, run init first")
	}
	var opts quorum.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "genesis app_state: %s", err)
	}
	return opts, nil
}
