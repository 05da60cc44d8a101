package gconf

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// ReadStore is the part of a store Load needs.
type ReadStore interface {
	Get(key []byte) ([]byte, error)
}

// Store is the part of a store Save needs.
type Store interface {
	ReadStore
	Set(key, value []byte) error
}

// Configuration is a protobuf message able to check its own content.
type Configuration interface {
	proto.Message
	Validate() error
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates conf and stores it as the configuration of pkg,
// replacing any previous one.
func Save(db Store, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := proto.Marshal(conf)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "%s configuration: %s", pkg, err)
	}
	return db.Set(key(pkg), raw)
}

// Load reads the configuration of pkg into conf. It fails with ErrNotFound
// if pkg was never configured.
func Load(db ReadStore, pkg string, conf Configuration) error {
	raw, err := db.Get(key(pkg))
	switch {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	conf.Reset()
	if err := proto.Unmarshal(raw, conf); err != nil {
		return errors.Wrapf(errors.ErrModel, "%s configuration: %s", pkg, err)
	}
	return nil
}

// InitConfig saves the configuration of pkg found in the genesis under
// conf.<pkg>. The genesis must configure pkg.
func InitConfig(db Store, opts quorum.Options, pkg string, conf Configuration) error {
	var all quorum.Options
	if err := opts.ReadOptions("conf", &all); err != nil {
		return err
	}
	if _, ok := all[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "genesis has no %s configuration", pkg)
	}
	if err := all.ReadOptions(pkg, conf); err != nil {
		return err
	}
	return Save(db, pkg, conf)
}
