package orm

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Register adds the bucket to r under "/<name>".
func (mb *modelBucket) Register(name string, r quorum.QueryRouter) {
	r.Register("/"+name, mb)
}

// Query returns the raw, protobuf encoded models stored in this bucket.
// Returned keys are full database keys, including the bucket prefix.
func (mb *modelBucket) Query(db quorum.ReadOnlyKVStore, mod string, data []byte) ([]quorum.Model, error) {
	switch mod {
	case quorum.KeyQueryMod:
		key := mb.dbKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []quorum.Model{quorum.Pair(key, value)}, nil
	case quorum.PrefixQueryMod:
		return queryPrefix(db, mb.dbKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

func queryPrefix(db quorum.ReadOnlyKVStore, prefix []byte) ([]quorum.Model, error) {
	start, end := prefixRange(prefix)
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []quorum.Model
	for {
		key, value, err := it.Next()
		switch {
		case err == nil:
			res = append(res, quorum.Pair(key, value))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// prefixRange returns the [start, end) range of all keys starting with
// prefix. End is nil, meaning open, for an empty or all 0xFF prefix.
func prefixRange(prefix []byte) ([]byte, []byte) {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return prefix, end
		}
	}
	if len(prefix) == 0 {
		return nil, nil
	}
	return prefix, nil
}
