package iavl

import (
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// cacheSize is the number of tree nodes iavl keeps in memory.
const cacheSize = 10000

// CommitStore keeps the wallet state in a versioned iavl merkle tree. Each
// Commit saves one version, whose root hash is the application hash
// reported to tendermint.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore opens, or creates, the leveldb database name in dir.
func NewCommitStore(dir, name string) (CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return CommitStore{}, dbErr(err)
	}
	return fromDB(db), nil
}

// NewMemCommitStore is a CommitStore that is lost on exit.
func NewMemCommitStore() CommitStore {
	return fromDB(dbm.NewMemDB())
}

func fromDB(db dbm.DB) CommitStore {
	return CommitStore{tree: iavl.NewMutableTree(db, cacheSize)}
}

func dbErr(err error) error {
	return errors.Wrapf(errors.ErrDatabase, "iavl: %s", err)
}

// Get reads the last committed version. Uncommitted writes are not seen.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, v := s.tree.GetVersioned(key, s.tree.Version())
	return v, nil
}

// Commit saves the working tree as the next version.
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, dbErr(err)
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion restores the working tree from the newest version on
// disk. A version interrupted while being saved is ignored.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return dbErr(err)
	}
	return nil
}

func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{Version: s.tree.Version(), Hash: s.tree.Hash()}, nil
}

// CacheWrap stages writes in memory. Once written, they are part of the
// working tree and get persisted by the next Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// Adapter reads and writes the working tree without staging.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return store.NewCacheable(working{tree: s.tree})
}

// working is the uncommitted tree seen as a KVStore.
type working struct {
	tree *iavl.MutableTree
}

var _ store.KVStore = working{}

func (w working) Get(key []byte) ([]byte, error) {
	_, v := w.tree.Get(key)
	return v, nil
}

func (w working) Has(key []byte) (bool, error) {
	return w.tree.Has(key), nil
}

func (w working) Set(key, value []byte) error {
	w.tree.Set(key, value)
	return nil
}

func (w working) Delete(key []byte) error {
	w.tree.Remove(key)
	return nil
}

func (w working) Iterator(start, end []byte) (store.Iterator, error) {
	return w.collect(start, end, true), nil
}

func (w working) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return w.collect(start, end, false), nil
}

// collect copies the range out of the tree, so the store may be written
// while the iterator is in use.
func (w working) collect(start, end []byte, ascending bool) store.Iterator {
	var pairs []store.Model
	w.tree.IterateRange(start, end, ascending, func(k, v []byte) bool {
		pairs = append(pairs, store.Model{Key: k, Value: v})
		return false
	})
	return store.NewSliceIterator(pairs)
}
