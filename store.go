package quorum

// ReadOnlyKVStore gives access to stored data. Missing keys read as nil.
type ReadOnlyKVStore interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks [start, end) in ascending key order. A nil boundary
	// is open. The range must not be written while the iterator is used.
	Iterator(start, end []byte) (Iterator, error)
	// ReverseIterator walks [start, end) in descending key order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write half of a KVStore.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store every handler operates on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
}

// Iterator returns stored pairs one by one.
//
//   it, err := db.Iterator(start, end)
//   ...
//   defer it.Release()
//   for {
//     key, value, err := it.Next()
//     if errors.ErrIteratorDone.Is(err) {
//       break
//     }
//     ...
//   }
type Iterator interface {
	// Next returns ErrIteratorDone once all pairs were consumed.
	Next() (key, value []byte, err error)
	Release()
}

// CacheableKVStore can stage writes in a savepoint.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a savepoint over a parent store. Reads see the staged
// writes. Write applies them to the parent, Discard drops them. A cache
// wrap can be wrapped again.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent, versioned root of the application state.
// Changes are made through a CacheWrap and persisted by Commit.
type CommitKVStore interface {
	// Get reads the last committed version.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap
	Commit() (CommitID, error)
	// LoadLatestVersion restores the last complete version from disk.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by its height and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
