package store

import "github.com/iov-one/quorum"

type (
	ReadOnlyKVStore  = quorum.ReadOnlyKVStore
	SetDeleter       = quorum.SetDeleter
	KVStore          = quorum.KVStore
	Iterator         = quorum.Iterator
	CacheableKVStore = quorum.CacheableKVStore
	KVCacheWrap      = quorum.KVCacheWrap
	CommitKVStore    = quorum.CommitKVStore
	CommitID         = quorum.CommitID
	Model            = quorum.Model
)
