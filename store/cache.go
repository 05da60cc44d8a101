package store

import (
	"bytes"

	"github.com/google/btree"
)

const btreeDegree = 16

// entry is a single key held in a btree. A deleted entry hides the value
// of the parent store.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e *entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(*entry).key) < 0
}

// entriesInRange returns the btree entries within [start, end) in
// ascending order, or descending when reverse is set.
func entriesInRange(tree *btree.BTree, start, end []byte, reverse bool) []*entry {
	var res []*entry
	collect := func(i btree.Item) bool {
		res = append(res, i.(*entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		tree.Ascend(collect)
	case start == nil:
		tree.AscendLessThan(&entry{key: end}, collect)
	case end == nil:
		tree.AscendGreaterOrEqual(&entry{key: start}, collect)
	default:
		tree.AscendRange(&entry{key: start}, &entry{key: end}, collect)
	}
	if reverse {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res
}

// MemStore returns a store that keeps all data in memory. State is lost
// with the process.
func MemStore() CacheableKVStore {
	return NewCacheable(&memStore{tree: btree.New(btreeDegree)})
}

type memStore struct {
	tree *btree.BTree
}

func (m *memStore) Get(key []byte) ([]byte, error) {
	if e, ok := m.tree.Get(&entry{key: key}).(*entry); ok {
		return e.value, nil
	}
	return nil, nil
}

func (m *memStore) Has(key []byte) (bool, error) {
	return m.tree.Has(&entry{key: key}), nil
}

func (m *memStore) Set(key, value []byte) error {
	m.tree.ReplaceOrInsert(&entry{key: key, value: value})
	return nil
}

func (m *memStore) Delete(key []byte) error {
	m.tree.Delete(&entry{key: key})
	return nil
}

func (m *memStore) Iterator(start, end []byte) (Iterator, error) {
	return entryIterator(entriesInRange(m.tree, start, end, false)), nil
}

func (m *memStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return entryIterator(entriesInRange(m.tree, start, end, true)), nil
}

func entryIterator(entries []*entry) Iterator {
	models := make([]Model, len(entries))
	for i, e := range entries {
		models[i] = Model{Key: e.key, Value: e.value}
	}
	return NewSliceIterator(models)
}

// NewCacheable adds savepoint support to a plain KVStore.
func NewCacheable(kv KVStore) CacheableKVStore {
	return cacheable{KVStore: kv}
}

type cacheable struct {
	KVStore
}

func (c cacheable) CacheWrap() KVCacheWrap {
	return newCacheWrap(c.KVStore)
}

// cacheWrap stages writes in a btree until they are written to the parent
// or discarded.
type cacheWrap struct {
	staged *btree.BTree
	parent KVStore
}

var _ KVCacheWrap = (*cacheWrap)(nil)

func newCacheWrap(parent KVStore) *cacheWrap {
	return &cacheWrap{staged: btree.New(btreeDegree), parent: parent}
}

func (c *cacheWrap) CacheWrap() KVCacheWrap {
	return newCacheWrap(c)
}

func (c *cacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := c.staged.Get(&entry{key: key}).(*entry); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return c.parent.Get(key)
}

func (c *cacheWrap) Has(key []byte) (bool, error) {
	if e, ok := c.staged.Get(&entry{key: key}).(*entry); ok {
		return !e.deleted, nil
	}
	return c.parent.Has(key)
}

func (c *cacheWrap) Set(key, value []byte) error {
	c.staged.ReplaceOrInsert(&entry{key: key, value: value})
	return nil
}

func (c *cacheWrap) Delete(key []byte) error {
	c.staged.ReplaceOrInsert(&entry{key: key, deleted: true})
	return nil
}

func (c *cacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(entriesInRange(c.staged, start, end, false), parent, false), nil
}

func (c *cacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(entriesInRange(c.staged, start, end, true), parent, true), nil
}

// Write applies all staged changes to the parent in key order and empties
// the cache. The cache can be used again afterwards.
func (c *cacheWrap) Write() error {
	var err error
	c.staged.Ascend(func(i btree.Item) bool {
		e := i.(*entry)
		if e.deleted {
			err = c.parent.Delete(e.key)
		} else {
			err = c.parent.Set(e.key, e.value)
		}
		return err == nil
	})
	c.Discard()
	return err
}

func (c *cacheWrap) Discard() {
	c.staged = btree.New(btreeDegree)
}
