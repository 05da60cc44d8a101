package store

import (
	"bytes"

	"github.com/iov-one/quorum/errors"
)

// NewSliceIterator iterates over models in the given order.
func NewSliceIterator(models []Model) Iterator {
	return &sliceIterator{models: models}
}

type sliceIterator struct {
	models []Model
}

func (s *sliceIterator) Next() ([]byte, []byte, error) {
	if len(s.models) == 0 {
		return nil, nil, errors.ErrIteratorDone
	}
	m := s.models[0]
	s.models = s.models[1:]
	return m.Key, m.Value, nil
}

func (s *sliceIterator) Release() {
	s.models = nil
}

// mergeIterator combines staged entries with the parent iterator. A staged
// entry shadows the parent pair of the same key.
type mergeIterator struct {
	staged  []*entry
	reverse bool

	parent   Iterator
	next     *Model
	finished bool
}

func newMergeIterator(staged []*entry, parent Iterator, reverse bool) *mergeIterator {
	return &mergeIterator{staged: staged, parent: parent, reverse: reverse}
}

func (m *mergeIterator) Next() ([]byte, []byte, error) {
	for {
		if err := m.peekParent(); err != nil {
			return nil, nil, err
		}
		if len(m.staged) == 0 {
			if m.next == nil {
				return nil, nil, errors.ErrIteratorDone
			}
			return m.takeParent()
		}

		e := m.staged[0]
		if m.next != nil {
			order := bytes.Compare(e.key, m.next.Key)
			if m.reverse {
				order = -order
			}
			if order > 0 {
				return m.takeParent()
			}
			if order == 0 {
				m.next = nil
			}
		}
		m.staged = m.staged[1:]
		if !e.deleted {
			return e.key, e.value, nil
		}
	}
}

func (m *mergeIterator) takeParent() ([]byte, []byte, error) {
	p := m.next
	m.next = nil
	return p.Key, p.Value, nil
}

func (m *mergeIterator) peekParent() error {
	if m.next != nil || m.finished {
		return nil
	}
	key, value, err := m.parent.Next()
	switch {
	case err == nil:
		m.next = &Model{Key: key, Value: value}
	case errors.ErrIteratorDone.Is(err):
		m.finished = true
	default:
		return err
	}
	return nil
}

func (m *mergeIterator) Release() {
	m.parent.Release()
	m.staged = nil
}
