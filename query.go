package quorum

import (
	"fmt"
)

// Query modifiers, given after a "?" in the query path.
const (
	// KeyQueryMod looks up a single key.
	KeyQueryMod = ""
	// PrefixQueryMod returns every model whose key starts with the data.
	PrefixQueryMod = "prefix"
)

// Model is a stored key value pair.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers abci queries for a single path. The store is a
// read only view of the last committed state.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRouter maps query paths like "/wallets" to their handlers.
type QueryRouter map[string]QueryHandler

func NewQueryRouter() QueryRouter {
	return make(QueryRouter)
}

// Register panics when the path is taken.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r[path]; ok {
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r[path] = h
}

// RegisterAll lets every extension add its query paths.
func (r QueryRouter) RegisterAll(registers ...func(QueryRouter)) {
	for _, register := range registers {
		register(r)
	}
}

// Handler is nil for an unknown path.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r[path]
}
