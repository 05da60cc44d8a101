package orm

import (
	"reflect"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Model is a protobuf message that can check its own consistency.
type Model interface {
	proto.Message
	Validate() error
}

// ModelBucket stores models of a single type under "<name>:<key>". Reading
// into, or writing, a model of another type fails with ErrType.
type ModelBucket interface {
	// One loads the model stored under key into dest. ErrNotFound when
	// missing.
	One(db quorum.ReadOnlyKVStore, key []byte, dest Model) error
	// Has returns ErrNotFound when nothing is stored under key.
	Has(db quorum.ReadOnlyKVStore, key []byte) error
	// Put validates m and stores it, replacing any previous value.
	Put(db quorum.KVStore, key []byte, m Model) error
	// Insert is Put that fails with ErrDuplicate when key is taken.
	Insert(db quorum.KVStore, key []byte, m Model) error
	Delete(db quorum.KVStore, key []byte) error

	// Query serves the key and prefix query mods. Returned keys include
	// the bucket prefix.
	quorum.QueryHandler
	// Register serves Query under "/<name>".
	Register(name string, r quorum.QueryRouter)
}

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// NewModelBucket returns a ModelBucket instance. Name is used as the key
// prefix of all models stored by this bucket.
func NewModelBucket(name string, m Model) ModelBucket {
	if !isBucketName(name) {
		panic("illegal bucket: " + name)
	}
	return &modelBucket{
		name:  name,
		model: reflect.TypeOf(m),
	}
}

type modelBucket struct {
	name  string
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

// dbKey is the full key we store in the db, including prefix.
func (mb *modelBucket) dbKey(key []byte) []byte {
	res := make([]byte, 0, len(mb.name)+1+len(key))
	res = append(res, mb.name...)
	res = append(res, ':')
	return append(res, key...)
}

func (mb *modelBucket) One(db quorum.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := mb.ensureType(dest); err != nil {
		return err
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	dest.Reset()
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot decode %s: %s", mb.name, err)
	}
	return nil
}

func (mb *modelBucket) Has(db quorum.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	return nil
}

func (mb *modelBucket) Put(db quorum.KVStore, key []byte, m Model) error {
	if err := mb.ensureType(m); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot encode %s: %s", mb.name, err)
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Insert(db quorum.KVStore, key []byte, m Model) error {
	switch err := mb.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "%s %X", mb.name, key)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return mb.Put(db, key, m)
}

func (mb *modelBucket) Delete(db quorum.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

func (mb *modelBucket) ensureType(m Model) error {
	if t := reflect.TypeOf(m); t != mb.model {
		return errors.Wrapf(errors.ErrType, "%s bucket stores %s, got %s", mb.name, mb.model, t)
	}
	return nil
}
