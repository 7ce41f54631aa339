/*
Package orm maps models onto the key value store.

A ModelBucket stores one kind of model under its own key prefix. Keys handed
out by its Sequence are fixed width and increasing, so two buckets can never
collide and ids are never reused.
*/
package orm

import (
	"reflect"
	"regexp"

	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
)

// Model is impelemented by any entity that can be stored using ModelBucket.
type Model interface {
	paystream.Persistent
	Validate() error
}

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// ModelBucket stores models of a single type under a dedicated prefix.
type ModelBucket struct {
	name   string
	prefix []byte
	model  reflect.Type
	seq    Sequence
}

// NewModelBucket returns a bucket storing models of the same type as given
// instance. Name must be unique across the application and is used as the
// key prefix.
func NewModelBucket(name string, m Model) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	return ModelBucket{
		name:   name,
		prefix: []byte(name + ":"),
		model:  reflect.TypeOf(m),
		seq:    NewSequence(name, "id"),
	}
}

// Name returns the name of the bucket.
func (mb ModelBucket) Name() string {
	return mb.name
}

// DBKey is the full key used in the store.
func (mb ModelBucket) DBKey(key []byte) []byte {
	return append(append([]byte{}, mb.prefix...), key...)
}

// One query the database for a single model instance. Lookup is done by the
// primary key. Result is loaded into given destination model.
// This method returns ErrNotFound if the entity does not exist in the
// database.
func (mb ModelBucket) One(db paystream.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := mb.assertType(dest); err != nil {
		return err
	}
	raw, err := db.Get(mb.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the store")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %s", mb.name)
	}
	return nil
}

// Has returns true if an entity with given key exists.
func (mb ModelBucket) Has(db paystream.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(mb.DBKey(key))
}

// Put saves given model in the database. If key is nil, the next value of the
// bucket sequence is used. The key of the stored model is returned.
func (mb ModelBucket) Put(db paystream.KVStore, key []byte, m Model) ([]byte, error) {
	if err := mb.assertType(m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}
	if key == nil {
		next, err := mb.seq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "next id")
		}
		key = next
	}
	raw, err := m.Marshal()
	if err != nil {
		return nil, errors.Wrapf(err, "cannot marshal %s", mb.name)
	}
	if err := db.Set(mb.DBKey(key), raw); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	return key, nil
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (mb ModelBucket) Delete(db paystream.KVStore, key []byte) error {
	ok, err := mb.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	return db.Delete(mb.DBKey(key))
}

func (mb ModelBucket) assertType(m Model) error {
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrInvalidType, "%s bucket stores %v, got %T", mb.name, mb.model, m)
	}
	return nil
}

// Query returns the raw model stored under the key given as data.
func (mb ModelBucket) Query(ctx paystream.Context, db paystream.ReadOnlyKVStore, mod string, data []byte) ([]paystream.Model, error) {
	if mod != "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod %q", mod)
	}
	key := mb.DBKey(data)
	raw, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return []paystream.Model{{Key: key, Value: raw}}, nil
}

// Register exposes the bucket content under given query path.
func (mb ModelBucket) Register(path string, r paystream.QueryRouter) {
	r.Register(path, mb)
}
