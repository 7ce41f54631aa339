package gconf

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
)

// ReadStore is a subset of paystream.ReadOnlyKVStore.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is a subset of paystream.KVStore.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// GenesisKey is the app_state section holding configurations, indexed by
// package name.
const GenesisKey = "gconf"

func dbKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save will Validate the object, before writing it to a special "configuration"
// singleton for that package name.
func Save(db Store, pkg string, src ValidMarshaler) error {
	key := dbKey(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	return db.Set(key, raw)
}

// ValidMarshaler is implemented by object that can serialize itself to a binary
// representation. You must add your own Validate method.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Load reads the configuration of given package into dst. ErrNotFound is
// returned when none was saved.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	key := dbKey(pkg)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", key)
	}
	return nil
}

// LoadOptional works like Load but leaves dst untouched and returns no error
// when the configuration does not exist.
func LoadOptional(db ReadStore, pkg string, dst Unmarshaler) error {
	if err := Load(db, pkg, dst); err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	return nil
}

// Unmarshaler is implemented by object that can load their state from given
// binary representation.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

// InitConfig will take opts["gconf"][pkg], parse it into the given
// Configuration object, validate it, and store under the proper key in the
// database.
// Returns ErrNotFound if the genesis declares no configuration for pkg.
func InitConfig(db Store, opts paystream.Options, pkg string, conf Configuration) error {
	var confOptions paystream.Options
	if err := opts.ReadOptions(GenesisKey, &confOptions); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(errors.ErrInput, "read configuration for %s: %s", pkg, err)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
