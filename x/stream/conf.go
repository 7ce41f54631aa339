package stream

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/gconf"
)

const packageName = "stream"

// Configuration holds the chain wide limits of streams. It is loaded from
// the genesis file.
type Configuration struct {
	// MaxDuration is the longest accepted stream duration, in the unit of
	// the stream schedule. Zero means no limit.
	MaxDuration int64
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return paystream.MarshalBinary(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return paystream.UnmarshalBinary(raw, c)
}

func (c *Configuration) Validate() error {
	if c.MaxDuration < 0 {
		return errors.Field("MaxDuration", errors.ErrInvalidInput, "must not be negative")
	}
	return nil
}

// loadConf returns the stored configuration or a zero configuration when
// none was set.
func loadConf(db gconf.ReadStore) (Configuration, error) {
	var c Configuration
	err := gconf.LoadOptional(db, packageName, &c)
	return c, err
}

// Initializer fulfils the Initializer interface to load the stream
// configuration from the genesis file.
type Initializer struct{}

var _ paystream.Initializer = Initializer{}

// FromGenesis stores the stream configuration if the genesis declares one.
func (Initializer) FromGenesis(opts paystream.Options, db paystream.KVStore) error {
	err := gconf.InitConfig(db, opts, packageName, &Configuration{})
	if err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	return nil
}
