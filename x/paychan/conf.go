package paychan

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/gconf"
)

const packageName = "paychan"

// Configuration holds the chain wide limits of payment channels.
type Configuration struct {
	// MinDeposit is the smallest deposit a channel can be opened with.
	// Zero accepts any positive deposit.
	MinDeposit int64
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return paystream.MarshalBinary(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return paystream.UnmarshalBinary(raw, c)
}

func (c *Configuration) Validate() error {
	if c.MinDeposit < 0 {
		return errors.Field("MinDeposit", errors.ErrInvalidInput, "must not be negative")
	}
	return nil
}

func loadConf(db gconf.ReadStore) (Configuration, error) {
	var c Configuration
	err := gconf.LoadOptional(db, packageName, &c)
	return c, err
}

// Initializer loads the payment channel configuration from the genesis file.
type Initializer struct{}

var _ paystream.Initializer = Initializer{}

// FromGenesis stores the configuration if the genesis declares one.
func (Initializer) FromGenesis(opts paystream.Options, db paystream.KVStore) error {
	err := gconf.InitConfig(db, opts, packageName, &Configuration{})
	if err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	return nil
}
