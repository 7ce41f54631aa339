package server

import (
	"io/ioutil"
	"os"

	"github.com/paystream/paystream/errors"
	"github.com/tendermint/tendermint/libs/log"
	yaml "gopkg.in/yaml.v2"
)

// ConfigFile is the name of the node configuration file inside of the home
// directory.
const ConfigFile = "config.yaml"

// Config holds the node settings. Flags given to the start command take
// precedence over the file.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string `yaml:"bind"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `yaml:"log_level"`
	// Metrics is the address of the Prometheus endpoint. Empty disables it.
	Metrics string `yaml:"metrics"`
	// Debug returns the full error information in ABCI responses.
	Debug bool `yaml:"debug"`
	// EventBusCapacity bounds the queue of not yet delivered events.
	EventBusCapacity int `yaml:"event_bus_capacity"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Bind:             "tcp://localhost:26658",
		LogLevel:         "info",
		EventBusCapacity: 256,
	}
}

// Validate returns an error if the configuration cannot be used to start a
// node.
func (c Config) Validate() error {
	var errs error
	if c.Bind == "" {
		errs = errors.Append(errs, errors.Field("Bind", errors.ErrEmpty, "required"))
	}
	if _, err := log.AllowLevel(c.LogLevel); err != nil {
		errs = errors.Append(errs, errors.Field("LogLevel", errors.ErrInvalidInput, err.Error()))
	}
	if c.EventBusCapacity < 1 {
		errs = errors.Append(errs, errors.Field("EventBusCapacity", errors.ErrInvalidInput, "must be positive"))
	}
	return errs
}

// LoadConfig reads the configuration file. Values missing in the file keep
// their defaults. A missing file yields the default configuration.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	raw, err := ioutil.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return conf, nil
	case err != nil:
		return conf, errors.Wrap(err, "read config")
	}
	if err := yaml.UnmarshalStrict(raw, &conf); err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := conf.Validate(); err != nil {
		return conf, errors.Wrap(err, path)
	}
	return conf, nil
}

// WriteConfig serializes the configuration into given file.
func WriteConfig(path string, conf Config) error {
	raw, err := yaml.Marshal(conf)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return ioutil.WriteFile(path, raw, 0600)
}
