package bench

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config stores benchmark configuration.
type Config struct {
	// People is the number of entities generated besides Romeo and Juliet.
	People int `yaml:"people"`

	// Workers is the number of goroutines generating tribles.
	Workers int `yaml:"workers"`
}

// DefaultConfig is the default benchmark configuration.
var DefaultConfig = Config{
	People:  100_000,
	Workers: 4,
}

// LoadConfig reads profile from YAML file. Fields missing in the file keep their values.
func LoadConfig(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WithStack(err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil {
		return errors.Wrapf(err, "parsing profile %s failed", path)
	}
	return config.validate()
}

func (c Config) validate() error {
	if c.People < 0 {
		return errors.Errorf("number of people must not be negative, got %d", c.People)
	}
	if c.Workers <= 0 {
		return errors.Errorf("number of workers must be positive, got %d", c.Workers)
	}
	return nil
}
