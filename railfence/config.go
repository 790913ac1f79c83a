package railfence

import (
	"github.com/corpix/railfence/errors"
)

const DefaultRails = 3

type Config struct {
	Rails int `yaml:"rails"`
}

func (c *Config) Default() {
	if c.Rails == 0 {
		c.Rails = DefaultRails
	}
}

func (c *Config) Validate() error {
	if c.Rails < 1 {
		return errors.Wrapf(ErrInvalidRails, "rails is %d", c.Rails)
	}
	return nil
}

func NewFromConfig(c *Config) (*RailFence, error) {
	return New(c.Rails)
}
