package main

import (
	"os"

	"github.com/corpix/railfence/cli"
	"github.com/corpix/railfence/config"
	"github.com/corpix/railfence/encoding"
	"github.com/corpix/railfence/http"
	"github.com/corpix/railfence/log"
	"github.com/corpix/railfence/railfence"
)

type Config struct {
	Log      *log.Config       `yaml:"log"`
	Cipher   *railfence.Config `yaml:"cipher"`
	Encoding *encoding.Config  `yaml:"encoding"`
	Http     *http.Config      `yaml:"http"`
}

func (c *Config) Default() {
	if c.Log == nil {
		c.Log = &log.Config{}
	}
	if c.Cipher == nil {
		c.Cipher = &railfence.Config{}
	}
	if c.Encoding == nil {
		c.Encoding = &encoding.Config{}
	}
	if c.Http == nil {
		c.Http = &http.Config{}
	}

	c.Log.Default()
	c.Cipher.Default()
	c.Encoding.Default()
	c.Http.Default()
}

func (c *Config) Validate() error {
	for _, v := range []config.Validatable{c.Log, c.Cipher, c.Encoding, c.Http, c.Http.Metrics} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) Expand() error {
	return c.Http.Metrics.Expand()
}

func (c *Config) LogConfig() *log.Config           { return c.Log }
func (c *Config) CipherConfig() *railfence.Config  { return c.Cipher }
func (c *Config) EncodingConfig() *encoding.Config { return c.Encoding }
func (c *Config) HttpConfig() *http.Config         { return c.Http }

func NewConfig() *Config {
	c := &Config{}
	c.Default()
	return c
}

var version = "dev"

//

func main() {
	conf := NewConfig()

	cli.New(
		cli.WithName("railfence"),
		cli.WithUsage("Rail fence cipher"),
		cli.WithDescription("Encipher and decipher text with the rail fence transposition cipher from the command line or over HTTP"),
		cli.WithVersion(version),
		cli.WithConfigTools(
			conf,
			config.YamlUnmarshaler,
			config.YamlMarshaler,
		),
		cli.WithLogTools(conf.LogConfig, log.WithOutput(os.Stderr)),
		cli.WithCipherTools(conf.CipherConfig, conf.EncodingConfig),
		cli.WithHttpTools(conf.HttpConfig, conf.CipherConfig),
	).RunAndExitOnError()
}
