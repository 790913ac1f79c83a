package encoding

import (
	"strings"

	"github.com/corpix/railfence/errors"
)

type (
	EncodeDecoder interface {
		Encode([]byte) ([]byte, error)
		Decode([]byte) ([]byte, error)
	}
	EncodeDecoderType string

	Config struct {
		Type string `yaml:"type"`
	}
)

const (
	EncodeDecoderTypeRaw    EncodeDecoderType = "raw"
	EncodeDecoderTypeBase64 EncodeDecoderType = "base64"
	EncodeDecoderTypeZstd   EncodeDecoderType = "zstd"
)

var EncodeDecoderTypes = []EncodeDecoderType{
	EncodeDecoderTypeRaw,
	EncodeDecoderTypeBase64,
	EncodeDecoderTypeZstd,
}

func (c *Config) Default() {
	if c.Type == "" {
		c.Type = string(EncodeDecoderTypeRaw)
	}
}

func (c *Config) Validate() error {
	switch EncodeDecoderType(strings.ToLower(c.Type)) {
	case
		EncodeDecoderTypeRaw,
		EncodeDecoderTypeBase64,
		EncodeDecoderTypeZstd:
	default:
		return errors.Errorf("unsupported encode decoder %q", c.Type)
	}
	return nil
}

//

func NewEncodeDecoder(t string) (EncodeDecoder, error) {
	switch EncodeDecoderType(strings.ToLower(t)) {
	case EncodeDecoderTypeRaw:
		return NewEncodeDecoderRaw(), nil
	case EncodeDecoderTypeBase64:
		return NewEncodeDecoderBase64(), nil
	case EncodeDecoderTypeZstd:
		return NewEncodeDecoderZstd(), nil
	default:
		return nil, errors.Errorf("unsupported encode decoder %q", t)
	}
}

func NewEncodeDecoderFromConfig(c *Config) (EncodeDecoder, error) {
	return NewEncodeDecoder(c.Type)
}
