package config

import (
	"github.com/corpix/revip"
)

type (
	Config            = revip.Config
	Container         = revip.Container
	Defaultable       = revip.Defaultable
	Expandable        = revip.Expandable
	Validatable       = revip.Validatable
	Marshaler         = revip.Marshaler
	Unmarshaler       = revip.Unmarshaler
	Option            = revip.SourceOption
	ErrFileNotFound   = revip.ErrFileNotFound
	ErrMarshal        = revip.ErrMarshal
	ErrUnmarshal      = revip.ErrUnmarshal
	ErrPostprocess    = revip.ErrPostprocess
	ErrUnexpectedKind = revip.ErrUnexpectedKind
)

// EnvironPrefix is a prefix of environment variables overriding the
// configuration, RAILFENCE_CIPHER_RAILS for example.
const EnvironPrefix = "RAILFENCE"

//

var (
	FromEnviron    = revip.FromEnviron
	FromFile       = revip.FromFile
	FromReader     = revip.FromReader
	Load           = revip.Load
	New            = revip.New
	Postprocess    = revip.Postprocess
	ToWriter       = revip.ToWriter
	WithDefaults   = revip.WithDefaults
	WithExpansion  = revip.WithExpansion
	WithValidation = revip.WithValidation

	JsonMarshaler   = revip.JsonMarshaler
	JsonUnmarshaler = revip.JsonUnmarshaler
	YamlMarshaler   = revip.YamlMarshaler
	YamlUnmarshaler = revip.YamlUnmarshaler
	TomlMarshaler   = revip.TomlMarshaler
	TomlUnmarshaler = revip.TomlUnmarshaler
)
