package errors

import (
	"github.com/cockroachdb/errors"
)

var (
	New       = errors.New
	Newf      = errors.Newf
	Errorf    = errors.Errorf
	Wrap      = errors.Wrap
	Wrapf     = errors.Wrapf
	WithStack = errors.WithStack
	Is        = errors.Is
	As        = errors.As
	Unwrap    = errors.Unwrap
	Cause     = errors.Cause
)
