package monitor

import (
	"github.com/ezrec/regm/translate"
)

var f = translate.From

// ErrCommandUnknown is a monitor command that does not exist.
type ErrCommandUnknown string

func (err ErrCommandUnknown) Error() string {
	return f("unknown command '%v', try 'help'", string(err))
}

// ErrArgument is a command argument that could not be used.
type ErrArgument string

func (err ErrArgument) Error() string {
	return f("bad argument '%v'", string(err))
}
