package supplycurve

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a parameter is outside of its domain.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidFrequency is returned for frequency tokens that cannot be handled.
	ErrInvalidFrequency = fmt.Errorf("%w: cannot handle frequency", ErrInvalidArgument)
	// ErrEmptySeries is returned when building a curve from no data at all.
	ErrEmptySeries = errors.New("empty supply series")
	// ErrZeroTerminalSupply is returned when the last total supply is zero, percentages are undefined then.
	ErrZeroTerminalSupply = errors.New("final total supply is zero")
)
