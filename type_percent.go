package supplycurve

import (
	"fmt"
	"strconv"
)

// Percent is a ratio expressed in percents, 100 meaning the whole.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// Text returns the shortest decimal representation, as exported in CSV files.
func (p Percent) Text() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}
