package supplycurve

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is an exact amount of coins.
type Quantity struct {
	value decimal.Decimal
}

func Q[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

// ParseQuantity parses a decimal amount such as "21000000" or "6.25".
func ParseQuantity(s string) (Quantity, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return Quantity{value: v}, nil
}

func (t Quantity) Equal(p Quantity) bool   { return t.value.Equal(p.value) }
func (t Quantity) Mul(p Quantity) Quantity { return Quantity{value: t.value.Mul(p.value)} }
func (t Quantity) IsPositive() bool        { return t.value.IsPositive() }
func (t Quantity) IsZero() bool            { return t.value.IsZero() }
func (t Quantity) Float64() float64        { return t.value.InexactFloat64() }
func (q Quantity) String() string          { return q.value.String() }

// PercentOf returns t as a percentage of total. total must not be zero.
func (t Quantity) PercentOf(total Quantity) Percent {
	return Percent(t.value.Div(total.value).Mul(decimal.NewFromInt(100)).InexactFloat64())
}

func (t *Quantity) UnmarshalJSON(decimalBytes []byte) error {
	return t.value.UnmarshalJSON(decimalBytes)
}

// UnmarshalText lets yaml documents carry quantities as plain scalars.
func (t *Quantity) UnmarshalText(text []byte) error {
	return t.value.UnmarshalText(text)
}
