package wire

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Widen converts a fixed-width unsigned integer to the natural word size.
func Widen[T constraints.Unsigned](v T) uint { return uint(v) }

// WidenSigned converts a fixed-width signed integer to the natural word size.
func WidenSigned[T constraints.Signed](v T) int { return int(v) }

// Narrow converts x to T, failing with ErrOverflow if it does not fit.
func Narrow[T constraints.Integer](x int64) (T, error) {
	n := T(x)
	if int64(n) != x || (n < 0) != (x < 0) {
		return 0, fmt.Errorf("%w: %d does not fit %T", ErrOverflow, x, n)
	}
	return n, nil
}

func widenUnsigned(v any) (uint, error) {
	switch n := v.(type) {
	case uint8:
		return Widen(n), nil
	case uint16:
		return Widen(n), nil
	case uint32:
		return Widen(n), nil
	case uint64:
		if uint64(uint(n)) != n {
			return 0, fmt.Errorf("%w: %d does not fit uint", ErrOverflow, n)
		}
		return Widen(n), nil
	}
	return 0, fmt.Errorf("%w: %T is not unsigned", ErrNotInteger, v)
}

func widenSigned(v any) (int, error) {
	switch n := v.(type) {
	case int8:
		return WidenSigned(n), nil
	case int16:
		return WidenSigned(n), nil
	case int32:
		return WidenSigned(n), nil
	case int64:
		if int64(int(n)) != n {
			return 0, fmt.Errorf("%w: %d does not fit int", ErrOverflow, n)
		}
		return WidenSigned(n), nil
	}
	return 0, fmt.Errorf("%w: %T is not signed", ErrNotInteger, v)
}

// Uint returns the unsigned integer field name of v widened to uint.
// The wire representation is not affected.
func (s *Struct[T]) Uint(v *T, name string) (uint, error) {
	f, err := s.field(name)
	if err != nil {
		return 0, err
	}
	n, err := widenUnsigned(f.value(v))
	if err != nil {
		return 0, fmt.Errorf("%s.%s: %w", s.name, name, err)
	}
	return n, nil
}

// Int returns the signed integer field name of v widened to int.
func (s *Struct[T]) Int(v *T, name string) (int, error) {
	f, err := s.field(name)
	if err != nil {
		return 0, err
	}
	n, err := widenSigned(f.value(v))
	if err != nil {
		return 0, fmt.Errorf("%s.%s: %w", s.name, name, err)
	}
	return n, nil
}

// SetInt assigns x to the integer field name of v, narrowing it to the
// field's width. Values that do not fit fail with ErrOverflow and leave v as is.
func (s *Struct[T]) SetInt(v *T, name string, x int64) error {
	f, err := s.field(name)
	if err != nil {
		return err
	}
	if err := f.setInt(v, x); err != nil {
		return fmt.Errorf("%s.%s: %w", s.name, name, err)
	}
	return nil
}

// Normalized returns every integer field of v widened to int, keyed by field name.
func (s *Struct[T]) Normalized(v *T) (map[string]int, error) {
	out := make(map[string]int)
	for _, f := range s.fields {
		val := f.value(v)
		n, err := widenSigned(val)
		if errors.Is(err, ErrNotInteger) {
			var u uint
			u, err = widenUnsigned(val)
			if errors.Is(err, ErrNotInteger) {
				continue
			}
			if err == nil && u > math.MaxInt {
				err = fmt.Errorf("%w: %d does not fit int", ErrOverflow, u)
			}
			n = int(u)
		}
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", s.name, f.FieldName(), err)
		}
		out[f.FieldName()] = n
	}
	return out, nil
}
