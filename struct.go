package wire

import (
	"fmt"
	"reflect"
)

// Struct is the Type of an aggregate built from an ordered list of fields.
// Fields are written in declaration order and the decode budget is threaded
// through them left to right.
//
// Because the budget flows left to right, at most one field may be
// budget-terminal and it must be the last one. NewStruct rejects any other
// layout. A Struct whose last field is terminal is itself terminal.
type Struct[T any] struct {
	name   string
	fields []Member[T]
	index  map[string]int
}

// NewStruct builds a struct schema. An empty name defaults to the Go type name.
// Schemas are immutable; build them once per type and reuse them.
func NewStruct[T any](name string, fields ...Member[T]) (*Struct[T], error) {
	if name == "" {
		name = reflect.TypeFor[T]().Name()
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFields, name)
	}

	s := &Struct[T]{
		name:   name,
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	last := len(fields) - 1
	for i, f := range fields {
		fname := f.FieldName()
		if _, dup := s.index[fname]; dup || fname == "" {
			return nil, fmt.Errorf("%w: %s.%q", ErrDuplicateField, name, fname)
		}
		if f.Terminal() && i != last {
			return nil, fmt.Errorf("%w: %s.%s (%s) is field %d of %d",
				ErrTerminalField, name, fname, f.TypeName(), i+1, len(fields))
		}
		s.index[fname] = i
	}
	return s, nil
}

// MustStruct is like NewStruct but panics on an invalid schema.
// It is intended for package-level schema variables.
func MustStruct[T any](name string, fields ...Member[T]) *Struct[T] {
	s, err := NewStruct(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Struct[T]) Name() string { return s.name }

func (s *Struct[T]) Terminal() bool {
	return s.fields[len(s.fields)-1].Terminal()
}

// Fields returns the field names in declaration order.
func (s *Struct[T]) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.FieldName()
	}
	return names
}

// Size is the sum of the field sizes.
func (s *Struct[T]) Size(v *T) int {
	total := 0
	for _, f := range s.fields {
		total += f.size(v)
	}
	return total
}

func (s *Struct[T]) Encode(w *Writer, v *T) error {
	for _, f := range s.fields {
		if err := f.encode(w, v); err != nil {
			return fmt.Errorf("%s.%s: %w", s.name, f.FieldName(), err)
		}
	}
	return w.Err()
}

// Decode decodes into a copy of *v and only assigns it once every field
// decoded, so a failed decode never leaves a half-filled value behind.
func (s *Struct[T]) Decode(r *Reader, b Budget, v *T) (Budget, error) {
	x := *v
	for _, f := range s.fields {
		rest, err := f.decode(r, b, &x)
		if err == nil {
			rest, err = b.Settle(rest)
		}
		if err != nil {
			return b, fmt.Errorf("%s.%s: %w", s.name, f.FieldName(), err)
		}
		b = rest
	}
	*v = x
	return b, nil
}

func (s *Struct[T]) field(name string) (Member[T], error) {
	i, ok := s.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, s.name, name)
	}
	return s.fields[i], nil
}
