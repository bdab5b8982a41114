package wire

import "golang.org/x/exp/constraints"

// Member is one field of a struct schema. Build it with Field.
type Member[S any] interface {
	// FieldName is the name given to Field.
	FieldName() string
	// TypeName is the Name of the field's Type.
	TypeName() string
	// Terminal reports whether the field's Type is budget-terminal.
	Terminal() bool

	size(s *S) int
	encode(w *Writer, s *S) error
	decode(r *Reader, b Budget, s *S) (Budget, error)
	value(s *S) any
	setInt(s *S, x int64) error
}

type field[S, F any] struct {
	name string
	get  func(*S) *F
	typ  Type[F]
}

// Field describes a struct field: its name, an accessor returning a pointer to
// the field inside the struct, and its wire Type.
//
//	wire.Field("item", func(p *Pancakes) *uint32 { return &p.Item }, wire.Uint32)
func Field[S, F any](name string, get func(*S) *F, t Type[F]) Member[S] {
	return &field[S, F]{name: name, get: get, typ: t}
}

func (f *field[S, F]) FieldName() string { return f.name }
func (f *field[S, F]) TypeName() string  { return f.typ.Name() }
func (f *field[S, F]) Terminal() bool    { return f.typ.Terminal() }

func (f *field[S, F]) size(s *S) int                { return f.typ.Size(f.get(s)) }
func (f *field[S, F]) encode(w *Writer, s *S) error { return f.typ.Encode(w, f.get(s)) }
func (f *field[S, F]) value(s *S) any               { return *f.get(s) }

func (f *field[S, F]) decode(r *Reader, b Budget, s *S) (Budget, error) {
	return f.typ.Decode(r, b, f.get(s))
}

func (f *field[S, F]) setInt(s *S, x int64) error {
	switch p := any(f.get(s)).(type) {
	case *uint8:
		return assign(p, x)
	case *uint16:
		return assign(p, x)
	case *uint32:
		return assign(p, x)
	case *uint64:
		return assign(p, x)
	case *int8:
		return assign(p, x)
	case *int16:
		return assign(p, x)
	case *int32:
		return assign(p, x)
	case *int64:
		return assign(p, x)
	}
	return ErrNotInteger
}

func assign[T constraints.Integer](p *T, x int64) error {
	n, err := Narrow[T](x)
	if err != nil {
		return err
	}
	*p = n
	return nil
}
