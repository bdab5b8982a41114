package wire

// scalar is a fixed-width value read and written by one Reader/Writer method.
type scalar[T any] struct {
	name  string
	size  int
	read  func(*Reader, *T)
	write func(*Writer, T)
}

func (s scalar[T]) Name() string   { return s.name }
func (s scalar[T]) Terminal() bool { return false }
func (s scalar[T]) Size(_ *T) int  { return s.size }
func (s scalar[T]) FixedSize() int { return s.size }

func (s scalar[T]) Encode(w *Writer, v *T) error {
	s.write(w, *v)
	return w.Err()
}

func (s scalar[T]) Decode(r *Reader, b Budget, v *T) (Budget, error) {
	b = r.Take(b, s.size)
	s.read(r, v)
	return b, r.Err()
}

// Primitive types. Integers and floats are big-endian; bool is a single 0 or 1 byte.
var (
	Uint8  Type[uint8]  = scalar[uint8]{"u8", 1, (*Reader).ReadUint8, (*Writer).WriteUint8}
	Uint16 Type[uint16] = scalar[uint16]{"u16", 2, (*Reader).ReadUint16, (*Writer).WriteUint16}
	Uint32 Type[uint32] = scalar[uint32]{"u32", 4, (*Reader).ReadUint32, (*Writer).WriteUint32}
	Uint64 Type[uint64] = scalar[uint64]{"u64", 8, (*Reader).ReadUint64, (*Writer).WriteUint64}

	Int8  Type[int8]  = scalar[int8]{"i8", 1, (*Reader).ReadInt8, (*Writer).WriteInt8}
	Int16 Type[int16] = scalar[int16]{"i16", 2, (*Reader).ReadInt16, (*Writer).WriteInt16}
	Int32 Type[int32] = scalar[int32]{"i32", 4, (*Reader).ReadInt32, (*Writer).WriteInt32}
	Int64 Type[int64] = scalar[int64]{"i64", 8, (*Reader).ReadInt64, (*Writer).WriteInt64}

	Float32 Type[float32] = scalar[float32]{"f32", 4, (*Reader).ReadFloat32, (*Writer).WriteFloat32}
	Float64 Type[float64] = scalar[float64]{"f64", 8, (*Reader).ReadFloat64, (*Writer).WriteFloat64}

	Bool Type[bool] = scalar[bool]{"bool", 1, (*Reader).ReadBool, (*Writer).WriteBool}
)
