// Package schema compiles declarative TOML message schemas into wire Types.
//
//	[[message]]
//	name = "pancakes"
//	  [[message.field]]
//	  name = "item"
//	  type = "u32"
//	  [[message.field]]
//	  name = "array"
//	  type = "bytes[2]"
//
// Field types are the primitive names (u8 ... i64, f32, f64, bool), bits,
// bytes, text, endpoint, bytes[N], option<T>, seq<T> and the name of any
// message declared earlier in the file.
package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/oy3o/wire"
)

var (
	ErrUnknownKey     = errors.New("schema: unknown key")
	ErrUnknownType    = errors.New("schema: unknown field type")
	ErrUnknownMessage = errors.New("schema: unknown message")
	ErrDuplicateName  = errors.New("schema: duplicate message name")
	ErrValueType      = errors.New("schema: value does not match field type")
	ErrFieldCount     = errors.New("schema: record does not match message fields")
)

type fileSchema struct {
	Message []messageDecl `toml:"message"`
}

type messageDecl struct {
	Name  string      `toml:"name"`
	Field []fieldDecl `toml:"field"`
}

type fieldDecl struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// Schema is a set of compiled messages.
type Schema struct {
	messages map[string]*Message
	order    []string
}

// Load reads and compiles the schema file at path.
func Load(path string) (*Schema, error) {
	var raw fileSchema
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return compile(raw, meta)
}

// Parse compiles a schema from TOML text.
func Parse(data string) (*Schema, error) {
	var raw fileSchema
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return compile(raw, meta)
}

func compile(raw fileSchema, meta toml.MetaData) (*Schema, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}

	s := &Schema{messages: make(map[string]*Message, len(raw.Message))}
	for _, decl := range raw.Message {
		name := strings.TrimSpace(decl.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: message without a name", ErrUnknownMessage)
		}
		if _, dup := s.messages[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}

		types := make([]wire.Type[any], len(decl.Field))
		for i, f := range decl.Field {
			t, err := s.parseType(f.Type)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", name, f.Name, err)
			}
			types[i] = t
		}
		m, err := newMessage(name, decl.Field, types)
		if err != nil {
			return nil, err
		}
		s.messages[name] = m
		s.order = append(s.order, name)
	}
	return s, nil
}

// Message returns the compiled message called name.
func (s *Schema) Message(name string) (*Message, error) {
	m, ok := s.messages[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessage, name)
	}
	return m, nil
}

// Messages returns the message names in declaration order.
func (s *Schema) Messages() []string {
	return append([]string(nil), s.order...)
}

var primitives = map[string]wire.Type[any]{
	"u8":       Erase(wire.Uint8),
	"u16":      Erase(wire.Uint16),
	"u32":      Erase(wire.Uint32),
	"u64":      Erase(wire.Uint64),
	"i8":       Erase(wire.Int8),
	"i16":      Erase(wire.Int16),
	"i32":      Erase(wire.Int32),
	"i64":      Erase(wire.Int64),
	"f32":      Erase(wire.Float32),
	"f64":      Erase(wire.Float64),
	"bool":     Erase(wire.Bool),
	"bits":     Erase(wire.Bits),
	"bytes":    Erase(wire.Bytes),
	"text":     Erase(wire.Text),
	"endpoint": Erase(wire.Endpoint),
}

func (s *Schema) parseType(expr string) (wire.Type[any], error) {
	expr = strings.TrimSpace(expr)

	if t, ok := primitives[expr]; ok {
		return t, nil
	}
	if m, ok := s.messages[expr]; ok {
		return Erase[Record](m), nil
	}

	if inner, ok := unwrap(expr, "option<", ">"); ok {
		t, err := s.parseType(inner)
		if err != nil {
			return nil, err
		}
		return Erase(wire.Option(t)), nil
	}

	if inner, ok := unwrap(expr, "seq<", ">"); ok {
		t, err := s.parseType(inner)
		if err != nil {
			return nil, err
		}
		if t.Terminal() {
			return nil, fmt.Errorf("%w: seq element %s", wire.ErrTerminalField, t.Name())
		}
		return Erase(wire.Sequence(t)), nil
	}

	if inner, ok := unwrap(expr, "bytes[", "]"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(inner))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, expr)
		}
		return Erase(wire.FixedBytes(n)), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownType, expr)
}

func unwrap(expr, open, end string) (string, bool) {
	if !strings.HasPrefix(expr, open) || !strings.HasSuffix(expr, end) {
		return "", false
	}
	return expr[len(open) : len(expr)-len(end)], true
}
