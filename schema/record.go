package schema

import (
	"encoding/json"
	"fmt"

	"github.com/oy3o/wire"
)

// Record is a decoded message: one value per field, in field order.
//
// Values use the Go types of package wire: uint8..int64, float32/64, bool,
// wire.BitSet, []byte, string, netip.AddrPort, *any for option<T>, []any for
// seq<T> and Record for nested messages.
type Record struct {
	Message string
	Fields  []string
	Values  []any
}

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	for i, f := range r.Fields {
		if f == name && i < len(r.Values) {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Map returns the record as a map keyed by field name.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r.Fields))
	for i, f := range r.Fields {
		if i < len(r.Values) {
			out[f] = r.Values[i]
		}
	}
	return out
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// Message is the wire.Type of one declared message.
type Message struct {
	name   string
	fields []string
	st     *wire.Struct[Record]
}

func newMessage(name string, decls []fieldDecl, types []wire.Type[any]) (*Message, error) {
	m := &Message{name: name, fields: make([]string, len(decls))}
	members := make([]wire.Member[Record], len(decls))
	for i, d := range decls {
		m.fields[i] = d.Name
		members[i] = wire.Field(d.Name, slot(i), types[i])
	}
	st, err := wire.NewStruct(name, members...)
	if err != nil {
		return nil, err
	}
	m.st = st
	return m, nil
}

// slot returns the accessor of field i. Records are sized by Message before
// any accessor runs.
func slot(i int) func(*Record) *any {
	return func(r *Record) *any { return &r.Values[i] }
}

// New builds a record of this message from values in field order.
func (m *Message) New(values ...any) Record {
	return Record{Message: m.name, Fields: m.fields, Values: values}
}

// Fields returns the field names in declaration order.
func (m *Message) Fields() []string { return m.fields }

func (m *Message) Name() string   { return m.name }
func (m *Message) Terminal() bool { return m.st.Terminal() }

func (m *Message) check(v *Record) error {
	if len(v.Values) != len(m.fields) {
		return fmt.Errorf("%w: %s has %d fields, record has %d values", ErrFieldCount, m.name, len(m.fields), len(v.Values))
	}
	return nil
}

func (m *Message) Size(v *Record) int {
	if m.check(v) != nil {
		return 0
	}
	return m.st.Size(v)
}

func (m *Message) Encode(w *wire.Writer, v *Record) error {
	if err := m.check(v); err != nil {
		return err
	}
	return m.st.Encode(w, v)
}

// Decode always decodes into a fresh record, so v is only replaced on success.
func (m *Message) Decode(r *wire.Reader, b wire.Budget, v *Record) (wire.Budget, error) {
	x := Record{Message: m.name, Fields: m.fields, Values: make([]any, len(m.fields))}
	rest, err := m.st.Decode(r, b, &x)
	if err != nil {
		return rest, err
	}
	*v = x
	return rest, nil
}
