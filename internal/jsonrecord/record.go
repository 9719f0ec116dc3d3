// Package jsonrecord is the JSONL record model of spec §4.2: it parses a
// single JSON object per line and preserves the original top-level field
// ordering, so that rewritten output keeps untouched fields byte-for-byte
// and new/reordered fields (_key, the SGA attribute, _from, _to) can be
// emitted first as the format requires.
//
// It is built on encoding/json's token stream rather than unmarshalling
// into a map, because Go maps have no stable iteration order and the
// spec's round-trip and ordering guarantees depend on one.
package jsonrecord

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a field's JSON value without fully parsing it.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
	KindArray
	KindObject
)

// Field is one top-level key/value pair of a parsed record, in document
// order. Raw holds the verbatim JSON bytes of the value (no surrounding
// whitespace), suitable for re-emission unchanged.
type Field struct {
	Key string
	Raw json.RawMessage
	Kind
}

// IsString reports whether the field's value is a JSON string.
func (f Field) IsString() bool { return f.Kind == KindString }

// IsBool reports whether the field's value is a JSON boolean.
func (f Field) IsBool() bool { return f.Kind == KindBool }

// IsNull reports whether the field's value is the JSON literal null.
func (f Field) IsNull() bool { return f.Kind == KindNull }

// IsScalar reports whether the value is a string, number, bool or null
// (i.e. not an array or object).
func (f Field) IsScalar() bool { return f.Kind != KindArray && f.Kind != KindObject }

// String decodes the field as a Go string. The caller must check
// IsString first; behavior otherwise follows encoding/json's rules for
// Unmarshal into a string.
func (f Field) String() (string, error) {
	var s string
	if err := json.Unmarshal(f.Raw, &s); err != nil {
		return "", errors.Wrapf(err, "decode field %q as string", f.Key)
	}
	return s, nil
}

// ScalarText renders a non-string scalar (bool/number) as the text that
// should be used verbatim as a smart graph attribute value, matching
// spec §4.5 point 4 ("for non-string JSON scalars ... stringify"). JSON's
// own textual encoding of a number or boolean literal is already exactly
// that string, so this simply trims surrounding whitespace.
func (f Field) ScalarText() string {
	return string(bytes.TrimSpace(f.Raw))
}

// Record is one parsed JSONL line.
type Record struct {
	fields []Field
	index  map[string]int
}

// Parse parses one JSON object line into a Record, preserving the
// original key order.
func Parse(line []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(line))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "read opening token")
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, errors.Errorf("expected JSON object, got %v", tok)
	}

	rec := &Record{index: make(map[string]int)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "read field key")
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.Errorf("expected string key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrapf(err, "read value for field %q", key)
		}

		field := Field{Key: key, Raw: raw, Kind: classify(raw)}
		if i, exists := rec.index[key]; exists {
			rec.fields[i] = field
			continue
		}
		rec.index[key] = len(rec.fields)
		rec.fields = append(rec.fields, field)
	}

	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, "read closing token")
	}

	return rec, nil
}

func classify(raw json.RawMessage) Kind {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return KindNull
	}
	switch trimmed[0] {
	case '"':
		return KindString
	case '[':
		return KindArray
	case '{':
		return KindObject
	case 't', 'f':
		return KindBool
	case 'n':
		return KindNull
	default:
		return KindNumber
	}
}

// Get returns the field named name and whether it was present.
func (r *Record) Get(name string) (Field, bool) {
	i, ok := r.index[name]
	if !ok {
		return Field{}, false
	}
	return r.fields[i], true
}

// Fields returns all fields in original document order.
func (r *Record) Fields() []Field {
	return r.fields
}

// Builder incrementally serializes a rewritten JSONL record: special
// fields first in a fixed order, then the rest in their original
// encounter order, exactly as spec §4.2 requires.
type Builder struct {
	buf     bytes.Buffer
	wrote   bool
	started bool
}

// NewBuilder starts a new object.
func NewBuilder() *Builder {
	b := &Builder{}
	b.buf.WriteByte('{')
	b.started = true
	return b
}

func (b *Builder) comma() {
	if b.wrote {
		b.buf.WriteByte(',')
	}
	b.wrote = true
}

// WriteStringField appends "name":"value", escaping value as JSON.
func (b *Builder) WriteStringField(name, value string) {
	b.comma()
	fmt.Fprintf(&b.buf, "%q:", name)
	enc, _ := json.Marshal(value)
	b.buf.Write(enc)
}

// WriteRawField appends "name":<raw>, where raw is already valid JSON.
func (b *Builder) WriteRawField(name string, raw json.RawMessage) {
	b.comma()
	fmt.Fprintf(&b.buf, "%q:", name)
	b.buf.Write(raw)
}

// Bytes finalizes the object and returns "{...}\n".
func (b *Builder) Bytes() []byte {
	b.buf.WriteString("}\n")
	return b.buf.Bytes()
}
