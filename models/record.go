// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// IDField is the column every synchronized resource is keyed by.
const IDField = "id"

// maxFlattenDepth is how many levels of nested objects are unfolded into
// parent_child columns. Deeper objects are stored as JSON text.
const maxFlattenDepth = 2

var ErrNotAnObject = errors.New("record is not a JSON object")

// Field is one named value of a [Record].
type Field struct {
	Name  string
	Value Value
}

// Record is a remote document with ordered fields.
//
// Field order follows the order in which keys were first seen, which makes
// schema inference and column order deterministic.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord builds a record from fields. A repeated name overwrites the earlier value in place.
func NewRecord(fields ...Field) Record {
	var r Record
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// Set adds or replaces a field.
func (r *Record) Set(name string, v Value) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = v
		return
	}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: v})
}

// Get returns the value of a field and whether the record has it.
func (r Record) Get(name string) (Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return Value{}, false
	}
	return r.fields[i].Value, true
}

func (r Record) Len() int { return len(r.fields) }

// Keys returns field names in record order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Name
	}
	return keys
}

// Fields returns a copy of the record fields.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// ID returns the remote identifier of the record.
//
// Integral floats and numeric strings are accepted since some endpoints
// and CSV exports render ids that way.
func (r Record) ID() (int64, bool) {
	v, ok := r.Get(IDField)
	if !ok {
		return 0, false
	}

	switch v.Kind() {
	case KindInt:
		return v.i, true
	case KindFloat:
		if v.f == math.Trunc(v.f) && math.Abs(v.f) < 1<<53 {
			return int64(v.f), true
		}
	case KindString:
		if id, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64); err == nil {
			return id, true
		}
	}
	return 0, false
}

// IDKey returns the id in text form. Unlike [Record.ID] it accepts any
// non-null, non-blank id, so exports keyed by codes such as "EC-0001"
// still have an identity.
func (r Record) IDKey() (string, bool) {
	if id, ok := r.ID(); ok {
		return strconv.FormatInt(id, 10), true
	}
	v, ok := r.Get(IDField)
	if !ok || v.IsNull() {
		return "", false
	}
	key := strings.TrimSpace(v.String())
	if key == "" {
		return "", false
	}
	return key, true
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value.Any())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object via [DecodeRecord].
func (r *Record) UnmarshalJSON(data []byte) error {
	rec, err := DecodeRecord(data)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// DecodeRecord decodes a JSON object into a [Record].
//
// Keys are normalized with [NormalizeColumnName]. Nested objects are
// flattened into parent_child fields up to two levels deep; arrays and
// deeper objects are kept as compact JSON text.
//
// Distinct keys that normalize to the same column ("Created At" and
// "created_at", or {"customer":{"id":1}} and "customer_id") do not
// overwrite each other: the first keeps the name, later ones get a _2, _3
// suffix. A key repeated verbatim still replaces its earlier value.
func DecodeRecord(data []byte) (Record, error) {
	d := recordDecoder{columns: make(map[string]string)}
	if err := d.decodeObject(data, "", "", 0); err != nil {
		return Record{}, err
	}
	return d.rec, nil
}

type recordDecoder struct {
	rec Record
	// columns maps a source key path to the column it was stored under.
	columns map[string]string
}

func (d *recordDecoder) set(source, name string, v Value) {
	if col, ok := d.columns[source]; ok {
		d.rec.Set(col, v)
		return
	}
	if _, taken := d.rec.index[name]; taken {
		for n := 2; ; n++ {
			candidate := name + "_" + strconv.Itoa(n)
			if _, taken = d.rec.index[candidate]; !taken {
				name = candidate
				break
			}
		}
	}
	d.columns[source] = name
	d.rec.Set(name, v)
}

func (d *recordDecoder) decodeObject(data []byte, sourcePrefix, prefix string, depth int) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrNotAnObject
	}

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return fmt.Errorf("decode record key: %w", err)
		}
		key, _ := tok.(string)
		source := sourcePrefix + "\x00" + key
		name := NormalizeColumnName(key)
		if prefix != "" {
			name = prefix + "_" + name
		}

		var raw json.RawMessage
		if err = dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode record field %q: %w", key, err)
		}

		raw = bytes.TrimSpace(raw)
		switch raw[0] {
		case '{':
			if depth < maxFlattenDepth {
				if err = d.decodeObject(raw, source, name, depth+1); err != nil {
					return err
				}
				continue
			}
			d.set(source, name, StringValue(compactJSON(raw)))
		case '[':
			d.set(source, name, StringValue(compactJSON(raw)))
		default:
			v, err := decodeScalar(raw)
			if err != nil {
				return fmt.Errorf("decode record field %q: %w", key, err)
			}
			d.set(source, name, v)
		}
	}

	if _, err = dec.Token(); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

func decodeScalar(raw json.RawMessage) (Value, error) {
	switch raw[0] {
	case 'n':
		return NullValue(), nil
	case 't':
		return BoolValue(true), nil
	case 'f':
		return BoolValue(false), nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	}

	num := string(raw)
	if i, err := strconv.ParseInt(num, 10, 64); err == nil {
		return IntValue(i), nil
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Value{}, err
	}
	return FloatValue(f), nil
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// NormalizeColumnName turns an arbitrary key into a lower snake_case column name.
//
// "Customer Name" becomes "customer_name" and "VAT-rate (%)" becomes
// "vat_rate". An empty result is replaced by "column".
func NormalizeColumnName(name string) string {
	var b strings.Builder
	pendingSep := false

	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
		case r == '_' || r == '-' || r == '.' || unicode.IsSpace(r):
			pendingSep = true
		}
	}

	if b.Len() == 0 {
		return "column"
	}
	return b.String()
}
