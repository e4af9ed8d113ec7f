// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ColumnType is the storage type of a local table column.
type ColumnType uint8

const (
	ColumnText ColumnType = iota
	ColumnInteger
	ColumnFloat
	ColumnBoolean
)

func (t ColumnType) String() string {
	switch t {
	case ColumnInteger:
		return "integer"
	case ColumnFloat:
		return "float"
	case ColumnBoolean:
		return "boolean"
	default:
		return "text"
	}
}

type Column struct {
	Name string
	Type ColumnType
}

// Schema is the ordered column layout of a replicated table.
type Schema struct {
	Columns []Column
}

func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

func (s Schema) Has(name string) bool {
	for _, c := range s.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// InferSchema derives a table layout from a record set.
//
// Columns are the keys of the first record, in order. Each column type is
// merged over the values of every record: integers widen to float, any
// other disagreement falls back to text, and an all-null column is text.
func InferSchema(records []Record) Schema {
	if len(records) == 0 {
		return Schema{}
	}

	keys := records[0].Keys()
	cols := make([]Column, len(keys))
	for i, name := range keys {
		cols[i] = Column{Name: name, Type: inferColumnType(records, name)}
	}
	return Schema{Columns: cols}
}

func inferColumnType(records []Record, name string) ColumnType {
	var (
		seen bool
		typ  ColumnType
	)

	for _, rec := range records {
		v, ok := rec.Get(name)
		if !ok || v.IsNull() {
			continue
		}

		t := kindColumnType(v.Kind())
		if !seen {
			seen, typ = true, t
			continue
		}
		typ = mergeColumnTypes(typ, t)
		if typ == ColumnText {
			return ColumnText
		}
	}

	if !seen {
		return ColumnText
	}
	return typ
}

func kindColumnType(k ValueKind) ColumnType {
	switch k {
	case KindInt:
		return ColumnInteger
	case KindFloat:
		return ColumnFloat
	case KindBool:
		return ColumnBoolean
	default:
		return ColumnText
	}
}

func mergeColumnTypes(a, b ColumnType) ColumnType {
	switch {
	case a == b:
		return a
	case a == ColumnInteger && b == ColumnFloat, a == ColumnFloat && b == ColumnInteger:
		return ColumnFloat
	default:
		return ColumnText
	}
}

// Coerce converts a value into the Go representation stored in a column of type t.
func Coerce(t ColumnType, v Value) any {
	if v.IsNull() {
		return nil
	}

	switch t {
	case ColumnInteger:
		if i, ok := v.Int(); ok {
			return i
		}
	case ColumnFloat:
		if f, ok := v.Float(); ok {
			return f
		}
	case ColumnBoolean:
		if b, ok := v.Bool(); ok {
			return b
		}
	case ColumnText:
		return v.String()
	}
	return v.Any()
}
