// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ValueKind identifies the scalar type held by a [Value].
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "null"
	}
}

// Value is a single scalar field of a remote record.
//
// The zero value is null.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	b    bool
	s    string
}

func NullValue() Value { return Value{} }
func IntValue(v int64) Value { return Value{kind: KindInt, i: v} }
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }
func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }
func StringValue(v string) Value { return Value{kind: KindString, s: v} }
func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }
func (v Value) Text() (string, bool) { return v.s, v.kind == KindString }

// Float returns the value as float64. Integers are widened.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// Any returns the value as a driver-friendly Go value: nil, int64, float64, bool or string.
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindString:
		return v.s
	default:
		return nil
	}
}

// String renders the value as text. Null renders as an empty string.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.s
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// ParseScalar converts a textual cell (CSV export) into a typed value.
//
// Empty cells become null. Numbers with a leading zero such as account
// codes "0041" are kept as text so they survive a round trip.
func ParseScalar(s string) Value {
	t := strings.TrimSpace(s)
	if t == "" {
		return NullValue()
	}

	switch strings.ToLower(t) {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}

	if hasLeadingZero(t) {
		return StringValue(s)
	}

	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		return IntValue(i)
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil && isPlainNumber(t) {
		return FloatValue(f)
	}

	return StringValue(s)
}

func hasLeadingZero(t string) bool {
	digits := strings.TrimPrefix(t, "-")
	return len(digits) > 1 && digits[0] == '0' && digits[1] != '.'
}

// isPlainNumber rejects forms ParseFloat accepts but exports never mean as numbers (Inf, NaN, hex).
func isPlainNumber(t string) bool {
	for _, r := range t {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '-', r == '+', r == 'e', r == 'E':
		default:
			return false
		}
	}
	return true
}
