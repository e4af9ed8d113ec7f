package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecord_KeepsKeyOrderAndTypes(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"id": 7, "label": "ACME", "amount": 12.5, "paid": true, "note": null}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "label", "amount", "paid", "note"}, rec.Keys())

	id, ok := rec.ID()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)

	amount, _ := rec.Get("amount")
	assert.Equal(t, KindFloat, amount.Kind())
	paid, _ := rec.Get("paid")
	assert.Equal(t, true, paid.Any())
	note, _ := rec.Get("note")
	assert.True(t, note.IsNull())
}

func TestDecodeRecord_FlattensNestedObjects(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{
		"id": 1,
		"customer": {"id": 9, "address": {"city": "Lyon", "geo": {"lat": 45.7}}},
		"lines": [{"id": 1}, {"id": 2}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "customer_id", "customer_address_city", "customer_address_geo", "lines"}, rec.Keys())

	city, _ := rec.Get("customer_address_city")
	assert.Equal(t, "Lyon", city.String())

	geo, _ := rec.Get("customer_address_geo")
	assert.Equal(t, `{"lat":45.7}`, geo.String())

	lines, _ := rec.Get("lines")
	assert.Equal(t, `[{"id":1},{"id":2}]`, lines.String())
}

func TestDecodeRecord_NormalizesKeys(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"Customer Name": "x", "VAT-rate (%)": 20}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"customer_name", "vat_rate"}, rec.Keys())
}

func TestDecodeRecord_CollidingKeysGetSuffix(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{
		"customer": {"id": 1, "name": "ACME"},
		"customer_id": 2,
		"Created At": "2026-01-01",
		"created_at": "2026-02-02",
		"created-at": "2026-03-03"
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"customer_id", "customer_name", "customer_id_2",
		"created_at", "created_at_2", "created_at_3",
	}, rec.Keys())

	get := func(name string) string {
		v, ok := rec.Get(name)
		require.True(t, ok, name)
		return v.String()
	}
	assert.Equal(t, "1", get("customer_id"))
	assert.Equal(t, "2", get("customer_id_2"))
	assert.Equal(t, "2026-01-01", get("created_at"))
	assert.Equal(t, "2026-03-03", get("created_at_3"))
}

func TestDecodeRecord_RepeatedKeyOverwrites(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"id": 1, "label": "old", "label": "new"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "label"}, rec.Keys())
	v, _ := rec.Get("label")
	assert.Equal(t, "new", v.String())
}

func TestDecodeRecord_RejectsNonObject(t *testing.T) {
	_, err := DecodeRecord([]byte(`[1,2]`))
	require.ErrorIs(t, err, ErrNotAnObject)
}

func TestRecord_UnmarshalSlice(t *testing.T) {
	var recs []Record
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"b":2},{"id":2}]`), &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, 2, recs[0].Len())
	assert.Equal(t, 1, recs[1].Len())
}

func TestRecord_MarshalJSON_PreservesOrder(t *testing.T) {
	rec := NewRecord(
		Field{Name: "z", Value: IntValue(1)},
		Field{Name: "a", Value: StringValue("x")},
		Field{Name: "m", Value: NullValue()},
	)
	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":"x","m":null}`, string(out))
}

func TestRecord_ID(t *testing.T) {
	tests := []struct {
		name   string
		value  Value
		wantID int64
		wantOK bool
	}{
		{"int", IntValue(42), 42, true},
		{"integral float", FloatValue(42), 42, true},
		{"fractional float", FloatValue(4.2), 0, false},
		{"numeric string", StringValue(" 42 "), 42, true},
		{"text", StringValue("abc"), 0, false},
		{"null", NullValue(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecord(Field{Name: IDField, Value: tt.value})
			id, ok := rec.ID()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}

	_, ok := NewRecord(Field{Name: "name", Value: StringValue("x")}).ID()
	assert.False(t, ok)
}

func TestRecord_IDKey(t *testing.T) {
	tests := []struct {
		name    string
		value   Value
		wantKey string
		wantOK  bool
	}{
		{"int", IntValue(42), "42", true},
		{"numeric string", StringValue(" 42 "), "42", true},
		{"code", StringValue("EC-0001"), "EC-0001", true},
		{"fractional float", FloatValue(4.2), "4.2", true},
		{"blank", StringValue("  "), "", false},
		{"null", NullValue(), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := NewRecord(Field{Name: IDField, Value: tt.value}).IDKey()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, key)
		})
	}

	_, ok := NewRecord(Field{Name: "name", Value: StringValue("x")}).IDKey()
	assert.False(t, ok)
}

func TestRecord_SetOverwritesInPlace(t *testing.T) {
	var rec Record
	rec.Set("a", IntValue(1))
	rec.Set("b", IntValue(2))
	rec.Set("a", IntValue(3))

	assert.Equal(t, []string{"a", "b"}, rec.Keys())
	v, _ := rec.Get("a")
	assert.Equal(t, int64(3), v.Any())
}

func TestNormalizeColumnName(t *testing.T) {
	tests := map[string]string{
		"id":              "id",
		"Customer Name":   "customer_name",
		"  due-date ":     "due_date",
		"JournalCode":     "journalcode",
		"a__b":            "a_b",
		"_links":          "links",
		"montant (€)":     "montant",
		"Écriture Lib":    "écriture_lib",
		"%%%":             "column",
		"ledger.account":  "ledger_account",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeColumnName(in), in)
	}
}
