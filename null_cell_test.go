package mapper

import (
	"database/sql"
	"reflect"
	"testing"
	"time"
)

type testEnum int

const (
	testEnumZero testEnum = iota
	testEnumOne
)

func (e *testEnum) Scan(v interface{}) error {
	s, ok := v.(string)
	if !ok {
		return sql.ErrNoRows
	}
	switch s {
	case "One":
		*e = testEnumOne
	default:
		*e = testEnumZero
	}
	return nil
}

func TestNullCell(t *testing.T) {
	var row struct {
		Int    int
		Uint   uint16
		Float  float64
		Bool   bool
		String string
		Time   time.Time
		Enum   testEnum
	}
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rowValue := reflect.ValueOf(&row).Elem()

	tests := []struct {
		field string
		value interface{}
		want  interface{}
	}{
		{field: "Int", value: int64(12), want: 12},
		{field: "Int", value: nil, want: 0},
		{field: "Uint", value: int64(7), want: uint16(7)},
		{field: "Float", value: 1.5, want: 1.5},
		{field: "Float", value: nil, want: 0.0},
		{field: "Bool", value: true, want: true},
		{field: "Bool", value: nil, want: false},
		{field: "String", value: []byte("abc"), want: "abc"},
		{field: "String", value: nil, want: ""},
		{field: "Time", value: now, want: now},
		{field: "Time", value: nil, want: time.Time{}},
		{field: "Enum", value: "One", want: testEnumOne},
		{field: "Enum", value: nil, want: testEnumZero},
	}
	for _, tt := range tests {
		fieldValue := rowValue.FieldByName(tt.field)
		dest, ok := scanDest(tt.field, fieldValue).(sql.Scanner)
		if !ok {
			t.Errorf("%s: want a scanner", tt.field)
			continue
		}
		if err := dest.Scan(tt.value); err != nil {
			t.Errorf("%s: unexpected error: %v", tt.field, err)
			continue
		}
		if want, got := tt.want, fieldValue.Interface(); !reflect.DeepEqual(want, got) {
			t.Errorf("%s %v: want=%v got=%v", tt.field, tt.value, want, got)
		}
	}
}

func TestNullCellError(t *testing.T) {
	var n int
	dest := scanDest("n", reflect.ValueOf(&n).Elem()).(sql.Scanner)
	if err := dest.Scan("not a number"); err == nil {
		t.Error("want error")
	}
}

func TestJSONCell(t *testing.T) {
	var tags []string
	cell := newJSONCell("tags", reflect.ValueOf(&tags).Elem())
	*(cell.ScanValue().(*[]byte)) = []byte(`["a","b"]`)
	if err := cell.Unmarshal(); err != nil {
		t.Fatal(err)
	}
	if want, got := []string{"a", "b"}, tags; !reflect.DeepEqual(want, got) {
		t.Errorf("want=%v got=%v", want, got)
	}

	// NULL resets the field
	cell.data = nil
	if err := cell.Unmarshal(); err != nil {
		t.Fatal(err)
	}
	if tags != nil {
		t.Errorf("want nil, got %v", tags)
	}

	cell.data = []byte(`{`)
	if err := cell.Unmarshal(); err == nil {
		t.Error("want error for invalid JSON")
	}
}

func TestJSONArg(t *testing.T) {
	var nilMap map[string]int
	tests := []struct {
		value interface{}
		want  interface{}
	}{
		{value: []string{"x"}, want: `["x"]`},
		{value: map[string]int{"a": 1}, want: `{"a":1}`},
		{value: nilMap, want: nil},
		{value: []string(nil), want: nil},
		{value: 42, want: "42"},
	}
	for _, tt := range tests {
		got, err := jsonArg("col", reflect.ValueOf(tt.value))
		if err != nil {
			t.Errorf("%v: unexpected error: %v", tt.value, err)
			continue
		}
		if want := tt.want; want != got {
			t.Errorf("%v: want=%v got=%v", tt.value, want, got)
		}
	}

	if _, err := jsonArg("col", reflect.ValueOf(func() {})); err == nil {
		t.Error("want error for unmarshalable value")
	}
}
