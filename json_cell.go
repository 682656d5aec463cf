package mapper

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonCell is used to unmarshal JSON cells into their destination field.
type jsonCell struct {
	colname    string
	fieldValue reflect.Value
	data       []byte
}

func newJSONCell(colname string, fieldValue reflect.Value) *jsonCell {
	return &jsonCell{
		colname:    colname,
		fieldValue: fieldValue,
	}
}

// ScanValue returns the value to present to the sql.Rows for scanning.
func (jc *jsonCell) ScanValue() interface{} {
	return &jc.data
}

// Unmarshal unmarshals the JSON text after it has been scanned from
// the sql.Rows. SQL NULL, an empty value and JSON null all leave the
// field with its zero value.
func (jc *jsonCell) Unmarshal() error {
	jc.fieldValue.Set(reflect.Zero(jc.fieldValue.Type()))
	if len(jc.data) == 0 {
		return nil
	}
	if err := json.Unmarshal(jc.data, jc.fieldValue.Addr().Interface()); err != nil {
		return fmt.Errorf("cannot unmarshal JSON field %q: %v", jc.colname, err)
	}
	return nil
}

// jsonArg returns the JSON text to bind for a JSON field. Nil pointers,
// maps and slices are bound as SQL NULL.
func jsonArg(colname string, fieldValue reflect.Value) (interface{}, error) {
	switch fieldValue.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		if fieldValue.IsNil() {
			return nil, nil
		}
	}
	data, err := json.Marshal(fieldValue.Interface())
	if err != nil {
		return nil, fmt.Errorf("cannot marshal JSON field %q: %v", colname, err)
	}
	return string(data), nil
}
