package mapper

import (
	"database/sql"
	"fmt"
	"reflect"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// scanDest returns the value to present to sql.Rows for scanning a column
// into the field. Fields of scalar types and time.Time scan SQL NULL as
// the zero value for the type. Pointer, slice and Scanner fields are
// scanned directly, because they handle NULL themselves.
func scanDest(colname string, fieldValue reflect.Value) interface{} {
	fieldPtr := fieldValue.Addr().Interface()
	if scanner, ok := fieldPtr.(sql.Scanner); ok {
		return &nullScannerCell{colname: colname, fieldValue: fieldValue, scanner: scanner}
	}
	switch fieldValue.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint,
		reflect.Float32, reflect.Float64,
		reflect.Bool,
		reflect.String:
		return &nullCell{colname: colname, fieldValue: fieldValue}
	case reflect.Struct:
		if fieldValue.Type() == timeType {
			return &nullCell{colname: colname, fieldValue: fieldValue}
		}
	}
	return fieldPtr
}

// nullCell scans a column into a scalar field, storing the zero value
// for SQL NULL.
type nullCell struct {
	colname    string
	fieldValue reflect.Value
}

func (nc *nullCell) Scan(v interface{}) (err error) {
	defer func() {
		// handle panic if a Set method overflows
		if r := recover(); r != nil {
			err = fmt.Errorf("cannot scan column %q: %v", nc.colname, r)
		}
	}()
	if v == nil {
		nc.fieldValue.Set(reflect.Zero(nc.fieldValue.Type()))
		return nil
	}
	switch nc.fieldValue.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		var nullable sql.NullInt64
		err = nullable.Scan(v)
		nc.fieldValue.SetInt(nullable.Int64)
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		var nullable sql.NullInt64
		err = nullable.Scan(v)
		nc.fieldValue.SetUint(uint64(nullable.Int64))
	case reflect.Float32, reflect.Float64:
		var nullable sql.NullFloat64
		err = nullable.Scan(v)
		nc.fieldValue.SetFloat(nullable.Float64)
	case reflect.Bool:
		var nullable sql.NullBool
		err = nullable.Scan(v)
		nc.fieldValue.SetBool(nullable.Bool)
	case reflect.String:
		var nullable sql.NullString
		err = nullable.Scan(v)
		nc.fieldValue.SetString(nullable.String)
	default:
		var nullable sql.NullTime
		err = nullable.Scan(v)
		nc.fieldValue.Set(reflect.ValueOf(nullable.Time))
	}
	if err != nil {
		return fmt.Errorf("cannot scan column %q: %v", nc.colname, err)
	}
	return nil
}

type nullScannerCell struct {
	colname    string
	fieldValue reflect.Value
	scanner    sql.Scanner
}

func (nc *nullScannerCell) Scan(v interface{}) error {
	// attempt to scan, because the Scan implementation may handle
	// nil values correctly
	err := nc.scanner.Scan(v)
	if err != nil && v == nil {
		// scan failed for nil value, so set the zero value
		nc.fieldValue.Set(reflect.Zero(nc.fieldValue.Type()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot scan column %q: %v", nc.colname, err)
	}
	return nil
}
