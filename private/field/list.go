// Package field walks record struct types and reports their
// persistent fields.
package field

import (
	"database/sql"
	"reflect"
	"strings"
	"time"
)

// Standard types.
var (
	sqlScanType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
	timeType    = reflect.TypeOf(time.Time{})
)

// List returns the persistent fields of the struct type rowType.
//
// The struct's own fields come first, in declaration order, followed by
// the fields of each embedded struct in turn. A field name that has already
// been seen at a shallower level is skipped, matching Go's promotion rules.
// Unexported fields, fields tagged `sql:"-"`, and fields whose kind cannot
// be bound as a query argument are not included.
func List(rowType reflect.Type) []*Info {
	var list fieldList
	seen := make(map[string]bool)
	list.addFields(rowType, nil, seen)
	return list
}

type fieldList []*Info

func (list *fieldList) addFields(rowType reflect.Type, index Index, seen map[string]bool) {
	var embedded []int
	for i := 0; i < rowType.NumField(); i++ {
		field := rowType.Field(i)
		if isEmbeddedStruct(field) {
			embedded = append(embedded, i)
			continue
		}
		if seen[field.Name] {
			continue
		}
		if info := newFieldInfo(field, index.Append(i)); info != nil {
			seen[field.Name] = true
			*list = append(*list, info)
		}
	}

	// embedded structs play the part of ancestor types, so their
	// fields are appended after the fields declared at this level
	for _, i := range embedded {
		field := rowType.Field(i)
		fieldType := field.Type
		for fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}
		list.addFields(fieldType, index.Append(i), seen)
	}
}

func newFieldInfo(field reflect.StructField, index Index) *Info {
	if columnNameFromTag(field.Tag) == "-" {
		// ignore field marked as not a column
		return nil
	}
	if field.PkgPath != "" {
		// ignore unexported field
		return nil
	}
	fieldType := field.Type
	for fieldType.Kind() == reflect.Ptr {
		fieldType = fieldType.Elem()
	}
	switch fieldType.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		// no database representation
		return nil
	}
	return newInfo(field, index)
}

// isEmbeddedStruct reports whether the field is an anonymous struct whose
// fields should be promoted. time.Time and types implementing sql.Scanner
// are treated as values, not as embedded structs.
func isEmbeddedStruct(field reflect.StructField) bool {
	if !field.Anonymous {
		return false
	}
	if columnNameFromTag(field.Tag) == "-" {
		return false
	}
	fieldType := field.Type
	for fieldType.Kind() == reflect.Ptr {
		fieldType = fieldType.Elem()
	}
	return fieldType.Kind() == reflect.Struct &&
		fieldType != timeType &&
		!fieldType.Implements(sqlScanType) &&
		!reflect.PtrTo(fieldType).Implements(sqlScanType)
}

// TypeTags contains the type-level declarations found in the struct tags
// of a record type.
type TypeTags struct {
	TableName    string   // from the first `table` tag found
	HasTableName bool     // true if a `table` tag was found
	Exclude      []string // from all `notcolumn` tags
}

// ReadTypeTags scans every field of the struct type rowType, including
// unexported, blank and embedded fields, for type-level declarations.
//
//	type User struct {
//	    mapper.Entity `table:"users" notcolumn:"Password,Salt"`
//	    ...
//	}
func ReadTypeTags(rowType reflect.Type) TypeTags {
	var tags TypeTags
	tags.read(rowType, make(map[reflect.Type]bool))
	return tags
}

func (tags *TypeTags) read(rowType reflect.Type, visited map[reflect.Type]bool) {
	if visited[rowType] {
		return
	}
	visited[rowType] = true
	var embedded []reflect.Type
	for i := 0; i < rowType.NumField(); i++ {
		field := rowType.Field(i)
		if name, ok := field.Tag.Lookup("table"); ok && !tags.HasTableName {
			tags.TableName = strings.TrimSpace(name)
			tags.HasTableName = true
		}
		if list, ok := field.Tag.Lookup("notcolumn"); ok {
			for _, name := range strings.Split(list, ",") {
				if name = strings.TrimSpace(name); name != "" {
					tags.Exclude = append(tags.Exclude, name)
				}
			}
		}
		if isEmbeddedStruct(field) {
			fieldType := field.Type
			for fieldType.Kind() == reflect.Ptr {
				fieldType = fieldType.Elem()
			}
			embedded = append(embedded, fieldType)
		}
	}
	for _, fieldType := range embedded {
		tags.read(fieldType, visited)
	}
}
