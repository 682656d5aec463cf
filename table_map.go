package mapper

import (
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

// tableMap is used to lookup table descriptors based on mapper type.
// It is safe for concurrent access because descriptors are resolved
// lazily, the first time a mapper type is used.
//
// A sync.Map is used because this use case is one that it was designed
// for, namely a cache that is only ever added to.
type tableMap struct {
	tables sync.Map
	group  singleflight.Group
}

// add a table to the map and return the value for the table
// in the map. The value returned will be different to tbl if
// another goroutine has already added an entry to the map for
// the mapper type.
func (tm *tableMap) add(mapperType reflect.Type, tbl *Table) *Table {
	v, _ := tm.tables.LoadOrStore(mapperType, tbl)
	return v.(*Table)
}

// lookup a table based on its mapper type in the map. Returns nil
// if not found.
func (tm *tableMap) lookup(mapperType reflect.Type) *Table {
	if v, ok := tm.tables.Load(mapperType); ok {
		return v.(*Table)
	}
	return nil
}

// loadOrResolve returns the table for the mapper type, calling resolve
// if it is not in the map. Concurrent callers for the same mapper type
// wait for a single call to resolve. Errors are not stored, so a later
// call will try again.
func (tm *tableMap) loadOrResolve(mapperType reflect.Type, resolve func() (*Table, error)) (*Table, error) {
	if tbl := tm.lookup(mapperType); tbl != nil {
		return tbl, nil
	}
	v, err, _ := tm.group.Do(flightKey(mapperType), func() (interface{}, error) {
		if tbl := tm.lookup(mapperType); tbl != nil {
			return tbl, nil
		}
		tbl, err := resolve()
		if err != nil {
			return nil, err
		}
		return tm.add(mapperType, tbl), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}

// flightKey identifies the mapper type for the singleflight group. Type
// names are not unique: types declared in different functions, or in
// packages with the same path suffix, can share a String form. The
// address of the type descriptor is unique per type.
func flightKey(mapperType reflect.Type) string {
	return fmt.Sprintf("%s@%p", mapperType, mapperType)
}
