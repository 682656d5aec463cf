package field

import (
	"reflect"
)

// Index is used to efficiently find the value of a field within a
// structure. In most cases an index is a single integer, which
// represents the index of the relevant field in the structure. In the
// case of fields in embedded structs, a field index consists of more than
// one integer.
type Index []int

// NewIndex returns an index with the specified values.
func NewIndex(vals ...int) Index {
	return Index(vals)
}

// Append a number to an existing index to create
// a new index. The original index ix is unchanged.
func (ix Index) Append(index int) Index {
	clone := make(Index, len(ix), len(ix)+1)
	copy(clone, ix)
	return append(clone, index)
}

// Equal returns true if ix is equal to v.
func (ix Index) Equal(v Index) bool {
	if len(ix) != len(v) {
		return false
	}
	for i := range ix {
		if ix[i] != v[i] {
			return false
		}
	}
	return true
}

// ValueRW returns the settable value of the field within the structure v,
// which should be addressable. Nil pointers to embedded structs are
// allocated on the way down.
func (ix Index) ValueRW(v reflect.Value) reflect.Value {
	for n, i := range ix {
		v = reflect.Indirect(v).Field(i)
		if n < len(ix)-1 && v.Kind() == reflect.Ptr && v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
	}
	return v
}

// ValueRO returns the value of the field within the structure v.
// If an embedded struct pointer on the way down is nil, the zero value
// for the field type is returned.
func (ix Index) ValueRO(v reflect.Value) reflect.Value {
	for n, i := range ix {
		if v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return reflect.Zero(typeByIndex(v.Type().Elem(), ix[n:]))
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v
}

func typeByIndex(t reflect.Type, ix Index) reflect.Type {
	for _, i := range ix {
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		t = t.Field(i).Type
	}
	return t
}
