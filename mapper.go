package mapper

import (
	"reflect"
)

// Base is embedded in a struct type to declare a mapper for the
// record type T. The mapper type is the identity used to look up the
// table descriptor for T.
//
//	type UserMapper struct {
//	    mapper.Base[User]
//	}
type Base[T any] struct{}

func (Base[T]) record(*T) {}

func (Base[T]) recordType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Mapper is the interface form of a mapper declaration. An interface
// type that embeds Mapper[T] is a mapper for the record type T, as is any
// struct type that embeds Base[T].
//
//	type OrderMapper interface {
//	    mapper.Mapper[Order]
//	}
type Mapper[T any] interface {
	record(*T)
	recordType() reflect.Type
}

type recordTyper interface {
	recordType() reflect.Type
}

var pkgPath = reflect.TypeOf(Base[struct{}]{}).PkgPath()

// recordTypeOf returns the record type named by the mapper type, or
// nil if the mapper type does not name exactly one record type.
func recordTypeOf(mapperType reflect.Type) reflect.Type {
	if mapperType == nil {
		return nil
	}
	for mapperType.Kind() == reflect.Ptr {
		mapperType = mapperType.Elem()
	}
	if mapperType.Kind() == reflect.Interface {
		// method sets of interface types include unexported methods
		for i := 0; i < mapperType.NumMethod(); i++ {
			method := mapperType.Method(i)
			if method.Name == "record" && method.PkgPath == pkgPath {
				return method.Type.In(0).Elem()
			}
		}
		return nil
	}
	if rt, ok := reflect.New(mapperType).Interface().(recordTyper); ok {
		return rt.recordType()
	}
	return nil
}

// mapperTypeOf returns the reflect type for the mapper type parameter M.
func mapperTypeOf[M any]() reflect.Type {
	return reflect.TypeOf((*M)(nil)).Elem()
}
