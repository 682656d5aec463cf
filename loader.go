package mapper

import (
	"fmt"
	"reflect"

	"github.com/yusiwen/mapper/dataloader"
)

// NewLoader returns a data loader for the mapper M, which batches the
// rows loaded by primary key into calls to QueryByIDs. The key type K must
// be the type of the primary key field.
//
//	load, err := mapper.NewLoader[UserMapper, int64](sess)
//	thunk1, thunk2 := load(1), load(2)
//	user1, err := thunk1() // one query for both users
//
// See package dataloader for details.
func NewLoader[M Mapper[T], K comparable, T any](sess *Session) (func(id K) func() (*T, error), error) {
	mapperType := mapperTypeOf[M]()
	tbl, err := sess.tableOf(mapperType, reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	if tbl.pk == nil || tbl.pk.index == nil {
		return nil, newConfigError(mapperType, tbl.recordType, "no primary key field")
	}
	keyType := reflect.TypeOf((*K)(nil)).Elem()
	if tbl.pk.fieldType != keyType {
		return nil, newConfigError(mapperType, tbl.recordType,
			fmt.Sprintf("primary key field %s has type %s, not %s", tbl.pk.fieldName, tbl.pk.fieldType, keyType))
	}
	pkIndex := tbl.pk.index

	query := func(ids []K) ([]*T, error) {
		return QueryByIDs[M, T](sess, ids)
	}
	key := func(row *T) K {
		return pkIndex.ValueRO(reflect.ValueOf(row).Elem()).Interface().(K)
	}
	return dataloader.New(query, key), nil
}
