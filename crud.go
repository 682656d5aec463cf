package mapper

import (
	"errors"
	"reflect"

	"github.com/jjeffery/kv"
	"github.com/yusiwen/mapper/private/named"
)

// Params binds the named placeholders of a query passed to Select.
type Params map[string]interface{}

// errNilRow is returned when a nil row pointer is passed to an operation.
var errNilRow = errors.New("row cannot be nil")

// rowTable returns the table and the row value for an operation on row.
func rowTable[M Mapper[T], T any](sess *Session, row *T) (*Table, reflect.Value, error) {
	if row == nil {
		return nil, reflect.Value{}, errNilRow
	}
	tbl, err := sess.tableOf(mapperTypeOf[M](), reflect.TypeOf(row).Elem())
	if err != nil {
		return nil, reflect.Value{}, err
	}
	return tbl, reflect.ValueOf(row).Elem(), nil
}

// Insert inserts a row whose primary key is generated by the database.
// The primary key column is not inserted, and the generated key is written
// back to the row's primary key field.
//
//	err := mapper.Insert[UserMapper](sess, &user)
func Insert[M Mapper[T], T any](sess *Session, row *T) error {
	tbl, rowValue, err := rowTable[M](sess, row)
	if err != nil {
		return err
	}
	return sess.insertRow(tbl, rowValue, InsertWithoutPrimaryKeySQL(tbl), tbl.pk != nil)
}

// InsertWithPrimaryKey inserts a row including its primary key.
func InsertWithPrimaryKey[M Mapper[T], T any](sess *Session, row *T) error {
	tbl, rowValue, err := rowTable[M](sess, row)
	if err != nil {
		return err
	}
	return sess.insertRow(tbl, rowValue, InsertSQL(tbl), false)
}

// Update updates every column of the row except the primary key, and
// returns the number of rows updated, which should be zero or one.
func Update[M Mapper[T], T any](sess *Session, row *T) (int, error) {
	tbl, rowValue, err := rowTable[M](sess, row)
	if err != nil {
		return 0, err
	}
	if tbl.pk == nil {
		return 0, newConfigError(tbl.mapperType, tbl.recordType, "no primary key field")
	}
	return sess.execRow(tbl, rowValue, UpdateSQL(tbl), "cannot update row")
}

// QueryByID returns the row with the primary key id, or nil if there
// is no such row.
//
//	user, err := mapper.QueryByID[UserMapper](sess, 42)
func QueryByID[M Mapper[T], T any](sess *Session, id interface{}) (*T, error) {
	tbl, err := sess.tableOf(mapperTypeOf[M](), reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	rows, err := queryRows[T](sess, tbl, SelectOneSQL(tbl), named.Map(map[string]interface{}{
		tbl.pkColumn: id,
	}))
	if err != nil {
		return nil, kv.Wrap(err, "cannot query by id").With("id", id)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// QueryByIDs returns the rows with the primary keys ids. The keys are
// bound as arguments. Rows are returned in the order chosen by the
// database, and keys with no row are skipped. No query is executed when
// ids is empty.
func QueryByIDs[M Mapper[T], T any, K any](sess *Session, ids []K) ([]*T, error) {
	tbl, err := sess.tableOf(mapperTypeOf[M](), reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]interface{}, len(ids))
	for i, id := range ids {
		keys[i] = id
	}
	return queryRows[T](sess, tbl, selectByPrimaryKeysSQL(tbl), named.Map(map[string]interface{}{
		"ids": keys,
	}))
}

// Select executes a query and returns the result rows mapped onto
// records. Result columns are matched to fields by column name or by
// property name. The query can contain named placeholders, which are
// bound to the params.
//
//	users, err := mapper.Select[UserMapper](sess,
//	    "SELECT * FROM users WHERE name = #{name}",
//	    mapper.Params{"name": "alice"},
//	)
func Select[M Mapper[T], T any](sess *Session, query string, params Params) ([]*T, error) {
	tbl, err := sess.tableOf(mapperTypeOf[M](), reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return queryRows[T](sess, tbl, query, named.Map(params))
}
