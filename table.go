package mapper

import (
	"reflect"
	"strings"

	"github.com/jjeffery/kv"
	"github.com/yusiwen/mapper/private/field"
	"github.com/yusiwen/mapper/private/naming"
)

// DefaultPrimaryKey is the primary key column used when no field
// of the record type is marked as the primary key.
const DefaultPrimaryKey = "id"

// JSONCast is appended to the placeholder of a JSON column.
const JSONCast = "::JSONB"

// Table is the resolved description of how a record type is stored in a
// database table. It is immutable once resolved, and all of its methods
// return copies, so it is safe to share between goroutines.
type Table struct {
	name       string
	mapperType reflect.Type
	recordType reflect.Type
	pkColumn   string
	pk         *Column // nil if no field is stored in the primary key column
	columns    []*Column
	withoutPK  []*Column
}

// Name returns the name of the database table.
func (tbl *Table) Name() string {
	return tbl.name
}

// MapperType returns the mapper type that the table was resolved for.
// It is nil for tables built with NewTable.
func (tbl *Table) MapperType() reflect.Type {
	return tbl.mapperType
}

// RecordType returns the record type stored in the table.
// It is nil for tables built with NewTable.
func (tbl *Table) RecordType() reflect.Type {
	return tbl.recordType
}

// PrimaryKey returns the name of the primary key column. If no field is
// marked as the primary key, this is DefaultPrimaryKey, whether or not the
// record type has a field stored in that column.
func (tbl *Table) PrimaryKey() string {
	return tbl.pkColumn
}

// PrimaryKeyField returns the field stored in the primary key column,
// or nil if there is no such field.
func (tbl *Table) PrimaryKeyField() *Column {
	return tbl.pk
}

// PrimaryKeyWhere returns the predicate that selects a row by its
// primary key, for example "id = #{id}".
func (tbl *Table) PrimaryKeyWhere() string {
	return tbl.pkColumn + " = #{" + tbl.pkColumn + "}"
}

// Fields returns every persistent field, in order.
func (tbl *Table) Fields() []*Column {
	return cloneColumns(tbl.columns)
}

// FieldsWithoutPrimaryKey returns every persistent field except the
// primary key field, in order.
func (tbl *Table) FieldsWithoutPrimaryKey() []*Column {
	return cloneColumns(tbl.withoutPK)
}

// Columns returns the column names of every persistent field. The list
// is parallel to Fields.
func (tbl *Table) Columns() []string {
	return columnNames(tbl.columns)
}

// ColumnsWithoutPrimaryKey returns the column names of the fields
// returned by FieldsWithoutPrimaryKey.
func (tbl *Table) ColumnsWithoutPrimaryKey() []string {
	return columnNames(tbl.withoutPK)
}

// SelectColumns returns the select expressions for every persistent
// field. A column whose name contains an underscore is aliased back to its
// property name, as in "created_time AS createdTime".
func (tbl *Table) SelectColumns() []string {
	exprs := make([]string, len(tbl.columns))
	for i, col := range tbl.columns {
		exprs[i] = col.SelectExpr()
	}
	return exprs
}

// column returns the column matching name, which can be a property,
// a Go field name or a column name. Case is ignored.
func (tbl *Table) column(name string) *Column {
	for _, col := range tbl.columns {
		if strings.EqualFold(name, col.property) ||
			strings.EqualFold(name, col.fieldName) ||
			strings.EqualFold(name, col.name) {
			return col
		}
	}
	return nil
}

// keyvals returns a list of key/value pairs to include in any error
// message concerning the row. The list includes the type of the row and
// the primary key value.
func (tbl *Table) keyvals(rowValue reflect.Value) []interface{} {
	keyvals := []interface{}{
		"table", tbl.name,
	}
	if tbl.recordType != nil {
		keyvals = append(keyvals, "rowType", tbl.recordType.String())
	}
	if tbl.pk != nil && tbl.pk.index != nil && rowValue.IsValid() {
		keyvals = append(keyvals, tbl.pk.property, tbl.pk.index.ValueRO(rowValue).Interface())
	}
	return keyvals
}

// wrapRowError wraps an error with a description and key/value pairs that identify the
// row that was involved in the error condition.
func (tbl *Table) wrapRowError(err error, rowValue reflect.Value, msg string) kv.Error {
	return kv.Wrap(err, msg).With(tbl.keyvals(rowValue)...)
}

// Column describes a persistent field and the database column that
// stores it.
type Column struct {
	name       string
	fieldName  string
	property   string
	primaryKey bool
	json       bool
	index      field.Index // nil for declared fields
	fieldType  reflect.Type
}

// Name returns the name of the database column.
func (col *Column) Name() string {
	return col.name
}

// FieldName returns the Go field name, or the declared name for
// tables built with NewTable.
func (col *Column) FieldName() string {
	return col.fieldName
}

// Property returns the record property name, which is used to name the
// placeholder that binds the field.
func (col *Column) Property() string {
	return col.property
}

// IsPrimaryKey reports whether the field is stored in the primary key column.
func (col *Column) IsPrimaryKey() bool {
	return col.primaryKey
}

// IsJSON reports whether the field is stored as a JSON value.
func (col *Column) IsJSON() bool {
	return col.json
}

// Placeholder returns the named placeholder that binds the field,
// as in "#{name}", or "#{tags}::JSONB" for a JSON field.
func (col *Column) Placeholder() string {
	placeholder := "#{" + col.property + "}"
	if col.json {
		placeholder += JSONCast
	}
	return placeholder
}

// SelectExpr returns the expression used to select the column.
func (col *Column) SelectExpr() string {
	if strings.ContainsRune(col.name, naming.Separator) {
		return col.name + " AS " + col.property
	}
	return col.name
}

func cloneColumns(cols []*Column) []*Column {
	clone := make([]*Column, len(cols))
	copy(clone, cols)
	return clone
}

func columnNames(cols []*Column) []string {
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.name
	}
	return names
}
