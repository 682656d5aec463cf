package mapper

import (
	"fmt"
	"strings"
)

// The functions in this file synthesize SQL text from a table
// descriptor. Fields are bound with named placeholders, as in #{name}.
// They do not validate the table: a table without columns produces
// incomplete SQL.

// InsertSQL returns the statement that inserts a row, including the
// primary key column.
//
//	INSERT INTO users (id, name, created_time) VALUES (#{id}, #{name}, #{createdTime})
func InsertSQL(tbl *Table) string {
	return insertSQL(tbl.name, tbl.columns)
}

// InsertWithoutPrimaryKeySQL returns the statement that inserts a row
// whose primary key is generated by the database.
//
//	INSERT INTO users (name, created_time) VALUES (#{name}, #{createdTime})
func InsertWithoutPrimaryKeySQL(tbl *Table) string {
	return insertSQL(tbl.name, tbl.withoutPK)
}

func insertSQL(tableName string, cols []*Column) string {
	names := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.name
		placeholders[i] = col.Placeholder()
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tableName,
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
	)
}

// SelectOneSQL returns the statement that selects a row by its
// primary key. The placeholder is named after the primary key column.
//
//	SELECT id, name, created_time AS createdTime FROM users WHERE id = #{id}
func SelectOneSQL(tbl *Table) string {
	return selectSQL(tbl) + " WHERE " + tbl.PrimaryKeyWhere()
}

// SelectByPrimaryKeyInSQL returns the statement that selects the rows
// with the primary keys given.
//
//	SELECT id, name, created_time AS createdTime FROM users WHERE id IN (1,2,3)
//
// The keys are formatted with fmt and written into the SQL text, not bound
// as arguments, so this function must only be called with keys that cannot
// contain SQL, such as integers. Sessions use a bound version of this
// statement instead.
//
// An empty keys slice yields "IN ()", which most databases reject.
func SelectByPrimaryKeyInSQL[K any](tbl *Table, keys []K) string {
	values := make([]string, len(keys))
	for i, key := range keys {
		values[i] = fmt.Sprint(key)
	}
	return fmt.Sprintf("%s WHERE %s IN (%s)", selectSQL(tbl), tbl.pkColumn, strings.Join(values, ","))
}

// selectByPrimaryKeysSQL returns the statement that selects the rows
// whose primary keys are bound to the #{ids} placeholder.
func selectByPrimaryKeysSQL(tbl *Table) string {
	return fmt.Sprintf("%s WHERE %s IN (#{ids})", selectSQL(tbl), tbl.pkColumn)
}

// UpdateSQL returns the statement that updates every column of a row
// except the primary key.
//
//	UPDATE users SET name = #{name}, created_time = #{createdTime} WHERE id = #{id}
func UpdateSQL(tbl *Table) string {
	assignments := make([]string, len(tbl.withoutPK))
	for i, col := range tbl.withoutPK {
		assignments[i] = col.name + " = " + col.Placeholder()
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		tbl.name,
		strings.Join(assignments, ", "),
		tbl.PrimaryKeyWhere(),
	)
}

func selectSQL(tbl *Table) string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(tbl.SelectColumns(), ", "), tbl.name)
}
