/*
Package mapper maps Go struct types to database tables by convention,
and synthesizes the SQL statements that insert and fetch rows of those
tables, so that the common statements do not need to be written by hand.

This package is designed to work with the standard library "database/sql"
package. It does not provide any layer on top of *sql.DB or *sql.Tx, and
the statements it synthesizes can be used with any other package that uses
"database/sql".

Records and Mappers

A record type is a struct whose fields are stored in the columns of a table:

	type User struct {
	    mapper.Entity `table:"users" notcolumn:"Password"`
	    Name     string
	    Password string
	    Tags     []string `sql:",json"`
	    Nickname string   `sql:"-"`
	}

The struct's own fields are stored first, followed by the fields of any
embedded structs. Unexported fields, and fields whose struct tag is "-",
are not stored. The `notcolumn` tag on any field lists further fields that
are not stored. The `table` tag gives the table name: alternatively the
record type can have a TableName method.

Column names are derived from the property name of each field, which is
the Go field name in lower camel case, so UserID has the property userId.
The default naming convention puts an underscore in front of each remaining
capital, so the field CreatedTime has the property createdTime and is
stored in the column created_time. A struct tag can name the column explicitly:

	Name string `sql:"full_name"`

One field can be marked as the primary key with the "pk" tag option (or
"primary key"). If no field is marked, the primary key column is "id".
Fields marked with the "json" tag option are stored as JSON text.

A mapper identifies a record type. It is declared as a struct that embeds
Base, or as an interface that embeds Mapper:

	type UserMapper struct {
	    mapper.Base[User]
	}

	type OrderMapper interface {
	    mapper.Mapper[Order]
	}

Table Descriptors

A Registry resolves the table descriptor for a mapper the first time that
it is used, and keeps it for later use:

	registry := mapper.NewRegistry(mapper.ForDB(db))
	tbl, err := mapper.TableOf[UserMapper](registry)

Configuration errors, such as a record type without a table name, are
reported as a *ConfigError. Table configuration can also be supplied
explicitly with the WithTable option, in which case it takes precedence over
the struct tags.

SQL Statements

The statement functions synthesize SQL with named placeholders:

	mapper.InsertSQL(tbl)
	// INSERT INTO users (name, password, tags, id, created_time, ...) VALUES (#{name}, ...)

	mapper.SelectOneSQL(tbl)
	// SELECT name, ..., created_time AS createdTime, ... FROM users WHERE id = #{id}

Columns with an underscore are aliased to their property names, so that
the results can be mapped by property name.

Sessions

A Session executes the synthesized statements. Named placeholders are
bound to the fields of a row and converted to the placeholders of the
database driver, and result columns are mapped back onto new rows:

	sess := mapper.NewSession(ctx, db, registry)
	defer sess.Close()

	err := mapper.Insert[UserMapper](sess, &user) // user.ID is set
	user, err := mapper.QueryByID[UserMapper](sess, 42)
	users, err := mapper.QueryByIDs[UserMapper](sess, []int64{1, 2, 3})
	n, err := mapper.Update[UserMapper](sess, user)
*/
package mapper
