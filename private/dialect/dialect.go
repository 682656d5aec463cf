// Package dialect handles the few differences between SQL drivers that
// matter when executing synthesized statements.
package dialect

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

// Dialect is an interface used to handle differences
// in SQL dialects.
type Dialect interface {
	// Name of the dialect.
	Name() string

	// Placeholder returns the positional placeholder for the nth
	// argument, counting from one. Most SQL dialects use a single
	// question mark (?), but PostgreSQL uses numbered placeholders (eg $1).
	Placeholder(n int) string

	// SupportsCast reports whether a "::type" cast following a
	// placeholder is understood by the database.
	SupportsCast() bool

	// SupportsReturning reports whether an INSERT statement can
	// return generated columns with a RETURNING clause.
	SupportsReturning() bool
}

// For returns a dialect for the specified database driver name.
// If name is blank, then the dialect returned is for the first
// driver returned by sql.Drivers(). If the driver name is
// unknown, the default dialect is returned.
//
// Supported dialects include:
//
//	name      alternative names
//	----      -----------------
//	mysql
//	postgres  pq, postgresql, pgx
//	sqlite3   sqlite
func For(name string) Dialect {
	if name == "" {
		drivers := sql.Drivers()
		if len(drivers) > 0 {
			name = drivers[0]
		}
	}
	name = strings.TrimSpace(strings.ToLower(name))

	d := dialects[name]
	if d == nil {
		d = defaultDialect
	}

	return d
}

// ForDriver returns the dialect for a database driver. The PostgreSQL
// drivers from lib/pq and pgx, and the MySQL driver, are recognised by type.
// Any other driver, including sqlite3, gets the default dialect.
func ForDriver(drv driver.Driver) Dialect {
	switch drv.(type) {
	case *pq.Driver, *stdlib.Driver:
		return dialects["postgres"]
	case *mysql.MySQLDriver:
		return dialects["mysql"]
	}
	return defaultDialect
}

// ForDB returns the dialect for an open database handle.
func ForDB(db *sql.DB) Dialect {
	return ForDriver(db.Driver())
}

// dialectT implements the Dialect interface.
type dialectT struct {
	name            string
	altnames        []string
	placeholderFunc func(n int) string
	cast            bool
	returning       bool
}

func (d *dialectT) Name() string {
	return d.name
}

func (d *dialectT) Placeholder(n int) string {
	if d.placeholderFunc == nil {
		return "?"
	}
	return d.placeholderFunc(n)
}

func (d *dialectT) SupportsCast() bool {
	return d.cast
}

func (d *dialectT) SupportsReturning() bool {
	return d.returning
}

// SQL Dialects for supported database servers.
var (
	dialects       map[string]*dialectT
	defaultDialect *dialectT
)

func init() {
	dialects = make(map[string]*dialectT)
	defaultDialect = &dialectT{name: "default"}

	for _, d := range []*dialectT{
		{
			name: "mysql",
		},
		{
			name:     "sqlite",
			altnames: []string{"sqlite3"},
		},
		{
			name:            "postgres",
			altnames:        []string{"pq", "postgresql", "pgx"},
			placeholderFunc: placeholderFunc("$%d"),
			cast:            true,
			returning:       true,
		},
	} {
		dialects[d.name] = d
		for _, altname := range d.altnames {
			dialects[altname] = d
		}
	}
}

func placeholderFunc(format string) func(n int) string {
	return func(n int) string {
		return fmt.Sprintf(format, n)
	}
}
