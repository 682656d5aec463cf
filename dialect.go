package mapper

import (
	"github.com/yusiwen/mapper/private/dialect"
)

// Dialect is an interface used to handle differences
// in SQL dialects.
type Dialect interface {
	// Name of the dialect.
	Name() string

	// Return the placeholder for binding a variable value.
	// Most SQL dialects support a single question mark (?), but
	// PostgreSQL uses numbered placeholders (eg $1).
	Placeholder(n int) string

	// SupportsCast reports whether a cast following a placeholder,
	// such as the JSON cast "#{tags}::JSONB", is understood.
	SupportsCast() bool

	// SupportsReturning reports whether generated primary keys
	// are returned with an INSERT ... RETURNING statement.
	SupportsReturning() bool
}

// Pre-defined dialects
var (
	Postgres       Dialect // Placeholders: $1, $2, $3; JSON cast; RETURNING
	MySQL          Dialect // Placeholders: ?, ?, ?
	SQLite         Dialect // Placeholders: ?, ?, ?
	DefaultDialect Dialect // Placeholders: ?, ?, ?
)

func init() {
	Postgres = dialect.For("postgres")
	MySQL = dialect.For("mysql")
	SQLite = dialect.For("sqlite")
	DefaultDialect = dialect.For("default")
}

// DialectFor returns the dialect for the database driver name. Unknown
// names return DefaultDialect.
func DialectFor(name string) Dialect {
	if name == "" {
		return DefaultDialect
	}
	return dialect.For(name)
}
