package mapper

import (
	"database/sql"
	"reflect"

	"github.com/yusiwen/mapper/private/dialect"
	"go.uber.org/zap"
)

// An Option provides optional configuration and is supplied when
// creating a new Registry.
type Option func(r *Registry)

// ForDB creates an option that sets the dialect for the open DB handle.
func ForDB(db *sql.DB) Option {
	return func(r *Registry) {
		r.dialect = dialect.ForDB(db)
	}
}

// WithDialect provides an option that sets the registry's dialect.
func WithDialect(d Dialect) Option {
	return func(r *Registry) {
		if d != nil {
			r.dialect = d
		}
	}
}

// WithConvention creates an option that sets the naming convention
// used to derive column names from property names.
func WithConvention(convention Convention) Option {
	return func(r *Registry) {
		if convention != nil {
			r.convention = convention
		}
	}
}

// WithLogger creates an option that sets the logger. Table resolution and
// statement execution are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTable creates an option that supplies explicit configuration
// for the record type T.
//
//	registry := mapper.NewRegistry(
//	    mapper.WithTable[User](mapper.TableConfig{
//	        TableName: "users",
//	        Exclude:   []string{"Password"},
//	    }),
//	)
func WithTable[T any](cfg TableConfig) Option {
	recordType := reflect.TypeOf((*T)(nil)).Elem()
	return func(r *Registry) {
		r.configs[recordType] = cfg
	}
}

// WithTables creates an option that supplies explicit configuration for
// a number of record types. Keys that do not identify a struct type
// are ignored.
func WithTables(tables TablesConfig) Option {
	return func(r *Registry) {
		for key, cfg := range tables {
			if recordType := tableKeyType(key); recordType != nil {
				r.configs[recordType] = cfg
			}
		}
	}
}

func tableKeyType(key interface{}) reflect.Type {
	t, ok := key.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(key)
	}
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	return t
}
