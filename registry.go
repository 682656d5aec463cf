package mapper

import (
	"reflect"
	"sync/atomic"

	"go.uber.org/zap"
)

// Registry resolves and caches the table descriptors for mappers.
// A program usually creates one registry per database, and shares it
// between all of its sessions.
//
// A registry is safe for concurrent use once it has been created.
// Each mapper type is resolved at most once and the descriptor is kept
// for the life of the registry. Resolution failures are not kept, so a
// later lookup of the same mapper type tries again.
type Registry struct {
	convention Convention
	dialect    Dialect
	logger     *zap.Logger
	configs    map[reflect.Type]TableConfig
	tables     tableMap
	stmts      stmtCache
	resolves   atomic.Int64
}

// NewRegistry creates a registry with the options supplied.
//
// Without options, the registry uses the Underscore naming convention,
// the default dialect and a no-op logger.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		convention: Underscore,
		dialect:    DefaultDialect,
		logger:     zap.NewNop(),
		configs:    make(map[reflect.Type]TableConfig),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dialect returns the SQL dialect of the registry.
func (r *Registry) Dialect() Dialect {
	return r.dialect
}

// TableFor returns the table descriptor for the mapper. The mapper can be
// a value or pointer of a struct type that embeds Base, or the reflect.Type
// of a mapper struct or interface type.
func (r *Registry) TableFor(mapper interface{}) (*Table, error) {
	mapperType, ok := mapper.(reflect.Type)
	if !ok {
		mapperType = reflect.TypeOf(mapper)
	}
	if mapperType == nil {
		return nil, newConfigError(nil, nil, "nil mapper")
	}
	for mapperType.Kind() == reflect.Ptr {
		mapperType = mapperType.Elem()
	}
	return r.tableFor(mapperType)
}

// MustTableFor returns the table descriptor for the mapper, and panics
// if it cannot be resolved.
func (r *Registry) MustTableFor(mapper interface{}) *Table {
	tbl, err := r.TableFor(mapper)
	if err != nil {
		panic(err)
	}
	return tbl
}

// TableOf returns the table descriptor for the mapper type M.
//
//	tbl, err := mapper.TableOf[UserMapper](registry)
func TableOf[M Mapper[T], T any](r *Registry) (*Table, error) {
	return r.tableFor(mapperTypeOf[M]())
}

// Declare builds a table descriptor from an explicit declaration, using
// the registry's naming convention. See NewTable. Declared tables are
// not cached.
func (r *Registry) Declare(cfg TableConfig, fields ...string) (*Table, error) {
	return declareTable(cfg, r.convention, fields)
}

func (r *Registry) tableFor(mapperType reflect.Type) (*Table, error) {
	return r.tables.loadOrResolve(mapperType, func() (*Table, error) {
		r.resolves.Add(1)
		tbl, err := resolve(mapperType, r.configs, r.convention)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("resolved table",
			zap.Stringer("mapper", mapperType),
			zap.Stringer("record", tbl.recordType),
			zap.String("table", tbl.name),
			zap.Strings("columns", tbl.Columns()),
		)
		return tbl, nil
	})
}
