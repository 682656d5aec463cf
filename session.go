package mapper

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"github.com/jjeffery/kv"
	"github.com/yusiwen/mapper/private/named"
	"go.uber.org/zap"
)

// A Session is a request-scoped database session. It executes the
// statements synthesized for mappers against a Querier.
//
// A session is not safe for concurrent use.
type Session struct {
	context  context.Context
	cancel   func()
	querier  Querier
	registry *Registry
}

// NewSession returns a new, request-scoped session.
//
// Although it is not mandatory, it is a good practice to
// call a session's Close method at the end of a request.
func NewSession(ctx context.Context, querier Querier, registry *Registry) *Session {
	if ctx == nil {
		ctx = context.Background()
	}
	if querier == nil {
		panic("querier cannot be nil")
	}
	if registry == nil {
		panic("registry cannot be nil")
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		context:  ctx,
		cancel:   cancel,
		querier:  querier,
		registry: registry,
	}
}

// Close releases resources associated with the session. Any attempt to
// query using the session will fail after Close has been called.
//
// Close implements the io.Closer interface. It always returns nil.
func (sess *Session) Close() error {
	sess.cancel()
	return nil
}

// Context returns the session's context.
func (sess *Session) Context() context.Context {
	return sess.context
}

// Registry returns the registry used by the session.
func (sess *Session) Registry() *Registry {
	return sess.registry
}

// bind compiles the query and binds its named placeholders.
func (sess *Session) bind(query string, lookup named.Lookup) (string, []interface{}, error) {
	stmt, err := sess.registry.stmts.compile(query)
	if err != nil {
		return "", nil, kv.Wrap(err, "cannot compile query").With("query", query)
	}
	sqlText, args, err := stmt.Bind(sess.registry.dialect, lookup)
	if err != nil {
		return "", nil, kv.Wrap(err, "cannot bind query").With("query", query)
	}
	sess.registry.logger.Debug("execute",
		zap.String("sql", sqlText),
		zap.Int("args", len(args)),
	)
	return sqlText, args, nil
}

// Exec executes a query without returning any rows. Named placeholders in
// the query are bound to the params.
func (sess *Session) Exec(query string, params map[string]interface{}) (sql.Result, error) {
	sqlText, args, err := sess.bind(query, named.Map(params))
	if err != nil {
		return nil, err
	}
	result, err := sess.querier.ExecContext(sess.context, sqlText, args...)
	if err != nil {
		return nil, kv.Wrap(err, "cannot execute query").With("query", query)
	}
	return result, nil
}

// tableOf returns the table for the mapper type, and checks that rows of
// type recordType can be stored in it.
func (sess *Session) tableOf(mapperType reflect.Type, recordType reflect.Type) (*Table, error) {
	tbl, err := sess.registry.tableFor(mapperType)
	if err != nil {
		return nil, err
	}
	if tbl.recordType != recordType {
		return nil, newConfigError(mapperType, recordType, "mapper is for a different record type")
	}
	return tbl, nil
}

// rowLookup returns a lookup that binds placeholders to the fields of the
// row. A placeholder can name a field by property, Go field name or column.
func (tbl *Table) rowLookup(rowValue reflect.Value) named.Lookup {
	return func(name string) (interface{}, error) {
		col := tbl.column(name)
		if col == nil || col.index == nil {
			return nil, named.ErrNotFound
		}
		fieldValue := col.index.ValueRO(rowValue)
		if col.json {
			return jsonArg(col.name, fieldValue)
		}
		return fieldValue.Interface(), nil
	}
}

// insertRow inserts the row with the query. If generatedKey is set, the
// primary key generated by the database is written to the row.
func (sess *Session) insertRow(tbl *Table, rowValue reflect.Value, query string, generatedKey bool) error {
	if generatedKey && sess.registry.dialect.SupportsReturning() {
		return sess.returningInsertRow(tbl, rowValue, query)
	}
	sqlText, args, err := sess.bind(query, tbl.rowLookup(rowValue))
	if err != nil {
		return err
	}
	result, err := sess.querier.ExecContext(sess.context, sqlText, args...)
	if err != nil {
		return tbl.wrapRowError(err, rowValue, "cannot insert row")
	}
	if !generatedKey {
		return nil
	}
	field := tbl.pk.index.ValueRW(rowValue)
	if !isIntegerKind(field.Kind()) {
		// only integer keys are reported by LastInsertId
		return nil
	}
	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return tbl.wrapRowError(err, rowValue, "cannot retrieve last insert id")
	}
	if field.Kind() >= reflect.Uint && field.Kind() <= reflect.Uint64 {
		field.SetUint(uint64(lastInsertID))
	} else {
		field.SetInt(lastInsertID)
	}
	return nil
}

func (sess *Session) returningInsertRow(tbl *Table, rowValue reflect.Value, query string) error {
	query = fmt.Sprintf("%s RETURNING %s", query, tbl.pkColumn)
	sqlText, args, err := sess.bind(query, tbl.rowLookup(rowValue))
	if err != nil {
		return err
	}
	rows, err := sess.querier.QueryContext(sess.context, sqlText, args...)
	if err != nil {
		return tbl.wrapRowError(err, rowValue, "cannot insert row")
	}
	defer rows.Close()
	// expecting one row, one column
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return tbl.wrapRowError(err, rowValue, "cannot insert row")
		}
		return tbl.wrapRowError(sql.ErrNoRows, rowValue, "cannot retrieve generated key")
	}
	field := tbl.pk.index.ValueRW(rowValue)
	if err := rows.Scan(scanDest(tbl.pkColumn, field)); err != nil {
		return tbl.wrapRowError(err, rowValue, "cannot retrieve generated key")
	}
	return rows.Err()
}

func isIntegerKind(kind reflect.Kind) bool {
	return kind >= reflect.Int && kind <= reflect.Uint64
}

// execRow executes a statement bound to the row, and returns the number
// of rows affected.
func (sess *Session) execRow(tbl *Table, rowValue reflect.Value, query string, msg string) (int, error) {
	sqlText, args, err := sess.bind(query, tbl.rowLookup(rowValue))
	if err != nil {
		return 0, err
	}
	result, err := sess.querier.ExecContext(sess.context, sqlText, args...)
	if err != nil {
		return 0, tbl.wrapRowError(err, rowValue, msg)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, tbl.wrapRowError(err, rowValue, "cannot retrieve rows affected")
	}
	return int(rowsAffected), nil
}

// queryRows executes a query and maps the result columns onto new rows.
func queryRows[T any](sess *Session, tbl *Table, query string, lookup named.Lookup) ([]*T, error) {
	sqlText, args, err := sess.bind(query, lookup)
	if err != nil {
		return nil, err
	}
	rows, err := sess.querier.QueryContext(sess.context, sqlText, args...)
	if err != nil {
		return nil, kv.Wrap(err, "cannot query rows").With("table", tbl.name, "query", query)
	}
	defer rows.Close()
	list, err := scanRows[T](tbl, rows)
	if err != nil {
		return nil, kv.Wrap(err, "cannot scan rows").With("table", tbl.name, "query", query)
	}
	return list, nil
}
