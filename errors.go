package mapper

import (
	"reflect"

	"github.com/jjeffery/kv"
)

// ConfigError is returned when a table descriptor cannot be resolved
// for a mapper. It indicates a programming error in the declaration of
// the mapper or of its record type, so it should not be retried.
type ConfigError struct {
	Mapper reflect.Type // mapper type, nil for explicit tables
	Record reflect.Type // record type, nil if it could not be determined
	Table  string       // table name, if known
	Reason string
}

func (e *ConfigError) Error() string {
	var keyvals kv.List
	if e.Mapper != nil {
		keyvals = append(keyvals, "mapper", typeName(e.Mapper))
	}
	if e.Record != nil {
		keyvals = append(keyvals, "record", typeName(e.Record))
	}
	if e.Table != "" {
		keyvals = append(keyvals, "table", e.Table)
	}
	msg := "mapper: " + e.Reason
	if len(keyvals) > 0 {
		msg += " " + keyvals.String()
	}
	return msg
}

func newConfigError(mapperType, recordType reflect.Type, reason string) *ConfigError {
	return &ConfigError{
		Mapper: mapperType,
		Record: recordType,
		Reason: reason,
	}
}

// typeName returns the fully qualified name of the type.
func typeName(t reflect.Type) string {
	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
