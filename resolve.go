package mapper

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/yusiwen/mapper/private/field"
)

// tableNamer is implemented by record types that declare their
// table name with a method.
type tableNamer interface {
	TableName() string
}

// resolve builds the table descriptor for the record type named by
// mapperType. Configuration in cfgs takes precedence over the struct tags
// of the record type.
func resolve(mapperType reflect.Type, cfgs map[reflect.Type]TableConfig, convention Convention) (*Table, error) {
	recordType := recordTypeOf(mapperType)
	if recordType == nil {
		return nil, newConfigError(mapperType, nil, "cannot determine record type")
	}
	if recordType.Kind() != reflect.Struct {
		return nil, newConfigError(mapperType, recordType, "record type is not a struct")
	}

	cfg := cfgs[recordType]
	tags := field.ReadTypeTags(recordType)
	tbl := &Table{
		name:       tableNameFor(recordType, cfg, tags),
		mapperType: mapperType,
		recordType: recordType,
	}
	if tbl.name == "" {
		return nil, newConfigError(mapperType, recordType, "missing table name")
	}
	if err := tbl.build(field.List(recordType), cfg, tags.Exclude, convention); err != nil {
		return nil, err
	}
	return tbl, nil
}

// tableNameFor returns the table name for the record type. The table
// config takes precedence, followed by a TableName method, followed by a
// `table` struct tag.
func tableNameFor(recordType reflect.Type, cfg TableConfig, tags field.TypeTags) string {
	if name := strings.TrimSpace(cfg.TableName); name != "" {
		return name
	}
	if namer, ok := reflect.New(recordType).Interface().(tableNamer); ok {
		if name := strings.TrimSpace(namer.TableName()); name != "" {
			return name
		}
	}
	return tags.TableName
}

// NewTable builds a table descriptor from an explicit declaration of the
// table and its fields, without reference to any Go type. The fields are
// named by property, in the order that they are stored, and column names
// follow the Underscore convention.
//
//	tbl, err := mapper.NewTable(mapper.TableConfig{
//	    TableName:  "users",
//	    PrimaryKey: "id",
//	    JSON:       []string{"tags"},
//	}, "id", "name", "tags", "createdTime")
func NewTable(cfg TableConfig, fields ...string) (*Table, error) {
	return declareTable(cfg, Underscore, fields)
}

func declareTable(cfg TableConfig, convention Convention, fields []string) (*Table, error) {
	tbl := &Table{
		name: strings.TrimSpace(cfg.TableName),
	}
	if tbl.name == "" {
		return nil, &ConfigError{Reason: "missing table name"}
	}
	if err := tbl.build(field.Declare(fields...), cfg, nil, convention); err != nil {
		return nil, err
	}
	return tbl, nil
}

// build populates the columns of the table from the field infos.
func (tbl *Table) build(infos []*field.Info, cfg TableConfig, excluded []string, convention Convention) error {
	configError := func(format string, args ...interface{}) error {
		err := newConfigError(tbl.mapperType, tbl.recordType, fmt.Sprintf(format, args...))
		err.Table = tbl.name
		return err
	}
	cfg.PrimaryKey = strings.TrimSpace(cfg.PrimaryKey)

	// every field named in the table config must exist
	names := append(append([]string(nil), cfg.Exclude...), cfg.JSON...)
	if cfg.PrimaryKey != "" {
		names = append(names, cfg.PrimaryKey)
	}
	for _, name := range names {
		if findInfo(infos, name) == nil {
			return configError("unknown field %q in table config", name)
		}
	}
	excluded = append(append([]string(nil), excluded...), cfg.Exclude...)
	if cfg.PrimaryKey != "" && matchesAny(findInfo(infos, cfg.PrimaryKey), excluded) {
		return configError("primary key field %q is excluded", cfg.PrimaryKey)
	}

	var marked []*Column
	columnFields := make(map[string]string)
	for _, info := range infos {
		if matchesAny(info, excluded) {
			continue
		}
		col := &Column{
			name:      info.Column,
			fieldName: info.Name,
			property:  info.Property,
			json:      info.JSON || matchesAny(info, cfg.JSON),
			index:     info.Index,
			fieldType: info.Field.Type,
		}
		if col.name == "" {
			col.name = convention.Convert(info.Property)
		}
		if cfg.PrimaryKey != "" {
			col.primaryKey = info.Matches(cfg.PrimaryKey)
		} else {
			col.primaryKey = info.PrimaryKey
		}
		if col.primaryKey {
			marked = append(marked, col)
		}
		if other, ok := columnFields[col.name]; ok {
			return configError("fields %s and %s both map to column %q", other, col.fieldName, col.name)
		}
		columnFields[col.name] = col.fieldName
		tbl.columns = append(tbl.columns, col)
	}

	switch len(marked) {
	case 0:
		tbl.pkColumn = DefaultPrimaryKey
		for _, col := range tbl.columns {
			if col.name == DefaultPrimaryKey {
				col.primaryKey = true
				tbl.pk = col
				break
			}
		}
	case 1:
		tbl.pk = marked[0]
		tbl.pkColumn = tbl.pk.name
	default:
		var fieldNames []string
		for _, col := range marked {
			fieldNames = append(fieldNames, col.fieldName)
		}
		return configError("more than one primary key field: %s", strings.Join(fieldNames, ", "))
	}

	// the primary key field is removed by identity, not by column name
	for _, col := range tbl.columns {
		if col != tbl.pk {
			tbl.withoutPK = append(tbl.withoutPK, col)
		}
	}
	return nil
}

func findInfo(infos []*field.Info, name string) *field.Info {
	name = strings.TrimSpace(name)
	for _, info := range infos {
		if info.Matches(name) {
			return info
		}
	}
	return nil
}

func matchesAny(info *field.Info, names []string) bool {
	for _, name := range names {
		if info.Matches(strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}
