package mapper

// TablesConfig is a map of table configurations, keyed by the record type
// that represents the table. A key can be a record value, a pointer to a
// record value or a reflect.Type.
type TablesConfig map[interface{}]TableConfig

// TableConfig contains explicit configuration for an individual
// table. It is an alternative to declaring table information in the
// struct tags of the record type, and any field it sets takes precedence
// over the struct tags.
type TableConfig struct {
	// TableName optionally specifies the name of the database
	// table associated with the record type.
	TableName string

	// PrimaryKey optionally names the primary key field, by Go field
	// name or property name. When set it replaces any primary key
	// marker in the struct tags.
	PrimaryKey string

	// Exclude lists fields that are not stored in the table, in
	// addition to those excluded in the struct tags.
	Exclude []string

	// JSON lists fields that are stored as JSON values.
	JSON []string
}
