package mapper

import "github.com/yusiwen/mapper/private/naming"

// Convention provides the naming convention for inferring database
// column names from record property names.
type Convention interface {
	// Convert returns the name of a database column based
	// on the property name of a record field.
	Convert(name string) string
}

// Underscore is the default naming convention. Each uppercase letter
// is lowercased and preceded by an underscore, so the property "userName"
// is stored in the column "user_name".
var Underscore Convention = naming.Underscore

// Lower is a naming convention where the column name is the property
// name converted to lower case.
var Lower Convention = naming.Lower
