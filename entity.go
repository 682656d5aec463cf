package mapper

import "time"

// Entity contains the fields common to most records. It is embedded
// in a record type, and its fields are stored after the record's own fields.
//
//	type User struct {
//	    mapper.Entity `table:"users"`
//	    Name string
//	}
type Entity struct {
	ID          int64 `sql:",pk"`
	CreatedTime time.Time
	CreatedBy   string
	UpdatedTime time.Time
	UpdatedBy   string
}
