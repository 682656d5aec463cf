package mapper

import (
	"regexp"
	"time"
)

// testUser is stored in the users table.
type testUser struct {
	_           struct{} `table:"users"`
	ID          int64    `sql:",pk"`
	Name        string
	CreatedTime time.Time
}

type testUserMapper struct {
	Base[testUser]
}

// testAccount is stored in the accounts table, and has the common
// entity fields.
type testAccount struct {
	Entity   `table:"accounts" notcolumn:"Password"`
	Name     string
	Password string
	Tags     []string `sql:",json"`
	Nickname string   `sql:"-"`
}

type testAccountMapper interface {
	Mapper[testAccount]
}

// toRE converts a SQL statement into a regular expression that
// matches the statement exactly.
func toRE(s string) string {
	return "^" + regexp.QuoteMeta(s) + "$"
}
