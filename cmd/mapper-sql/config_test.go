package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
dialect: postgres
tables:
  - name: users
    fields: [id, name, createdTime]
  - name: accounts
    fields: [accountId, name, tags, password]
    primary_key: accountId
    exclude: [password]
    json: [tags]
`

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0o600))
	return filename
}

func TestLoadConfig(t *testing.T) {
	config, err := loadConfig(writeConfig(t, "tables.yaml", testConfig))
	require.NoError(t, err)
	assert.Equal(t, "postgres", config.Dialect)
	assert.Equal(t, "underscore", config.Convention)
	require.Len(t, config.Tables, 2)

	accounts := config.Tables[1]
	assert.Equal(t, "accounts", accounts.Name)
	assert.Equal(t, []string{"accountId", "name", "tags", "password"}, accounts.Fields)
	assert.Equal(t, "accountId", accounts.PrimaryKey)
	assert.Equal(t, []string{"password"}, accounts.Exclude)
	assert.Equal(t, []string{"tags"}, accounts.JSON)

	tbl, err := accounts.declare(config.registry())
	require.NoError(t, err)
	assert.Equal(t, "account_id", tbl.PrimaryKey())
	assert.Equal(t, []string{"account_id", "name", "tags"}, tbl.Columns())
}

func TestLoadConfigJSON(t *testing.T) {
	config, err := loadConfig(writeConfig(t, "tables.json",
		`{"dialect": "sqlite", "convention": "lower", "tables": [{"name": "t", "fields": ["id", "fullName"]}]}`))
	require.NoError(t, err)
	tbl, err := config.Tables[0].declare(config.registry())
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "fullname"}, tbl.Columns())
	assert.Equal(t, "sqlite", config.registry().Dialect().Name())
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		config string
		errmsg string
	}{
		{config: `dialect: postgres`, errmsg: "no tables declared"},
		{config: "tables:\n  - fields: [id]", errmsg: "table 1: missing name"},
		{config: "tables:\n  - name: t", errmsg: "table t: no fields declared"},
		{config: "tables:\n  - {name: t, fields: [id]}\n  - {name: t, fields: [id]}", errmsg: "table t: declared more than once"},
		{config: "convention: kebab\ntables:\n  - {name: t, fields: [id]}", errmsg: `unknown naming convention "kebab"`},
	}
	for _, tt := range tests {
		_, err := loadConfig(writeConfig(t, "tables.yaml", tt.config))
		if err == nil {
			t.Errorf("%q: want error", tt.config)
			continue
		}
		if want, got := tt.errmsg, err.Error(); want != got {
			t.Errorf("want=%q got=%q", want, got)
		}
	}

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
