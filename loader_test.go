package mapper

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sess := NewSession(context.Background(), db, NewRegistry(WithDialect(Postgres)))
	defer sess.Close()

	load, err := NewLoader[testUserMapper, int64](sess)
	require.NoError(t, err)

	mock.ExpectQuery(toRE("SELECT id, name, created_time AS createdTime FROM users WHERE id IN ($1,$2,$3)")).
		WithArgs(int64(2), int64(1), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "createdTime"}).
			AddRow(int64(1), "one", nil).
			AddRow(int64(2), "two", nil))

	thunk1, thunk2, thunk3 := load(1), load(2), load(3)

	user2, err := thunk2()
	require.NoError(t, err)
	require.NotNil(t, user2)
	assert.Equal(t, "two", user2.Name)

	// answered by the first query
	user1, err := thunk1()
	require.NoError(t, err)
	require.NotNil(t, user1)
	assert.Equal(t, "one", user1.Name)

	user3, err := thunk3()
	require.NoError(t, err)
	assert.Nil(t, user3)

	// cached
	user1, err = load(1)()
	require.NoError(t, err)
	assert.Equal(t, "one", user1.Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewLoaderError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sess := NewSession(context.Background(), db, NewRegistry(WithDialect(Postgres)))
	defer sess.Close()

	load, err := NewLoader[testUserMapper, int64](sess)
	require.NoError(t, err)

	queryErr := errors.New("connection reset")
	mock.ExpectQuery("SELECT").WillReturnError(queryErr)

	thunk1, thunk2 := load(1), load(2)
	_, err = thunk1()
	assert.ErrorContains(t, err, queryErr.Error())
	_, err = thunk2()
	assert.ErrorContains(t, err, queryErr.Error())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewLoaderKeyType(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sess := NewSession(context.Background(), db, NewRegistry(WithDialect(Postgres)))
	defer sess.Close()

	_, err = NewLoader[testUserMapper, string](sess)
	var configErr *ConfigError
	require.True(t, errors.As(err, &configErr), "%v", err)
	assert.Equal(t, "primary key field ID has type int64, not string", configErr.Reason)

	_, err = NewLoader[noKeyMapper, string](sess)
	require.True(t, errors.As(err, &configErr), "%v", err)
	assert.Equal(t, "no primary key field", configErr.Reason)
}
