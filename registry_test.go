package mapper

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRegistryCachesTable(t *testing.T) {
	registry := NewRegistry()

	tbl1, err := TableOf[testUserMapper](registry)
	require.NoError(t, err)
	tbl2, err := registry.TableFor(testUserMapper{})
	require.NoError(t, err)
	tbl3, err := registry.TableFor(&testUserMapper{})
	require.NoError(t, err)

	if tbl1 != tbl2 || tbl1 != tbl3 {
		t.Errorf("want the same table, got %p, %p, %p", tbl1, tbl2, tbl3)
	}
	if want, got := int64(1), registry.resolves.Load(); want != got {
		t.Errorf("resolves: want=%d got=%d", want, got)
	}

	// a different mapper for the same record type has its own entry
	type otherUserMapper struct{ Base[testUser] }
	tbl4, err := TableOf[otherUserMapper](registry)
	require.NoError(t, err)
	assert.NotSame(t, tbl1, tbl4)
	assert.Equal(t, tbl1.Columns(), tbl4.Columns())
	assert.Equal(t, int64(2), registry.resolves.Load())
}

func TestRegistryConcurrent(t *testing.T) {
	registry := NewRegistry()
	const n = 50

	var wg sync.WaitGroup
	start := make(chan struct{})
	tables := make([]*Table, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			tbl, err := registry.TableFor(reflect.TypeOf((*testAccountMapper)(nil)).Elem())
			if err != nil {
				t.Error(err)
				return
			}
			tables[i] = tbl
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 1; i < n; i++ {
		if tables[i] != tables[0] {
			t.Fatalf("%d: want the same table for every goroutine", i)
		}
	}
	if want, got := int64(1), registry.resolves.Load(); want != got {
		t.Errorf("resolves: want=%d got=%d", want, got)
	}
}

func TestRegistryDoesNotCacheErrors(t *testing.T) {
	registry := NewRegistry()
	for i := 0; i < 2; i++ {
		_, err := TableOf[noTableMapper](registry)
		require.Error(t, err)
	}
	if want, got := int64(2), registry.resolves.Load(); want != got {
		t.Errorf("resolves: want=%d got=%d", want, got)
	}
	assert.Nil(t, registry.tables.lookup(reflect.TypeOf(noTableMapper{})))
}

func TestRegistryLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	registry := NewRegistry(WithLogger(zap.New(core)))

	for i := 0; i < 3; i++ {
		_, err := TableOf[testUserMapper](registry)
		require.NoError(t, err)
	}

	entries := logs.FilterMessage("resolved table").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "users", fields["table"])
	assert.Equal(t, "mapper.testUserMapper", fields["mapper"])
	assert.Equal(t, "mapper.testUser", fields["record"])
}

func TestRegistryOptions(t *testing.T) {
	registry := NewRegistry()
	assert.Equal(t, DefaultDialect, registry.Dialect())

	registry = NewRegistry(WithDialect(Postgres), WithDialect(nil), WithLogger(nil), WithConvention(nil))
	assert.Equal(t, "postgres", registry.Dialect().Name())
	assert.NotNil(t, registry.logger)
	assert.NotNil(t, registry.convention)

	tbl, err := registry.Declare(TableConfig{TableName: "users"}, "id", "createdTime")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "created_time"}, tbl.Columns())
	assert.Equal(t, "id", tbl.PrimaryKey())
	assert.Nil(t, tbl.RecordType())
}

func sameNameMapperA() reflect.Type {
	type sameNameMapper struct{ Base[testUser] }
	return reflect.TypeOf(sameNameMapper{})
}

func sameNameMapperB() reflect.Type {
	type sameNameMapper struct{ Base[noKey] }
	return reflect.TypeOf(sameNameMapper{})
}

func TestRegistrySameTypeName(t *testing.T) {
	typeA, typeB := sameNameMapperA(), sameNameMapperB()
	require.Equal(t, typeA.String(), typeB.String())
	require.NotEqual(t, typeA, typeB)

	registry := NewRegistry()
	const n = 20
	tables := make([]*Table, 2*n)
	var wg sync.WaitGroup
	for i := range tables {
		mapperType := typeA
		if i%2 == 1 {
			mapperType = typeB
		}
		wg.Add(1)
		go func(i int, mapperType reflect.Type) {
			defer wg.Done()
			tbl, err := registry.TableFor(mapperType)
			if err != nil {
				t.Error(err)
				return
			}
			tables[i] = tbl
		}(i, mapperType)
	}
	wg.Wait()

	for i, tbl := range tables {
		require.NotNil(t, tbl)
		want := "users"
		if i%2 == 1 {
			want = "no_keys"
		}
		assert.Equal(t, want, tbl.Name())
		assert.Same(t, tables[i%2], tbl)
	}
	assert.Equal(t, int64(2), registry.resolves.Load())
}
