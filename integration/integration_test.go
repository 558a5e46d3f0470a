// Package integration runs the full pipeline against an in-memory
// SQLite database: build, render, execute, materialize and diff on a
// real engine instead of a mock.
package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/tuskdb/tusk"
	"github.com/tuskdb/tusk/dialect"
	"github.com/tuskdb/tusk/dialect/sql"
	"github.com/tuskdb/tusk/schema"
)

var userDesc = schema.MustDescriptor("User",
	schema.Field{Name: "id", Type: schema.TypeInt, Key: true},
	schema.Field{Name: "name", Type: schema.TypeString},
	schema.Field{Name: "email", Type: schema.TypeString, Nullable: true},
	schema.Field{Name: "active", Type: schema.TypeBool},
)

func openDB(t *testing.T) *sql.Driver {
	t.Helper()
	drv, err := sql.Open(dialect.SQLite, "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	drv.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { drv.Close() })

	err = drv.Exec(context.Background(), `
		CREATE TABLE user (
			id      INTEGER PRIMARY KEY,
			name    TEXT    NOT NULL,
			email   TEXT    UNIQUE,
			active  BOOLEAN NOT NULL DEFAULT true
		)`, []any{}, nil)
	require.NoError(t, err)
	return drv
}

func seed(t *testing.T, drv *sql.Driver, rows ...schema.Values) {
	t.Helper()
	for _, row := range rows {
		_, err := tusk.Exec(context.Background(), drv, tusk.Insert(userDesc).SetValues(row))
		require.NoError(t, err)
	}
}

func TestReadPipeline(t *testing.T) {
	drv := openDB(t)
	seed(t, drv,
		schema.Values{"id": 1, "name": "a8m", "email": "a8m@x", "active": true},
		schema.Values{"id": 2, "name": "nat", "email": nil, "active": true},
		schema.Values{"id": 3, "name": "rot", "email": "rot@x", "active": false},
	)
	ctx := context.Background()

	vals, err := tusk.All(ctx, drv, tusk.Select(userDesc).WhereField("active", true).OrderBy("id"))
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.Equal(t, schema.Values{"id": int64(1), "name": "a8m", "email": "a8m@x", "active": true}, vals[0])
	assert.Nil(t, vals[1]["email"])

	one, err := tusk.One(ctx, drv, tusk.Select(userDesc).WhereField("id", 3))
	require.NoError(t, err)
	assert.Equal(t, "rot", one["name"])

	_, err = tusk.One(ctx, drv, tusk.Select(userDesc).WhereField("active", true))
	assert.True(t, tusk.IsNotSingular(err))

	_, err = tusk.First(ctx, drv, tusk.Select(userDesc).WhereField("id", 99))
	assert.True(t, tusk.IsNotFound(err))

	n, err := tusk.Count(ctx, drv, tusk.Select(userDesc).WhereField("active", true))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ok, err := tusk.Exist(ctx, drv, tusk.Select(userDesc).Where(sql.IsNull("email")))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCursorStreaming(t *testing.T) {
	drv := openDB(t)
	seed(t, drv,
		schema.Values{"id": 1, "name": "a", "active": true},
		schema.Values{"id": 2, "name": "b", "active": true},
	)

	cur, err := tusk.Rows(context.Background(), drv, tusk.Select(userDesc).OrderBy("id"))
	require.NoError(t, err)
	defer cur.Close()

	var names []string
	for cur.Next() {
		names = append(names, cur.Values()["name"].(string))
	}
	require.NoError(t, cur.Err())
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestDiffUpdatePipeline(t *testing.T) {
	drv := openDB(t)
	seed(t, drv, schema.Values{"id": 1, "name": "A", "email": "a@x", "active": true})
	ctx := context.Background()

	old, err := tusk.One(ctx, drv, tusk.Select(userDesc).WhereField("id", 1))
	require.NoError(t, err)

	cur := old.Clone()
	cur["name"] = "B"
	cs, err := tusk.Diff(userDesc, old, cur)
	require.NoError(t, err)
	require.False(t, cs.Empty())

	n, err := tusk.Exec(ctx, drv, tusk.UpdateFrom(userDesc, cs))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	after, err := tusk.One(ctx, drv, tusk.Select(userDesc).WhereField("id", 1))
	require.NoError(t, err)
	assert.Equal(t, "B", after["name"])
	assert.Equal(t, "a@x", after["email"])
}

func TestTxAtomicity(t *testing.T) {
	drv := openDB(t)
	seed(t, drv, schema.Values{"id": 1, "name": "keep", "active": true})
	ctx := context.Background()

	// A failing unit leaves no trace of its writes.
	err := tusk.WithTx(ctx, drv, func(tx *tusk.Tx) error {
		if _, err := tusk.Exec(ctx, tx, tusk.Insert(userDesc).Set("id", 2).Set("name", "gone").Set("active", true)); err != nil {
			return err
		}
		if _, err := tusk.Exec(ctx, tx, tusk.Delete(userDesc).WhereField("id", 1)); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	n, err := tusk.Count(ctx, drv, tusk.Select(userDesc))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	ok, err := tusk.Exist(ctx, drv, tusk.Select(userDesc).WhereField("name", "keep"))
	require.NoError(t, err)
	assert.True(t, ok)

	// The same unit commits when it succeeds.
	err = tusk.WithTx(ctx, drv, func(tx *tusk.Tx) error {
		_, err := tusk.Exec(ctx, tx, tusk.Insert(userDesc).Set("id", 2).Set("name", "kept").Set("active", true))
		return err
	})
	require.NoError(t, err)
	n, err = tusk.Count(ctx, drv, tusk.Select(userDesc))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestUniqueConstraintClassification(t *testing.T) {
	drv := openDB(t)
	seed(t, drv, schema.Values{"id": 1, "name": "a", "email": "dup@x", "active": true})

	_, err := tusk.Exec(context.Background(), drv,
		tusk.Insert(userDesc).Set("id", 2).Set("name", "b").Set("email", "dup@x").Set("active", true))
	require.Error(t, err)
	assert.True(t, sql.IsUniqueConstraintError(err))
	assert.True(t, sql.IsConstraintError(err))
}
