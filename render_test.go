package tusk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuskdb/tusk/dialect"
	"github.com/tuskdb/tusk/dialect/sql"
)

func TestRenderSelect(t *testing.T) {
	t.Parallel()

	q := Select(userDesc).
		Where(sql.EQ("active", true)).
		OrderBy("name").
		Limit(10)

	t.Run("sqlite", func(t *testing.T) {
		t.Parallel()
		stmt, err := q.Render(dialect.SQLite)
		require.NoError(t, err)
		assert.Equal(t, `SELECT "id", "name", "email", "active" FROM "user" WHERE "active" = ? ORDER BY "name" ASC LIMIT 10`, stmt.Query)
		assert.Equal(t, []any{true}, stmt.Args)
	})

	t.Run("postgres", func(t *testing.T) {
		t.Parallel()
		stmt, err := q.Render(dialect.Postgres)
		require.NoError(t, err)
		assert.Equal(t, `SELECT "id", "name", "email", "active" FROM "user" WHERE "active" = $1 ORDER BY "name" ASC LIMIT 10`, stmt.Query)
	})

	t.Run("mysql", func(t *testing.T) {
		t.Parallel()
		stmt, err := q.Render(dialect.MySQL)
		require.NoError(t, err)
		assert.Equal(t, "SELECT `id`, `name`, `email`, `active` FROM `user` WHERE `active` = ? ORDER BY `name` ASC LIMIT 10", stmt.Query)
	})

	t.Run("named style", func(t *testing.T) {
		t.Parallel()
		stmt, err := q.RenderWith(dialect.Postgres, sql.Named)
		require.NoError(t, err)
		assert.Equal(t, `SELECT "id", "name", "email", "active" FROM "user" WHERE "active" = :v1 ORDER BY "name" ASC LIMIT 10`, stmt.Query)
	})
}

func TestRenderDeterministic(t *testing.T) {
	t.Parallel()

	q := Select(userDesc, "id").
		Where(sql.In("id", 1, 2, 3)).
		OrderByDesc("id").
		Limit(5).
		Offset(10)
	first, err := q.Render(dialect.Postgres)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := q.Render(dialect.Postgres)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, `SELECT "id" FROM "user" WHERE "id" IN ($1, $2, $3) ORDER BY "id" DESC LIMIT 5 OFFSET 10`, first.Query)
}

func TestRenderEmptyIn(t *testing.T) {
	t.Parallel()

	stmt, err := Select(userDesc, "id").WhereIn("id").Render(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id" FROM "user" WHERE 1 = 0`, stmt.Query)
	assert.Empty(t, stmt.Args)
}

func TestRenderUpdate(t *testing.T) {
	t.Parallel()

	q := Update(userDesc).
		Set("name", "b").
		Set("active", false).
		WhereField("id", 1)
	stmt, err := q.Render(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `UPDATE "user" SET "name" = $1, "active" = $2 WHERE "id" = $3`, stmt.Query)
	assert.Equal(t, []any{"b", false, 1}, stmt.Args)
}

func TestRenderDelete(t *testing.T) {
	t.Parallel()

	stmt, err := Delete(userDesc).WhereField("id", 7).Render(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `user` WHERE `id` = ?", stmt.Query)
	assert.Equal(t, []any{7}, stmt.Args)
}

func TestRenderDeleteAll(t *testing.T) {
	t.Parallel()

	// No predicate deletes every row; the builder does not second-guess it.
	stmt, err := Delete(userDesc).Render(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "user"`, stmt.Query)
}

func TestRenderEmptyPayload(t *testing.T) {
	t.Parallel()

	_, err := Insert(userDesc).Render(dialect.SQLite)
	assert.True(t, IsShapeError(err))

	_, err = Update(userDesc).WhereField("id", 1).Render(dialect.SQLite)
	assert.True(t, IsShapeError(err))
}

func TestRenderNoOperation(t *testing.T) {
	t.Parallel()

	_, err := (&Query{desc: userDesc}).Render(dialect.SQLite)
	assert.True(t, IsShapeError(err))
}
