package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuskdb/tusk/dialect"
)

func render(t *testing.T, e Expr) (string, []any) {
	t.Helper()
	b := NewBuilder(dialect.SQLite)
	stmt, err := b.Expr(e).Statement()
	require.NoError(t, err)
	return stmt.Query, stmt.Args
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expr     Expr
		wantSQL  string
		wantArgs []any
	}{
		{"eq", EQ("name", "a"), `"name" = ?`, []any{"a"}},
		{"eq nil is null", EQ("name", nil), `"name" IS NULL`, nil},
		{"neq", NEQ("age", 3), `"age" <> ?`, []any{3}},
		{"neq nil not null", NEQ("age", nil), `"age" IS NOT NULL`, nil},
		{"lt", LT("age", 3), `"age" < ?`, []any{3}},
		{"lte", LTE("age", 3), `"age" <= ?`, []any{3}},
		{"gt", GT("age", 3), `"age" > ?`, []any{3}},
		{"gte", GTE("age", 3), `"age" >= ?`, []any{3}},
		{"like", Like("name", "a%"), `"name" LIKE ?`, []any{"a%"}},
		{"is null", IsNull("name"), `"name" IS NULL`, nil},
		{"not null", NotNull("name"), `"name" IS NOT NULL`, nil},
		{"in", In("id", 1, 2, 3), `"id" IN (?, ?, ?)`, []any{1, 2, 3}},
		{"empty in matches nothing", In("id"), `1 = 0`, nil},
		{"not in", NotIn("id", 1, 2), `"id" NOT IN (?, ?)`, []any{1, 2}},
		{"empty not in matches everything", NotIn("id"), `1 = 1`, nil},
		{"columns eq", ColumnsEQ("user.id", "pet.owner_id"), `"user"."id" = "pet"."owner_id"`, nil},
		{
			"and",
			And(EQ("active", true), GT("age", 18)),
			`("active" = ?) AND ("age" > ?)`,
			[]any{true, 18},
		},
		{
			"or",
			Or(EQ("a", 1), EQ("b", 2), EQ("c", 3)),
			`("a" = ?) OR ("b" = ?) OR ("c" = ?)`,
			[]any{1, 2, 3},
		},
		{
			"single operand unwrapped",
			And(EQ("a", 1)),
			`"a" = ?`,
			[]any{1},
		},
		{
			"nested",
			And(Or(EQ("a", 1), EQ("b", 2)), NotNull("c")),
			`(("a" = ?) OR ("b" = ?)) AND ("c" IS NOT NULL)`,
			[]any{1, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			query, args := render(t, tt.expr)
			assert.Equal(t, tt.wantSQL, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestColumns(t *testing.T) {
	t.Parallel()

	e := And(EQ("a", 1), Or(In("b", 1, 2), ColumnsEQ("c", "d")))
	assert.Equal(t, []string{"a", "b", "c", "d"}, Columns(e))
}
