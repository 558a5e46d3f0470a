package tusk

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuskdb/tusk/dialect"
	"github.com/tuskdb/tusk/schema"
)

func TestDiffNoChanges(t *testing.T) {
	t.Parallel()

	row := schema.Values{"id": 1, "name": "a8m", "email": "a8m@x", "active": true}
	cs, err := Diff(userDesc, row, row.Clone())
	require.NoError(t, err)
	assert.True(t, cs.Empty())
	assert.Nil(t, UpdateFrom(userDesc, cs))
}

func TestDiffSingleField(t *testing.T) {
	t.Parallel()

	old := schema.Values{"id": 1, "name": "A", "email": "a@x", "active": true}
	cur := schema.Values{"id": 1, "name": "B", "email": "a@x", "active": true}
	cs, err := Diff(userDesc, old, cur)
	require.NoError(t, err)
	require.Equal(t, []Assign{{Column: "name", Value: "B"}}, cs.Changes)
	require.Equal(t, []Assign{{Column: "id", Value: 1}}, cs.Key)

	stmt, err := UpdateFrom(userDesc, cs).Render(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, `UPDATE "user" SET "name" = ? WHERE "id" = ?`, stmt.Query)
	assert.Equal(t, []any{"B", 1}, stmt.Args)
}

func TestDiffKeyMismatch(t *testing.T) {
	t.Parallel()

	old := schema.Values{"id": 1, "name": "A"}
	cur := schema.Values{"id": 2, "name": "A"}
	_, err := Diff(userDesc, old, cur)
	require.Error(t, err)
	assert.True(t, IsIdentityError(err))
}

func TestDiffNullTransitions(t *testing.T) {
	t.Parallel()

	old := schema.Values{"id": 1, "name": "A", "email": nil, "active": true}
	cur := schema.Values{"id": 1, "name": "A", "email": "a@x", "active": true}
	cs, err := Diff(userDesc, old, cur)
	require.NoError(t, err)
	assert.Equal(t, []Assign{{Column: "email", Value: "a@x"}}, cs.Changes)

	// And the other direction.
	cs, err = Diff(userDesc, cur, old)
	require.NoError(t, err)
	assert.Equal(t, []Assign{{Column: "email", Value: nil}}, cs.Changes)
}

func TestDiffSemanticEquality(t *testing.T) {
	t.Parallel()

	desc := schema.MustDescriptor("Invoice",
		schema.Field{Name: "id", Type: schema.TypeInt, Key: true},
		schema.Field{Name: "total", Type: schema.TypeDecimal},
		schema.Field{Name: "issued_at", Type: schema.TypeTime},
	)
	loc := time.FixedZone("UTC+2", 2*60*60)
	issued := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	old := schema.Values{
		"id":        int64(1),
		"total":     decimal.RequireFromString("10.50"),
		"issued_at": issued,
	}
	// Same instant in another zone, same decimal at another scale:
	// representation differs, value does not.
	cur := schema.Values{
		"id":        1,
		"total":     "10.5",
		"issued_at": issued.In(loc),
	}
	cs, err := Diff(desc, old, cur)
	require.NoError(t, err)
	assert.True(t, cs.Empty())
}

func TestDiffChangesInDescriptorOrder(t *testing.T) {
	t.Parallel()

	old := schema.Values{"id": 1, "name": "A", "email": "a@x", "active": true}
	cur := schema.Values{"id": 1, "name": "B", "email": "b@x", "active": false}
	cs, err := Diff(userDesc, old, cur)
	require.NoError(t, err)
	assert.Equal(t, []Assign{
		{Column: "name", Value: "B"},
		{Column: "email", Value: "b@x"},
		{Column: "active", Value: false},
	}, cs.Changes)
}
