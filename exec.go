package tusk

import (
	"context"

	"github.com/tuskdb/tusk/dialect"
	"github.com/tuskdb/tusk/dialect/sql"
	"github.com/tuskdb/tusk/schema"
)

// Conn is what the executor runs statements on: a driver or an open
// transaction, plus the dialect name needed to render for it. The
// executor itself is stateless; everything it needs arrives with the
// call.
type Conn interface {
	dialect.ExecQuerier
	Dialect() string
}

// Rows executes a read and returns a lazy cursor over the matching
// rows. Rows are materialized one at a time as the cursor advances;
// the sequence is forward-only and single-pass, restartable only by
// executing again.
func Rows(ctx context.Context, c Conn, q *Query) (*Cursor, error) {
	return rows(ctx, c, q, renderFull)
}

func rows(ctx context.Context, c Conn, q *Query, mode renderMode) (*Cursor, error) {
	if q.err != nil {
		return nil, q.err
	}
	if q.kind != kindSelect {
		return nil, NewShapeError("%s cannot return rows", q.kind)
	}
	stmt, err := q.render(c.Dialect(), sql.PlaceholderFor(c.Dialect()), mode)
	if err != nil {
		return nil, err
	}
	var rs sql.Rows
	if err := c.Query(ctx, stmt.Query, stmt.Args, &rs); err != nil {
		return nil, &QueryError{Entity: q.desc.Name(), Op: "select", Err: err}
	}
	cols, err := rs.Columns()
	if err != nil {
		rs.Close()
		return nil, &QueryError{Entity: q.desc.Name(), Op: "select", Err: err}
	}
	return &Cursor{rows: rs, desc: q.desc, cols: cols}, nil
}

// All executes a read and materializes every matching row.
func All(ctx context.Context, c Conn, q *Query) ([]schema.Values, error) {
	cur, err := Rows(ctx, c, q)
	if err != nil {
		return nil, err
	}
	defer cur.Close()
	var out []schema.Values
	for cur.Next() {
		out = append(out, cur.Values())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AllAs executes a read and hands every row to the materializer of the
// record layer.
func AllAs[T any](ctx context.Context, c Conn, q *Query, m schema.Materializer[T]) ([]T, error) {
	vals, err := All(ctx, c, q)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(vals))
	for _, v := range vals {
		rec, err := m.Materialize(v)
		if err != nil {
			return nil, &MaterializationError{Entity: q.desc.Name(), Err: err}
		}
		out = append(out, rec)
	}
	return out, nil
}

// First executes with an implicit limit of one and returns the first
// matching row, or a NotFoundError when nothing matches.
func First(ctx context.Context, c Conn, q *Query) (schema.Values, error) {
	vals, err := All(ctx, c, q.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, NewNotFoundError(q.desc.Name())
	}
	return vals[0], nil
}

// FirstAs is First with typed materialization.
func FirstAs[T any](ctx context.Context, c Conn, q *Query, m schema.Materializer[T]) (T, error) {
	var zero T
	v, err := First(ctx, c, q)
	if err != nil {
		return zero, err
	}
	rec, err := m.Materialize(v)
	if err != nil {
		return zero, &MaterializationError{Entity: q.desc.Name(), Err: err}
	}
	return rec, nil
}

// One executes expecting exactly one matching row. Zero matches fail
// with a NotFoundError, several with a NotSingularError. The check
// fetches at most two rows; it never drains an unbounded result.
func One(ctx context.Context, c Conn, q *Query) (schema.Values, error) {
	vals, err := All(ctx, c, q.Limit(2))
	if err != nil {
		return nil, err
	}
	switch len(vals) {
	case 0:
		return nil, NewNotFoundError(q.desc.Name())
	case 1:
		return vals[0], nil
	default:
		return nil, NewNotSingularError(q.desc.Name(), len(vals))
	}
}

// OneAs is One with typed materialization.
func OneAs[T any](ctx context.Context, c Conn, q *Query, m schema.Materializer[T]) (T, error) {
	var zero T
	v, err := One(ctx, c, q)
	if err != nil {
		return zero, err
	}
	rec, err := m.Materialize(v)
	if err != nil {
		return zero, &MaterializationError{Entity: q.desc.Name(), Err: err}
	}
	return rec, nil
}

// Count executes the read rewritten to a server-side COUNT(*) and
// returns the number of matching rows.
func Count(ctx context.Context, c Conn, q *Query) (int, error) {
	cur, err := rows(ctx, c, q, renderCount)
	if err != nil {
		return 0, err
	}
	defer cur.Close()
	n, err := cur.scalarInt()
	if err != nil {
		return 0, &QueryError{Entity: q.desc.Name(), Op: "count", Err: err}
	}
	return n, nil
}

// Exist reports whether any row matches the read. The probe fetches at
// most one constant column, not full rows.
func Exist(ctx context.Context, c Conn, q *Query) (bool, error) {
	cur, err := rows(ctx, c, q, renderExist)
	if err != nil {
		return false, err
	}
	defer cur.Close()
	ok := cur.rows.Next()
	if err := cur.rows.Err(); err != nil {
		return false, &QueryError{Entity: q.desc.Name(), Op: "exist", Err: err}
	}
	return ok, nil
}

// Exec executes a write and returns the number of affected rows.
func Exec(ctx context.Context, c Conn, q *Query) (int, error) {
	if q.err != nil {
		return 0, q.err
	}
	switch q.kind {
	case kindInsert, kindUpdate, kindDelete:
	default:
		return 0, NewShapeError("%s is not a write", q.kind)
	}
	stmt, err := q.Render(c.Dialect())
	if err != nil {
		return 0, err
	}
	var res sql.Result
	if err := c.Exec(ctx, stmt.Query, stmt.Args, &res); err != nil {
		return 0, &QueryError{Entity: q.desc.Name(), Op: q.kind.String(), Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, &QueryError{Entity: q.desc.Name(), Op: q.kind.String(), Err: err}
	}
	return int(affected), nil
}
