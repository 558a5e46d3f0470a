package tusk

import (
	"database/sql"
	"fmt"

	dsql "github.com/tuskdb/tusk/dialect/sql"
	"github.com/tuskdb/tusk/schema"
)

// Cursor is a lazy, forward-only view over the rows of one executed
// read. Each row is materialized exactly once, when the cursor reaches
// it, and is owned by the caller from then on.
//
// A cursor is single-consumer: it must not be shared across
// goroutines. Close releases the underlying rows; a cursor drained by
// Next closes itself.
type Cursor struct {
	rows dsql.Rows
	desc *schema.Descriptor
	cols []string
	cur  schema.Values
	err  error
	done bool
}

// Next advances to the next row, materializing it against the record
// descriptor. It returns false at the end of the result or on the
// first failure; after a failure no partial row is observable and Err
// reports the cause.
func (c *Cursor) Next() bool {
	if c.done || c.err != nil {
		return false
	}
	if !c.rows.Next() {
		c.done = true
		c.cur = nil
		c.err = c.rows.Err()
		c.rows.Close()
		return false
	}
	vals, err := c.scan()
	if err != nil {
		c.done = true
		c.cur = nil
		c.err = err
		c.rows.Close()
		return false
	}
	c.cur = vals
	return true
}

// Values returns the row materialized by the last successful Next.
func (c *Cursor) Values() schema.Values { return c.cur }

// Err returns the first error hit while iterating, if any.
func (c *Cursor) Err() error { return c.err }

// Close releases the cursor's rows. It is safe to call repeatedly.
func (c *Cursor) Close() error {
	c.done = true
	return c.rows.Close()
}

// scan reads the current raw row and maps it through the descriptor:
// columns the descriptor does not declare are dropped, values are
// coerced to their semantic type, and a null in a non-nullable field
// fails the row.
func (c *Cursor) scan() (schema.Values, error) {
	raw := make([]any, len(c.cols))
	for i := range raw {
		raw[i] = new(any)
	}
	if err := c.rows.Scan(raw...); err != nil {
		return nil, &QueryError{Entity: c.desc.Name(), Op: "scan", Err: err}
	}
	vals := make(schema.Values, len(c.cols))
	for i, col := range c.cols {
		f, ok := c.desc.Field(col)
		if !ok {
			continue
		}
		v := *(raw[i].(*any))
		if v == nil {
			if !f.Nullable {
				return nil, &MaterializationError{Entity: c.desc.Name(), Column: col, Err: fmt.Errorf("null in non-nullable field")}
			}
			vals[col] = nil
			continue
		}
		coerced, err := schema.Coerce(f, v)
		if err != nil {
			return nil, &MaterializationError{Entity: c.desc.Name(), Column: col, Err: err}
		}
		vals[col] = coerced
	}
	return vals, nil
}

// scalarInt drains a one-column scalar result, e.g. a COUNT.
func (c *Cursor) scalarInt() (int, error) {
	defer c.rows.Close()
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			return 0, err
		}
		return 0, sql.ErrNoRows
	}
	var n int
	if err := c.rows.Scan(&n); err != nil {
		return 0, err
	}
	return n, c.rows.Err()
}
