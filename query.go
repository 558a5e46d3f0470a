package tusk

import (
	"strings"

	"github.com/tuskdb/tusk/dialect/sql"
	"github.com/tuskdb/tusk/schema"
)

type kind uint8

const (
	kindInvalid kind = iota
	kindSelect
	kindInsert
	kindUpdate
	kindDelete
)

var kindNames = [...]string{
	kindInvalid: "invalid",
	kindSelect:  "select",
	kindInsert:  "insert",
	kindUpdate:  "update",
	kindDelete:  "delete",
}

func (k kind) String() string { return kindNames[k] }

// Assign is one ordered column/value pair of a write payload.
type Assign struct {
	Column string
	Value  any
}

type orderTerm struct {
	col  string
	desc bool
}

type joinTerm struct {
	desc *schema.Descriptor
	on   sql.Expr
}

// Query is one query under construction against a record descriptor.
//
// Every builder method returns a new node; the receiver is never
// modified, so an intermediate node can be extended in several
// directions and shared across goroutines. Building performs no I/O;
// misuse (unknown columns, clause combinations that cannot render) is
// recorded on the node the moment it happens and surfaced by Err and
// Render.
type Query struct {
	desc    *schema.Descriptor
	kind    kind
	cols    []string
	preds   []sql.Expr
	joins   []joinTerm
	orders  []orderTerm
	limit   *int
	offset  *int
	payload []Assign
	err     error
}

// Select starts a read query. With no columns the projection is the
// descriptor's full column list.
func Select(d *schema.Descriptor, cols ...string) *Query {
	q := &Query{desc: d, kind: kindSelect}
	for _, c := range cols {
		if !d.Has(c) {
			q.err = NewSchemaError(d.Name(), c)
			return q
		}
	}
	if len(cols) > 0 {
		q.cols = append([]string(nil), cols...)
	}
	return q
}

// Insert starts an insert. Populate the payload with Set or SetValues.
func Insert(d *schema.Descriptor) *Query {
	return &Query{desc: d, kind: kindInsert}
}

// Update starts an update. Populate the payload with Set or SetValues
// and target rows with Where.
func Update(d *schema.Descriptor) *Query {
	return &Query{desc: d, kind: kindUpdate}
}

// Delete starts a delete. Target rows with Where.
func Delete(d *schema.Descriptor) *Query {
	return &Query{desc: d, kind: kindDelete}
}

// Descriptor returns the record descriptor the query is bound to.
func (q *Query) Descriptor() *schema.Descriptor { return q.desc }

// Err returns the first error recorded while building. A query with a
// non-nil Err never renders and never executes.
func (q *Query) Err() error { return q.err }

// clone returns a shallow copy. Slices keep their backing arrays; the
// full slice expressions in the append helpers below make sure an
// append never writes into an array another node can see.
func (q *Query) clone() *Query {
	c := *q
	return &c
}

func (q *Query) fail(err error) *Query {
	if q.err != nil {
		return q
	}
	c := q.clone()
	c.err = err
	return c
}

// checkColumn validates a possibly table-qualified column name against
// the base descriptor and any joined descriptors.
func (q *Query) checkColumn(name string) error {
	if table, col, ok := strings.Cut(name, "."); ok {
		if table == q.desc.Table() && q.desc.Has(col) {
			return nil
		}
		for _, j := range q.joins {
			if table == j.desc.Table() && j.desc.Has(col) {
				return nil
			}
		}
		return NewSchemaError(q.desc.Name(), name)
	}
	if q.desc.Has(name) {
		return nil
	}
	for _, j := range q.joins {
		if j.desc.Has(name) {
			return nil
		}
	}
	return NewSchemaError(q.desc.Name(), name)
}

// Where adds a predicate. Several Where calls combine with AND. Every
// column the expression references must be declared by the descriptor
// or by a joined descriptor.
func (q *Query) Where(e sql.Expr) *Query {
	if q.err != nil {
		return q
	}
	if q.kind == kindInsert {
		return q.fail(NewShapeError("insert cannot have a where clause"))
	}
	for _, col := range sql.Columns(e) {
		if err := q.checkColumn(col); err != nil {
			return q.fail(err)
		}
	}
	c := q.clone()
	c.preds = append(q.preds[:len(q.preds):len(q.preds)], e)
	return c
}

// WhereField adds an equality predicate on a single field.
func (q *Query) WhereField(name string, v any) *Query {
	return q.Where(sql.EQ(name, v))
}

// WhereValues adds one equality predicate per entry, AND-combined, in
// descriptor field order so the rendered statement is deterministic.
func (q *Query) WhereValues(vals schema.Values) *Query {
	if q.err != nil {
		return q
	}
	c := q
	for _, f := range q.desc.Fields() {
		if v, ok := vals[f.Name]; ok {
			c = c.Where(sql.EQ(f.Name, v))
		}
	}
	for name := range vals {
		if !q.desc.Has(name) {
			return q.fail(NewSchemaError(q.desc.Name(), name))
		}
	}
	return c
}

// WhereIn adds a membership predicate. An empty candidate set builds a
// predicate that matches no row.
func (q *Query) WhereIn(name string, vs ...any) *Query {
	return q.Where(sql.In(name, vs...))
}

// Join adds an inner join against another descriptor's table. Joins
// render in declaration order.
func (q *Query) Join(d *schema.Descriptor, on sql.Expr) *Query {
	if q.err != nil {
		return q
	}
	if q.kind != kindSelect {
		return q.fail(NewShapeError("%s cannot have joins", q.kind))
	}
	c := q.clone()
	c.joins = append(q.joins[:len(q.joins):len(q.joins)], joinTerm{desc: d, on: on})
	for _, col := range sql.Columns(on) {
		if err := c.checkColumn(col); err != nil {
			return q.fail(err)
		}
	}
	return c
}

// OrderBy adds ascending order terms.
func (q *Query) OrderBy(cols ...string) *Query {
	return q.order(false, cols)
}

// OrderByDesc adds descending order terms.
func (q *Query) OrderByDesc(cols ...string) *Query {
	return q.order(true, cols)
}

func (q *Query) order(desc bool, cols []string) *Query {
	if q.err != nil {
		return q
	}
	if q.kind != kindSelect {
		return q.fail(NewShapeError("%s cannot have an order", q.kind))
	}
	for _, col := range cols {
		if err := q.checkColumn(col); err != nil {
			return q.fail(err)
		}
	}
	c := q.clone()
	c.orders = q.orders[:len(q.orders):len(q.orders)]
	for _, col := range cols {
		c.orders = append(c.orders, orderTerm{col: col, desc: desc})
	}
	return c
}

// Limit caps the number of returned rows. Negative limits are rejected
// when the call is made.
func (q *Query) Limit(n int) *Query {
	if q.err != nil {
		return q
	}
	if q.kind != kindSelect {
		return q.fail(NewShapeError("%s cannot have a limit", q.kind))
	}
	if n < 0 {
		return q.fail(NewShapeError("negative limit %d", n))
	}
	c := q.clone()
	c.limit = &n
	return c
}

// Offset skips the first n rows. Negative offsets are rejected when
// the call is made.
func (q *Query) Offset(n int) *Query {
	if q.err != nil {
		return q
	}
	if q.kind != kindSelect {
		return q.fail(NewShapeError("%s cannot have an offset", q.kind))
	}
	if n < 0 {
		return q.fail(NewShapeError("negative offset %d", n))
	}
	c := q.clone()
	c.offset = &n
	return c
}

// Set assigns a column value in an insert or update payload. Setting
// the same column again replaces the earlier value in place, keeping
// the payload's declaration order.
func (q *Query) Set(col string, v any) *Query {
	if q.err != nil {
		return q
	}
	if q.kind != kindInsert && q.kind != kindUpdate {
		return q.fail(NewShapeError("%s cannot have a payload", q.kind))
	}
	if !q.desc.Has(col) {
		return q.fail(NewSchemaError(q.desc.Name(), col))
	}
	c := q.clone()
	for i, a := range q.payload {
		if a.Column == col {
			c.payload = append([]Assign(nil), q.payload...)
			c.payload[i].Value = v
			return c
		}
	}
	c.payload = append(q.payload[:len(q.payload):len(q.payload)], Assign{Column: col, Value: v})
	return c
}

// SetValues assigns all given values, in descriptor field order.
func (q *Query) SetValues(vals schema.Values) *Query {
	if q.err != nil {
		return q
	}
	c := q
	for _, f := range q.desc.Fields() {
		if v, ok := vals[f.Name]; ok {
			c = c.Set(f.Name, v)
		}
	}
	for name := range vals {
		if !q.desc.Has(name) {
			return q.fail(NewSchemaError(q.desc.Name(), name))
		}
	}
	return c
}
