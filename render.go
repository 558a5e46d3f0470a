package tusk

import (
	"strconv"

	"github.com/tuskdb/tusk/dialect/sql"
)

// Render translates the query into a statement for the given dialect,
// with the dialect's conventional placeholder style. Rendering is a
// pure function of the node: the same node always yields the same
// statement and argument list, and the node remains reusable.
func (q *Query) Render(dialect string) (*sql.Statement, error) {
	return q.RenderWith(dialect, sql.PlaceholderFor(dialect))
}

// RenderWith renders with an explicit placeholder style.
func (q *Query) RenderWith(dialect string, style sql.Placeholder) (*sql.Statement, error) {
	return q.render(dialect, style, renderFull)
}

type renderMode uint8

const (
	renderFull renderMode = iota
	// renderCount rewrites the projection to COUNT(*) and drops
	// ordering and pagination, so counting happens on the server.
	renderCount
	// renderExist probes for a single constant row.
	renderExist
)

func (q *Query) render(dialect string, style sql.Placeholder, mode renderMode) (*sql.Statement, error) {
	if q.err != nil {
		return nil, q.err
	}
	if q.kind == kindInvalid {
		return nil, NewShapeError("query has no operation")
	}
	b := sql.NewBuilder(dialect).SetPlaceholder(style)
	switch q.kind {
	case kindSelect:
		q.renderSelect(b, mode)
	case kindInsert:
		if len(q.payload) == 0 {
			return nil, NewShapeError("insert requires a payload")
		}
		q.renderInsert(b)
	case kindUpdate:
		if len(q.payload) == 0 {
			return nil, NewShapeError("update requires a payload")
		}
		q.renderUpdate(b)
	case kindDelete:
		q.renderDelete(b)
	}
	return b.Statement()
}

func (q *Query) renderSelect(b *sql.Builder, mode renderMode) {
	b.WriteString("SELECT ")
	switch mode {
	case renderCount:
		b.WriteString("COUNT(*)")
	case renderExist:
		b.WriteString("1")
	default:
		cols := q.cols
		if len(cols) == 0 {
			cols = q.desc.Columns()
		}
		b.IdentComma(cols...)
	}
	b.WriteString(" FROM ").Ident(q.desc.Table())
	for _, j := range q.joins {
		b.WriteString(" JOIN ").Ident(j.desc.Table()).WriteString(" ON ").Expr(j.on)
	}
	q.renderWhere(b)
	if mode == renderFull {
		for i, o := range q.orders {
			if i == 0 {
				b.WriteString(" ORDER BY ")
			} else {
				b.Comma()
			}
			b.Ident(o.col)
			if o.desc {
				b.WriteString(" DESC")
			} else {
				b.WriteString(" ASC")
			}
		}
	}
	switch mode {
	case renderFull:
		if q.limit != nil {
			b.WriteString(" LIMIT ").WriteString(strconv.Itoa(*q.limit))
		}
		if q.offset != nil {
			b.WriteString(" OFFSET ").WriteString(strconv.Itoa(*q.offset))
		}
	case renderExist:
		b.WriteString(" LIMIT 1")
	}
}

func (q *Query) renderInsert(b *sql.Builder) {
	b.WriteString("INSERT INTO ").Ident(q.desc.Table()).WriteString(" (")
	for i, a := range q.payload {
		if i > 0 {
			b.Comma()
		}
		b.Ident(a.Column)
	}
	b.WriteString(") VALUES (")
	for i, a := range q.payload {
		if i > 0 {
			b.Comma()
		}
		b.Arg(a.Value)
	}
	b.WriteByte(')')
}

func (q *Query) renderUpdate(b *sql.Builder) {
	b.WriteString("UPDATE ").Ident(q.desc.Table()).WriteString(" SET ")
	for i, a := range q.payload {
		if i > 0 {
			b.Comma()
		}
		b.Ident(a.Column).WriteString(" = ").Arg(a.Value)
	}
	q.renderWhere(b)
}

func (q *Query) renderDelete(b *sql.Builder) {
	b.WriteString("DELETE FROM ").Ident(q.desc.Table())
	q.renderWhere(b)
}

func (q *Query) renderWhere(b *sql.Builder) {
	switch len(q.preds) {
	case 0:
	case 1:
		b.WriteString(" WHERE ").Expr(q.preds[0])
	default:
		b.WriteString(" WHERE ").Expr(sql.And(q.preds...))
	}
}
