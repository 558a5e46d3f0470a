package sql

// Op is a comparison operator in a predicate tree.
type Op uint8

// Comparison operators.
const (
	OpEQ Op = iota
	OpNEQ
	OpLT
	OpLTE
	OpGT
	OpGTE
	OpIn
	OpNotIn
	OpLike
	OpIsNull
	OpNotNull
)

var opTokens = [...]string{
	OpEQ:      "=",
	OpNEQ:     "<>",
	OpLT:      "<",
	OpLTE:     "<=",
	OpGT:      ">",
	OpGTE:     ">=",
	OpIn:      "IN",
	OpNotIn:   "NOT IN",
	OpLike:    "LIKE",
	OpIsNull:  "IS NULL",
	OpNotNull: "IS NOT NULL",
}

// String returns the SQL token of the operator.
func (op Op) String() string {
	if int(op) < len(opTokens) {
		return opTokens[op]
	}
	return ""
}

// Expr is a boolean expression used in WHERE and JOIN predicates.
// Expressions form finite trees built by composition and are never
// mutated after construction; the concrete variants are sealed to this
// package.
type Expr interface {
	append(b *Builder)
}

// compare is a single column comparison. vs holds the right-hand
// values: one for binary operators, any number for IN, none for the
// null checks.
type compare struct {
	op  Op
	col string
	vs  []any
}

func (c *compare) append(b *Builder) {
	switch c.op {
	case OpIsNull, OpNotNull:
		b.Ident(c.col).Pad().WriteString(c.op.String())
	case OpIn, OpNotIn:
		// An empty candidate set has a defined meaning: IN matches
		// nothing, NOT IN matches everything.
		if len(c.vs) == 0 {
			if c.op == OpIn {
				b.WriteString("1 = 0")
			} else {
				b.WriteString("1 = 1")
			}
			return
		}
		b.Ident(c.col).Pad().WriteString(c.op.String()).WriteString(" (").Args(c.vs...).WriteByte(')')
	default:
		b.Ident(c.col).WriteByte(' ').WriteString(c.op.String()).WriteByte(' ').Arg(c.vs[0])
	}
}

// columns compares two columns, as in a join condition.
type columns struct {
	op Op
	c1 string
	c2 string
}

func (c *columns) append(b *Builder) {
	b.Ident(c.c1).WriteByte(' ').WriteString(c.op.String()).WriteByte(' ').Ident(c.c2)
}

// logical combines sub-expressions with AND or OR. It renders fully
// parenthesized so precedence never depends on the target engine.
type logical struct {
	token string
	exprs []Expr
}

func (l *logical) append(b *Builder) {
	if len(l.exprs) == 1 {
		l.exprs[0].append(b)
		return
	}
	for i, e := range l.exprs {
		if i > 0 {
			b.WriteByte(' ').WriteString(l.token).WriteByte(' ')
		}
		b.WriteByte('(')
		e.append(b)
		b.WriteByte(')')
	}
}

// EQ returns a "column = value" predicate. A nil value renders as an
// IS NULL check rather than "= NULL", which no engine matches.
func EQ(col string, v any) Expr {
	if v == nil {
		return IsNull(col)
	}
	return &compare{op: OpEQ, col: col, vs: []any{v}}
}

// NEQ returns a "column <> value" predicate. A nil value renders as an
// IS NOT NULL check.
func NEQ(col string, v any) Expr {
	if v == nil {
		return NotNull(col)
	}
	return &compare{op: OpNEQ, col: col, vs: []any{v}}
}

// LT returns a "column < value" predicate.
func LT(col string, v any) Expr { return &compare{op: OpLT, col: col, vs: []any{v}} }

// LTE returns a "column <= value" predicate.
func LTE(col string, v any) Expr { return &compare{op: OpLTE, col: col, vs: []any{v}} }

// GT returns a "column > value" predicate.
func GT(col string, v any) Expr { return &compare{op: OpGT, col: col, vs: []any{v}} }

// GTE returns a "column >= value" predicate.
func GTE(col string, v any) Expr { return &compare{op: OpGTE, col: col, vs: []any{v}} }

// In returns a "column IN (values...)" predicate. With no values it
// renders a predicate that matches no row.
func In(col string, vs ...any) Expr { return &compare{op: OpIn, col: col, vs: vs} }

// NotIn returns a "column NOT IN (values...)" predicate. With no
// values it renders a predicate that matches every row.
func NotIn(col string, vs ...any) Expr { return &compare{op: OpNotIn, col: col, vs: vs} }

// Like returns a "column LIKE pattern" predicate.
func Like(col, pattern string) Expr { return &compare{op: OpLike, col: col, vs: []any{pattern}} }

// IsNull returns a "column IS NULL" predicate.
func IsNull(col string) Expr { return &compare{op: OpIsNull, col: col} }

// NotNull returns a "column IS NOT NULL" predicate.
func NotNull(col string) Expr { return &compare{op: OpNotNull, col: col} }

// ColumnsEQ returns a "column1 = column2" predicate, for join
// conditions. Both sides are identifiers, not values.
func ColumnsEQ(c1, c2 string) Expr { return &columns{op: OpEQ, c1: c1, c2: c2} }

// And combines predicates so all must hold.
func And(exprs ...Expr) Expr { return &logical{token: "AND", exprs: exprs} }

// Or combines predicates so at least one must hold.
func Or(exprs ...Expr) Expr { return &logical{token: "OR", exprs: exprs} }

// Columns reports the column names referenced by the expression tree,
// in encounter order. Used to validate predicates against a record
// descriptor before rendering.
func Columns(e Expr) []string {
	var cols []string
	collectColumns(e, &cols)
	return cols
}

func collectColumns(e Expr, cols *[]string) {
	switch e := e.(type) {
	case *compare:
		*cols = append(*cols, e.col)
	case *columns:
		*cols = append(*cols, e.c1, e.c2)
	case *logical:
		for _, sub := range e.exprs {
			collectColumns(sub, cols)
		}
	}
}
