package sql

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tuskdb/tusk/dialect"
)

// validIdentifierRe validates SQL identifiers (alphanumeric, underscores, dots for table.column)
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// isValidIdentifier checks if the string is a valid SQL identifier.
func isValidIdentifier(s string) bool {
	return s != "" && len(s) <= 128 && validIdentifierRe.MatchString(s)
}

// Placeholder is the parameter marker style used when rendering a
// statement. It is a renderer configuration, not part of the query
// representation: the same query renders with any style.
type Placeholder uint8

const (
	// Question renders positional "?" markers (mysql, sqlite).
	Question Placeholder = iota
	// Dollar renders numbered "$1".."$n" markers (postgres).
	Dollar
	// Named renders named ":v1"..":vn" markers.
	Named
)

// PlaceholderFor returns the conventional placeholder style for the
// given dialect name.
func PlaceholderFor(d string) Placeholder {
	if d == dialect.Postgres {
		return Dollar
	}
	return Question
}

// Statement is a rendered SQL statement with its bound arguments.
// The count and position of markers in Query always matches Args.
type Statement struct {
	Query string
	Args  []any
}

// Builder assembles one SQL statement and its ordered argument list.
// Identifiers are quoted per dialect and validated; values never enter
// the statement text, they are recorded as arguments behind a
// placeholder.
type Builder struct {
	sb      strings.Builder
	dialect string
	style   Placeholder
	args    []any
	err     error
}

// NewBuilder returns a builder for the given dialect with its
// conventional placeholder style.
func NewBuilder(d string) *Builder {
	return &Builder{dialect: d, style: PlaceholderFor(d)}
}

// SetPlaceholder overrides the placeholder style.
func (b *Builder) SetPlaceholder(p Placeholder) *Builder {
	b.style = p
	return b
}

// Dialect returns the dialect the builder renders for.
func (b *Builder) Dialect() string { return b.dialect }

// Err returns the first error recorded while building.
func (b *Builder) Err() error { return b.err }

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// WriteString appends raw SQL text. Callers must never pass
// user-supplied values through here.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// WriteByte appends a single byte of raw SQL text.
func (b *Builder) WriteByte(c byte) *Builder {
	b.sb.WriteByte(c)
	return b
}

// Comma appends ", ".
func (b *Builder) Comma() *Builder { return b.WriteString(", ") }

// Pad appends a single space.
func (b *Builder) Pad() *Builder { return b.WriteByte(' ') }

// Ident appends the identifier quoted for the dialect. A dotted name
// is quoted per part ("t"."c"). Invalid identifiers record an error.
func (b *Builder) Ident(name string) *Builder {
	if !isValidIdentifier(name) {
		b.setErr(fmt.Errorf("dialect/sql: invalid identifier %q", name))
		return b
	}
	quote := byte('"')
	if b.dialect == dialect.MySQL {
		quote = '`'
	}
	for i, part := range strings.Split(name, ".") {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteByte(quote)
		b.WriteString(part)
		b.WriteByte(quote)
	}
	return b
}

// IdentComma appends the identifiers comma separated.
func (b *Builder) IdentComma(names ...string) *Builder {
	for i, name := range names {
		if i > 0 {
			b.Comma()
		}
		b.Ident(name)
	}
	return b
}

// Arg appends a placeholder for the value and records it as the next
// bound argument.
func (b *Builder) Arg(v any) *Builder {
	b.args = append(b.args, v)
	switch b.style {
	case Dollar:
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(len(b.args)))
	case Named:
		b.WriteString(":v")
		b.WriteString(strconv.Itoa(len(b.args)))
	default:
		b.WriteByte('?')
	}
	return b
}

// Args appends placeholders for all values, comma separated.
func (b *Builder) Args(vs ...any) *Builder {
	for i, v := range vs {
		if i > 0 {
			b.Comma()
		}
		b.Arg(v)
	}
	return b
}

// Expr appends the rendered expression.
func (b *Builder) Expr(e Expr) *Builder {
	if e != nil {
		e.append(b)
	}
	return b
}

// Statement returns the rendered statement, or the first error the
// builder recorded.
func (b *Builder) Statement() (*Statement, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Statement{Query: b.sb.String(), Args: b.args}, nil
}

// String returns the statement text built so far.
func (b *Builder) String() string { return b.sb.String() }
