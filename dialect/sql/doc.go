// Package sql provides the SQL rendering primitives and the
// database/sql backed driver used by the tusk execution layer.
//
// # Rendering
//
// A Builder assembles one statement: identifiers are quoted per
// dialect, values go through Arg and come out as an ordered argument
// list, never as interpolated text.
//
//	b := sql.NewBuilder(dialect.Postgres)
//	b.WriteString("SELECT ").IdentComma("id", "name").
//	    WriteString(" FROM ").Ident("user").
//	    WriteString(" WHERE ").Expr(sql.EQ("active", true))
//	stmt, err := b.Statement()
//	// stmt.Query: SELECT "id", "name" FROM "user" WHERE "active" = $1
//	// stmt.Args:  [true]
//
// # Predicates
//
// Predicate trees compose and are immutable once built:
//
//	sql.EQ("name", "ada")                  // "name" = ?
//	sql.In("status", "active", "pending")  // "status" IN (?, ?)
//	sql.IsNull("deleted_at")               // "deleted_at" IS NULL
//	sql.And(sql.GT("age", 18), sql.Or(
//	    sql.EQ("role", "admin"),
//	    sql.EQ("role", "owner"),
//	))
//
// Logical trees always render parenthesized, so precedence is explicit
// in the statement text.
//
// # Placeholder styles
//
// The marker style is a builder configuration: "?" (mysql, sqlite),
// "$n" (postgres) or named ":vN" via SetPlaceholder(sql.Named).
//
// # Driver
//
// Open and OpenDB wrap a database/sql pool as a dialect.Driver.
// StatsDriver adds query statistics and slow-query logging on top of
// any driver.
package sql
