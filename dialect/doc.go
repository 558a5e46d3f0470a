// Package dialect provides the database abstraction the tusk execution
// layer runs on.
//
// The package defines the interfaces the executor and the transaction
// coordinator consume, and nothing else: actual connectivity lives in
// the driver behind them.
//
// # Supported Dialects
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// The dialect name selects identifier quoting and placeholder style
// when statements are rendered.
//
// # Driver Interface
//
// The Driver interface is the connection contract:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// # Transaction Interface
//
// The Tx interface scopes statements to one atomic unit:
//
//	type Tx interface {
//	    ExecQuerier
//	    Commit() error
//	    Rollback() error
//	}
//
// # ExecQuerier Interface
//
// ExecQuerier is implemented by both Driver and Tx, so executor code
// is agnostic to whether it runs inside a transaction:
//
//	type ExecQuerier interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	}
//
// # Usage
//
// Opening a database connection with the database/sql based driver:
//
//	import (
//	    "github.com/tuskdb/tusk/dialect"
//	    "github.com/tuskdb/tusk/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// Wrapping a driver with debug logging:
//
//	drv = dialect.Debug(drv, slog.Default())
package dialect
