package dialect

import (
	"context"
	"log/slog"
	"time"
)

// Dialect names. The dialect decides identifier quoting and the
// placeholder style used when a statement is rendered.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// ExecQuerier is the minimal connection contract the executor needs:
// run a parameterized statement and hand back either an execution
// result or rows. It is implemented by both Driver and Tx, so code
// that takes an ExecQuerier runs unchanged inside or outside of a
// transaction.
type ExecQuerier interface {
	// Exec executes a statement that does not return rows. args is
	// expected to be a []any. v, if non-nil, receives the driver
	// result (e.g. *sql.Result).
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a statement that returns rows. v receives the
	// row iterator (e.g. *sql.Rows).
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the database abstraction the execution layer runs on.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	Tx(ctx context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx is a transaction scope over a Driver's connection.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}

// DebugDriver is a driver that logs all driver operations.
type DebugDriver struct {
	Driver
	log *slog.Logger
}

// Debug wraps the driver with a logging layer. If logger is nil the
// default slog logger is used.
func Debug(d Driver, logger *slog.Logger) *DebugDriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &DebugDriver{Driver: d, log: logger}
}

// Exec logs its params and calls the underlying driver.
func (d *DebugDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.log.LogAttrs(ctx, slog.LevelDebug, "driver.Exec",
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
	)
	return err
}

// Query logs its params and calls the underlying driver.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.log.LogAttrs(ctx, slog.LevelDebug, "driver.Query",
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
	)
	return err
}

// Tx starts a transaction and returns a logging wrapper around it.
func (d *DebugDriver) Tx(ctx context.Context) (Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	d.log.LogAttrs(ctx, slog.LevelDebug, "driver.Tx started")
	return &DebugTx{Tx: tx, log: d.log, ctx: ctx}, nil
}

// DebugTx is a transaction that logs all transaction operations.
type DebugTx struct {
	Tx
	log *slog.Logger
	ctx context.Context
}

// Exec logs its params and calls the underlying transaction.
func (d *DebugTx) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Tx.Exec(ctx, query, args, v)
	d.log.LogAttrs(ctx, slog.LevelDebug, "tx.Exec",
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
	)
	return err
}

// Query logs its params and calls the underlying transaction.
func (d *DebugTx) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Tx.Query(ctx, query, args, v)
	d.log.LogAttrs(ctx, slog.LevelDebug, "tx.Query",
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
	)
	return err
}

// Commit logs the commit and calls the underlying transaction.
func (d *DebugTx) Commit() error {
	d.log.LogAttrs(d.ctx, slog.LevelDebug, "tx.Commit")
	return d.Tx.Commit()
}

// Rollback logs the rollback and calls the underlying transaction.
func (d *DebugTx) Rollback() error {
	d.log.LogAttrs(d.ctx, slog.LevelDebug, "tx.Rollback")
	return d.Tx.Rollback()
}
