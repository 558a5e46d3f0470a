package tusk

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tuskdb/tusk/dialect"
)

// TxState is the lifecycle state of a transaction.
type TxState uint8

const (
	// TxActive accepts statements and a single Commit or Rollback.
	TxActive TxState = iota
	// TxCommitted is terminal.
	TxCommitted
	// TxRolledBack is terminal.
	TxRolledBack
)

var txStateNames = [...]string{
	TxActive:     "active",
	TxCommitted:  "committed",
	TxRolledBack: "rolled back",
}

// String returns the state name.
func (s TxState) String() string { return txStateNames[s] }

// Tx scopes a sequence of statements to one atomic unit. It owns its
// underlying connection exclusively for its lifetime and is destroyed
// by Commit or Rollback, never reused.
//
// A Tx implements Conn, so every executor operation runs through it
// unchanged. It belongs to the goroutine that opened it; the mutex
// below only keeps the state transition itself consistent, it does not
// serialize concurrent statements.
type Tx struct {
	tx      dialect.Tx
	dialect string

	mu    sync.Mutex
	state TxState
}

// BeginTx opens a transaction on the driver.
func BeginTx(ctx context.Context, drv dialect.Driver) (*Tx, error) {
	tx, err := drv.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("tusk: starting transaction: %w", err)
	}
	return &Tx{tx: tx, dialect: drv.Dialect()}, nil
}

// State returns the transaction's lifecycle state.
func (t *Tx) State() TxState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Dialect returns the dialect of the underlying driver.
func (t *Tx) Dialect() string { return t.dialect }

// Exec runs a statement inside the transaction.
func (t *Tx) Exec(ctx context.Context, query string, args, v any) error {
	if t.State() != TxActive {
		return ErrTxDone
	}
	return t.tx.Exec(ctx, query, args, v)
}

// Query runs a query inside the transaction.
func (t *Tx) Query(ctx context.Context, query string, args, v any) error {
	if t.State() != TxActive {
		return ErrTxDone
	}
	return t.tx.Query(ctx, query, args, v)
}

// Tx rejects nested transactions. Savepoints are not modeled; a
// transaction opened inside a transaction is a caller error, reported
// loudly instead of silently flattened.
func (t *Tx) Tx(context.Context) (dialect.Tx, error) {
	return nil, ErrTxStarted
}

// Commit makes the transaction's writes visible and ends it.
func (t *Tx) Commit() error {
	if err := t.transition(TxCommitted); err != nil {
		return err
	}
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("tusk: commit: %w", err)
	}
	return nil
}

// Rollback discards the transaction's writes and ends it.
func (t *Tx) Rollback() error {
	if err := t.transition(TxRolledBack); err != nil {
		return err
	}
	if err := t.tx.Rollback(); err != nil {
		return &RollbackError{Err: err}
	}
	return nil
}

func (t *Tx) transition(to TxState) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != TxActive {
		return ErrTxDone
	}
	t.state = to
	return nil
}

// WithTx runs fn inside a transaction. It commits when fn returns nil
// and the transaction is still active; it rolls back when fn fails or
// panics, then re-raises the original failure. Either way the
// connection is never left mid-transaction.
//
// A rollback that itself fails is joined to the original error, so
// neither failure is lost.
func WithTx(ctx context.Context, drv dialect.Driver, fn func(*Tx) error) (err error) {
	tx, err := BeginTx(ctx, drv)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx.State() == TxActive {
				_ = tx.Rollback()
			}
			panic(r)
		}
	}()
	if err := fn(tx); err != nil {
		if tx.State() == TxActive {
			if rerr := tx.Rollback(); rerr != nil {
				return errors.Join(err, rerr)
			}
		}
		return err
	}
	if tx.State() != TxActive {
		// fn decided explicitly; nothing left to do.
		return nil
	}
	return tx.Commit()
}
