// Package tusk maps typed records to relational rows: it builds
// parameterized SQL from record descriptors, computes minimal updates
// by diffing record snapshots, executes statements through a pluggable
// driver, and materializes returned rows back into typed records.
//
// # Building
//
// A query is declared once against a record descriptor and accumulates
// clauses; every builder call returns a new node, so partial queries
// can be shared and extended independently:
//
//	user := schema.MustDescriptor("User",
//	    schema.Field{Name: "id", Type: schema.TypeInt, Key: true},
//	    schema.Field{Name: "name", Type: schema.TypeString},
//	    schema.Field{Name: "email", Type: schema.TypeString},
//	    schema.Field{Name: "active", Type: schema.TypeBool},
//	)
//
//	q := tusk.Select(user).
//	    Where(sql.EQ("active", true)).
//	    OrderBy("name").
//	    Limit(10)
//
// Unknown columns and impossible clause combinations are caught while
// building, with no connection involved.
//
// # Executing
//
// The executor is stateless; it takes the connection with every call
// and runs identically on a driver or inside a transaction:
//
//	users, err := tusk.All(ctx, drv, q)
//	n, err := tusk.Count(ctx, drv, q)
//	user, err := tusk.One(ctx, drv, q.WhereField("id", 1))
//
// # Diffing
//
// Updates can be derived from two snapshots of the same row instead of
// explicit assignments:
//
//	cs, err := tusk.Diff(user, before, after)
//	if !cs.Empty() {
//	    _, err = tusk.Exec(ctx, drv, tusk.UpdateFrom(user, cs))
//	}
//
// # Transactions
//
// WithTx scopes executor calls to one atomic unit, committing on
// success and rolling back on error or panic:
//
//	err := tusk.WithTx(ctx, drv, func(tx *tusk.Tx) error {
//	    if _, err := tusk.Exec(ctx, tx, ins1); err != nil {
//	        return err
//	    }
//	    _, err := tusk.Exec(ctx, tx, ins2)
//	    return err
//	})
package tusk
