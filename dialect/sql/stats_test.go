package sql

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuskdb/tusk/dialect"
)

func TestStatsDriverCounters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 2))

	sd := NewStatsDriver(OpenDB(dialect.Postgres, db))
	var rows Rows
	require.NoError(t, sd.Query(context.Background(), "SELECT 1", []any{}, &rows))
	rows.Close()
	require.NoError(t, sd.Exec(context.Background(), "UPDATE users", []any{}, nil))

	snap := sd.QueryStats().Stats()
	assert.Equal(t, int64(1), snap.TotalQueries)
	assert.Equal(t, int64(1), snap.TotalExecs)
	assert.Equal(t, int64(0), snap.Errors)
	assert.Greater(t, snap.TotalDuration, time.Duration(0))
	assert.Greater(t, snap.AvgQueryDuration(), time.Duration(0))

	sd.QueryStats().Reset()
	assert.Equal(t, int64(0), sd.QueryStats().Stats().TotalQueries)
}

func TestStatsDriverSlowHook(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery("SELECT pg_sleep").
		WillDelayFor(5 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"pg_sleep"}).AddRow(""))

	var (
		hooked    bool
		hookQuery string
	)
	sd := NewStatsDriver(OpenDB(dialect.Postgres, db),
		WithSlowThreshold(time.Nanosecond),
		WithSlowQueryHook(func(_ context.Context, query string, _ []any, d time.Duration) {
			hooked = true
			hookQuery = query
		}),
	)
	var rows Rows
	require.NoError(t, sd.Query(context.Background(), "SELECT pg_sleep(1)", []any{}, &rows))
	rows.Close()

	assert.True(t, hooked)
	assert.Equal(t, "SELECT pg_sleep(1)", hookQuery)
	assert.Equal(t, int64(1), sd.QueryStats().Stats().SlowQueries)
}

func TestStatsDriverErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectExec("DROP TABLE").WillReturnError(assert.AnError)

	sd := NewStatsDriver(OpenDB(dialect.MySQL, db))
	err = sd.Exec(context.Background(), "DROP TABLE users", []any{}, nil)
	assert.Error(t, err)
	assert.Equal(t, int64(1), sd.QueryStats().Stats().Errors)
}

func TestStatsDriverThreshold(t *testing.T) {
	t.Parallel()

	sd := NewStatsDriver(&Driver{})
	assert.Equal(t, 100*time.Millisecond, sd.SlowThreshold())
	sd.SetSlowThreshold(time.Second)
	assert.Equal(t, time.Second, sd.SlowThreshold())
}

func TestStatsSnapshotString(t *testing.T) {
	t.Parallel()

	snap := StatsSnapshot{TotalQueries: 2, TotalExecs: 2, TotalDuration: 4 * time.Second, SlowQueries: 1}
	assert.Equal(t, time.Second, snap.AvgQueryDuration())
	assert.Contains(t, snap.String(), "queries=2")
	assert.Contains(t, snap.String(), "slow=1")
}
