package database

import (
	"context"
	"flag"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/testing/leaktest"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/testing/pgtest"
)

var testDB *pgtest.Container

func TestMain(m *testing.M) {
	flag.Parse()
	testDB = pgtest.Start(context.Background())
	code := m.Run()
	testDB.Terminate()
	os.Exit(code)
}

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://%zz", 5, time.Minute, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestMigrate_CreatesSchemaAndIsIdempotent(t *testing.T) {
	testDB.Require(t)
	ctx := context.Background()

	pool, err := NewPool(ctx, testDB.ConnString, 5, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, Reset(ctx, pool))
	require.NoError(t, Migrate(ctx, pool))

	for _, table := range []string{
		"user_progression", "daily_activity", "award_ledger", "multiplier_boosts",
		"global_xp_events", "duels", "duel_stats", "event_log",
	} {
		var exists bool
		err := pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", "public."+table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}
}

func TestPool_ConnectionsReleasedAfterErrors(t *testing.T) {
	testDB.Require(t)
	ctx := context.Background()

	pool, err := NewPool(ctx, testDB.ConnString, 3, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	for i := 0; i < 5; i++ {
		_, err := pool.Exec(ctx, "SELECT * FROM nonexistent_table_xyz")
		assert.Error(t, err)
	}
	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
}

func TestPool_ConcurrentAccess(t *testing.T) {
	testDB.Require(t)

	pool, err := NewPool(context.Background(), testDB.ConnString, 10, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	checker := leaktest.NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			var result int
			if err := pool.QueryRow(context.Background(), "SELECT $1::int", id).Scan(&result); err != nil {
				t.Errorf("worker %d query failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
	checker.Check(2)
}
