package db

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.sqlite3") + "?_foreign_keys=on"
	store, err := Open(context.Background(), DriverSQLite, dsn, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, Bootstrap(context.Background(), store))
	return store
}

func TestMigrations_DirectoryPerDriver(t *testing.T) {
	for _, driver := range []string{DriverSQLite, DriverPostgres} {
		entries, err := fs.ReadDir(migrationsFS, path.Join("migrations", driver))
		require.NoError(t, err, driver)
		assert.NotEmpty(t, entries, driver)
	}
}

func TestRebind(t *testing.T) {
	query := `SELECT * FROM favourites WHERE user_id = $1 AND coin_id = $2 OR id = $10`

	assert.Equal(t, `SELECT * FROM favourites WHERE user_id = ?1 AND coin_id = ?2 OR id = ?10`, rebind(DriverSQLite, query))
	assert.Equal(t, query, rebind(DriverPostgres, query))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever", 0)
	assert.Error(t, err)
}

func TestBootstrap_SeedsOnce(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// второй запуск не должен дублировать данные
	require.NoError(t, Bootstrap(ctx, store))

	type coin struct {
		ID     int64  `db:"id"`
		Symbol string `db:"symbol"`
		Name   string `db:"name"`
	}
	coins, err := QueryAll[coin](ctx, store, `SELECT id, symbol, name FROM coins ORDER BY id`)
	require.NoError(t, err)
	require.Len(t, coins, 3)
	assert.Equal(t, "btc", coins[0].Symbol)
	assert.Equal(t, "Ethereum", coins[1].Name)
	assert.Equal(t, "sol", coins[2].Symbol)

	users, err := QueryOne[countRow](ctx, store, `SELECT COUNT(*) AS c FROM users`)
	require.NoError(t, err)
	assert.EqualValues(t, 1, users.C)

	migrations, err := QueryOne[countRow](ctx, store, `SELECT COUNT(*) AS c FROM schema_migrations`)
	require.NoError(t, err)
	assert.EqualValues(t, 1, migrations.C)
}

func TestQueryOne_Absent(t *testing.T) {
	store := openTestStore(t)

	type row struct {
		ID int64 `db:"id"`
	}
	got, err := QueryOne[row](context.Background(), store, `SELECT id FROM coins WHERE symbol = $1`, "doge")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestExecute_ReturnsAffectedRows(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	n, err := store.Execute(ctx, `INSERT INTO favourites (user_id, coin_id) VALUES ($1, $2)`, 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = store.Execute(ctx, `DELETE FROM favourites WHERE user_id = $1`, 42)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = store.Execute(ctx, `DELETE FROM favourites WHERE user_id = $1`, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestQueryAll_EmptyResultIsNotNil(t *testing.T) {
	store := openTestStore(t)

	type row struct {
		ID int64 `db:"id"`
	}
	rows, err := QueryAll[row](context.Background(), store, `SELECT id FROM favourites WHERE user_id = $1`, 7)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExecute_InvalidStatement(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Execute(context.Background(), `UPDATE missing_table SET x = $1`, 1)
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	store := openTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
