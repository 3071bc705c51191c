package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed migrations
var migrationsFS embed.FS

type seedCoin struct {
	Symbol string
	Name   string
}

var defaultCoins = []seedCoin{
	{Symbol: "btc", Name: "Bitcoin"},
	{Symbol: "eth", Name: "Ethereum"},
	{Symbol: "sol", Name: "Solana"},
}

// Bootstrap применяет миграции и заполняет справочники. Безопасно вызывать при каждом старте.
func Bootstrap(ctx context.Context, s *Store) error {
	if err := RunMigrations(ctx, s); err != nil {
		return err
	}
	return Seed(ctx, s)
}

// RunMigrations выполняет встроенные SQL файлы для текущего драйвера.
func RunMigrations(ctx context.Context, s *Store) error {
	// Создаём таблицу для отслеживания выполненных миграций
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("db: не удалось инициализировать таблицу миграций: %w", err)
	}

	dir := path.Join("migrations", s.driver)
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("db: не удалось прочитать каталог миграций %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		name := entry.Name()
		applied, err := isMigrationApplied(ctx, s, name)
		if err != nil {
			return fmt.Errorf("db: не удалось проверить статус миграции %s: %w", name, err)
		}
		if applied {
			continue
		}

		if err := applyMigration(ctx, s, path.Join(dir, name), name); err != nil {
			return err
		}
	}

	return nil
}

func isMigrationApplied(ctx context.Context, s *Store, name string) (bool, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, s.Rebind(`SELECT COUNT(*) FROM schema_migrations WHERE name = $1`), name); err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyMigration(ctx context.Context, s *Store, file, name string) error {
	body, err := migrationsFS.ReadFile(file)
	if err != nil {
		return fmt.Errorf("db: не удалось прочитать миграцию %s: %w", file, err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db: не удалось начать транзакцию для миграции %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		return fmt.Errorf("db: не удалось выполнить миграцию %s: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, s.Rebind(`INSERT INTO schema_migrations (name) VALUES ($1)`), name); err != nil {
		return fmt.Errorf("db: не удалось отметить миграцию %s как выполненную: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("db: не удалось зафиксировать транзакцию для миграции %s: %w", name, err)
	}
	return nil
}

type countRow struct {
	C int64 `db:"c"`
}

// Seed добавляет тестового пользователя и базовые монеты, если таблицы пусты.
func Seed(ctx context.Context, s *Store) error {
	users, err := QueryOne[countRow](ctx, s, `SELECT COUNT(*) AS c FROM users`)
	if err != nil {
		return fmt.Errorf("db: seed users: %w", err)
	}
	if users.C == 0 {
		if _, err := s.Execute(ctx, `INSERT INTO users (username, email) VALUES ($1, $2)`, "testuser", "test@example.com"); err != nil {
			return fmt.Errorf("db: seed users: %w", err)
		}
	}

	coins, err := QueryOne[countRow](ctx, s, `SELECT COUNT(*) AS c FROM coins`)
	if err != nil {
		return fmt.Errorf("db: seed coins: %w", err)
	}
	if coins.C == 0 {
		for _, coin := range defaultCoins {
			if _, err := s.Execute(ctx, `INSERT INTO coins (symbol, name) VALUES ($1, $2)`, coin.Symbol, coin.Name); err != nil {
				return fmt.Errorf("db: seed coin %s: %w", coin.Symbol, err)
			}
		}
	}

	return nil
}
