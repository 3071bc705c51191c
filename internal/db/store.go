package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

// Store выполняет по одному SQL выражению на соединение.
// Запросы пишутся с плейсхолдерами в стиле Postgres ($1, $2, ...).
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open открывает хранилище для указанного драйвера.
// maxIdle=0 означает, что соединение закрывается сразу после каждого вызова.
func Open(ctx context.Context, driver, dsn string, maxIdle int) (*Store, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("db: неподдерживаемый драйвер %q", driver)
	}

	conn, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db: не удалось подключиться (%s): %w", driver, err)
	}

	if maxIdle < 0 {
		maxIdle = 0
	}
	conn.SetMaxIdleConns(maxIdle)
	conn.SetConnMaxLifetime(5 * time.Minute)

	return &Store{db: conn, driver: driver}, nil
}

func (s *Store) Driver() string {
	return s.driver
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Rebind переводит $N плейсхолдеры в нативный синтаксис драйвера.
func (s *Store) Rebind(query string) string {
	return rebind(s.driver, query)
}

func rebind(driver, query string) string {
	if driver == DriverSQLite {
		return placeholderRe.ReplaceAllString(query, "?${1}")
	}
	return query
}

// withConn берёт отдельное соединение и всегда его освобождает.
func (s *Store) withConn(ctx context.Context, fn func(conn *sqlx.Conn) error) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("db: не удалось получить соединение: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// Execute выполняет изменяющее выражение и возвращает число затронутых строк.
func (s *Store) Execute(ctx context.Context, query string, args ...any) (int64, error) {
	var affected int64
	err := s.withConn(ctx, func(conn *sqlx.Conn) error {
		res, err := conn.ExecContext(ctx, s.Rebind(query), args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("db: execute: %w", err)
	}
	return affected, nil
}

// QueryAll возвращает все строки результата, отсканированные в T по db тегам.
func QueryAll[T any](ctx context.Context, s *Store, query string, args ...any) ([]T, error) {
	rows := make([]T, 0)
	err := s.withConn(ctx, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &rows, s.Rebind(query), args...)
	})
	if err != nil {
		return nil, fmt.Errorf("db: query all: %w", err)
	}
	return rows, nil
}

// QueryOne возвращает первую строку или nil, если строк нет.
func QueryOne[T any](ctx context.Context, s *Store, query string, args ...any) (*T, error) {
	var row T
	err := s.withConn(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &row, s.Rebind(query), args...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db: query one: %w", err)
	}
	return &row, nil
}
