package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/example/wordquiz/internal/apperr"
)

//go:embed migrations
var migrationsFS embed.FS

// Store owns the database handle shared by every component.
type Store struct {
	db *sqlx.DB
}

// Open connects to the database and applies pending migrations.
// Supported drivers are "sqlite3" and "postgres".
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if driver == "sqlite3" {
		var err error
		if dsn, err = prepareSQLite(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite3" {
		db.SetMaxOpenConns(1) // SQLite doesn't support multiple writers
		db.SetMaxIdleConns(1)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// prepareSQLite creates the parent directory of a file database and turns
// foreign keys on for every connection.
func prepareSQLite(dsn string) (string, error) {
	path := dsn
	if i := strings.IndexRune(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimPrefix(path, "file:")
	if path != "" && !strings.Contains(path, ":memory:") && !strings.Contains(dsn, "mode=memory") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return "", fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on", nil
}

func (s *Store) migrate(ctx context.Context) error {
	dir, dialect := "migrations/sqlite3", goose.DialectSQLite3
	if s.db.DriverName() == "postgres" {
		dir, dialect = "migrations/postgres", goose.DialectPostgres
	}

	fsys, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}
	provider, err := goose.NewProvider(dialect, s.db.DB, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the handle for repositories that run outside a transaction.
func (s *Store) DB() *sqlx.DB { return s.db }

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return apperr.Storage("database unreachable", err)
	}
	return nil
}

// WithTx runs fn in a transaction. fn's error rolls the transaction back and
// is returned unchanged; begin and commit failures surface as storage errors.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Storage("failed to begin transaction", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperr.Storage("failed to commit transaction", err)
	}
	return nil
}

func (s *Store) Words() *WordRepository             { return NewWordRepository(s.db) }
func (s *Store) Mistakes() *MistakeRepository       { return NewMistakeRepository(s.db) }
func (s *Store) TestResults() *TestResultRepository { return NewTestResultRepository(s.db) }
func (s *Store) Reading() *ReadingRepository        { return NewReadingRepository(s.db) }

// builder returns a squirrel builder using the placeholder style of db's driver.
func builder(db sqlx.ExtContext) squirrel.StatementBuilderType {
	if sqlx.BindType(db.DriverName()) == sqlx.DOLLAR {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}
