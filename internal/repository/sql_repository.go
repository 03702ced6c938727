package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/iconidentify/splitdash/internal/domain"
)

// Dialect identifies the SQL flavour spoken by the underlying driver.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const schema = `
	CREATE TABLE IF NOT EXISTS splits (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		label TEXT NOT NULL,
		url TEXT NOT NULL
	);
`

// SQLSplitRepository implements SplitRepository on top of database/sql.
type SQLSplitRepository struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQLite opens (creating if needed) the SQLite database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLSplitRepository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows a single writer; serialise through one connection.
	db.SetMaxOpenConns(1)

	return NewSQLSplitRepository(ctx, db, DialectSQLite)
}

// OpenPostgres connects to the PostgreSQL database described by dsn.
func OpenPostgres(ctx context.Context, dsn string) (*SQLSplitRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return NewSQLSplitRepository(ctx, db, DialectPostgres)
}

// NewSQLSplitRepository wraps db and makes sure the splits table exists.
func NewSQLSplitRepository(ctx context.Context, db *sql.DB, dialect Dialect) (*SQLSplitRepository, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}
	return &SQLSplitRepository{db: db, dialect: dialect}, nil
}

// Close closes the underlying database.
func (r *SQLSplitRepository) Close() error {
	return r.db.Close()
}

// List returns all splits ordered by label.
func (r *SQLSplitRepository) List(ctx context.Context) ([]domain.Split, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, label, url FROM splits ORDER BY label, id`)
	if err != nil {
		return nil, fmt.Errorf("query splits: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Split, 0)
	for rows.Next() {
		var s domain.Split
		if err := rows.Scan(&s.ID, &s.Name, &s.Label, &s.URL); err != nil {
			return nil, fmt.Errorf("scan split: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate splits: %w", err)
	}
	return result, nil
}

// Get retrieves a split by ID.
func (r *SQLSplitRepository) Get(ctx context.Context, id domain.SplitID) (*domain.Split, error) {
	return r.getOne(ctx, `SELECT id, name, label, url FROM splits WHERE id = ?`, string(id))
}

// GetByName retrieves the split routed under name.
func (r *SQLSplitRepository) GetByName(ctx context.Context, name string) (*domain.Split, error) {
	return r.getOne(ctx, `SELECT id, name, label, url FROM splits WHERE name = ?`, name)
}

func (r *SQLSplitRepository) getOne(ctx context.Context, query string, arg string) (*domain.Split, error) {
	var s domain.Split
	err := r.db.QueryRowContext(ctx, r.rebind(query), arg).Scan(&s.ID, &s.Name, &s.Label, &s.URL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSplitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query split: %w", err)
	}
	return &s, nil
}

// Create stores a new split.
func (r *SQLSplitRepository) Create(ctx context.Context, split *domain.Split) error {
	_, err := r.db.ExecContext(ctx,
		r.rebind(`INSERT INTO splits (id, name, label, url) VALUES (?, ?, ?, ?)`),
		string(split.ID), split.Name, split.Label, split.URL)
	if err != nil {
		if r.isUniqueViolation(err) {
			return domain.ErrDuplicateSplit
		}
		return fmt.Errorf("insert split: %w", err)
	}
	return nil
}

// Update replaces name, label and url of an existing split.
func (r *SQLSplitRepository) Update(ctx context.Context, split *domain.Split) error {
	res, err := r.db.ExecContext(ctx,
		r.rebind(`UPDATE splits SET name = ?, label = ?, url = ? WHERE id = ?`),
		split.Name, split.Label, split.URL, string(split.ID))
	if err != nil {
		if r.isUniqueViolation(err) {
			return domain.ErrDuplicateSplit
		}
		return fmt.Errorf("update split: %w", err)
	}
	return requireRow(res)
}

// Delete removes a split.
func (r *SQLSplitRepository) Delete(ctx context.Context, id domain.SplitID) error {
	res, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM splits WHERE id = ?`), string(id))
	if err != nil {
		return fmt.Errorf("delete split: %w", err)
	}
	return requireRow(res)
}

// Count returns the number of stored splits.
func (r *SQLSplitRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM splits`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count splits: %w", err)
	}
	return n, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrSplitNotFound
	}
	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (r *SQLSplitRepository) rebind(query string) string {
	if r.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (r *SQLSplitRepository) isUniqueViolation(err error) bool {
	switch r.dialect {
	case DialectPostgres:
		var pqErr *pq.Error
		return errors.As(err, &pqErr) && pqErr.Code == "23505"
	default:
		var sqErr *sqlite.Error
		return errors.As(err, &sqErr) && sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
}
