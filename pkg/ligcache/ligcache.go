// Package ligcache keeps downloaded ligand files in an SQLite
// database, so we only go to the server once per ligand code.
// It satisfies resource.Cache.
package ligcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Memory is the path for a database that lives only as long as the
// Cache.
const Memory = ":memory:"

// Cache is the ligand table.
type Cache struct {
	db *sql.DB
}

// Entry is one stored ligand.
type Entry struct {
	Code      string
	URL       string
	Payload   []byte
	FetchedAt time.Time
}

// New opens or creates the database at path.
func New(path string) (*Cache, error) {
	dsn := path
	if path != Memory {
		dsn = "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open ligand cache: %w", err)
	}
	if path == Memory { // every new connection would be a new, empty database
		db.SetMaxOpenConns(1)
	}
	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate ligand cache: %w", err)
	}
	return c, nil
}

func (c *Cache) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ligands (
		code TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		payload BLOB NOT NULL,
		fetched_at INTEGER NOT NULL
	);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Close closes the database.
func (c *Cache) Close() error { return c.db.Close() }

// Get returns the stored file for code. ok is false if we do not have
// it.
func (c *Cache) Get(ctx context.Context, code string) (data []byte, ok bool, err error) {
	err = c.db.QueryRowContext(ctx,
		`SELECT payload FROM ligands WHERE code = ?`, code).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read ligand %s: %w", code, err)
	}
	return data, true, nil
}

// Put stores data for code, replacing anything that was there.
func (c *Cache) Put(ctx context.Context, code, url string, data []byte) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO ligands (code, url, payload, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			url = excluded.url,
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`, code, url, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store ligand %s: %w", code, err)
	}
	return nil
}

// Lookup is Get with the bookkeeping columns.
func (c *Cache) Lookup(ctx context.Context, code string) (*Entry, error) {
	var (
		e  Entry
		ts int64
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT code, url, payload, fetched_at FROM ligands WHERE code = ?`, code).
		Scan(&e.Code, &e.URL, &e.Payload, &ts)
	if err != nil {
		return nil, fmt.Errorf("failed to look up ligand %s: %w", code, err)
	}
	e.FetchedAt = time.Unix(ts, 0)
	return &e, nil
}

// Codes lists what we have, sorted.
func (c *Cache) Codes(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT code FROM ligands ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ligands: %w", err)
	}
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan ligand: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ligands: %w", err)
	}
	return codes, nil
}
