package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"
)

// SQLite implements Backend on a single table of documents.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, goerr.Wrap(err, "create database directory", goerr.V("path", dbPath))
	}

	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "open database", goerr.V("path", dbPath))
	}
	// one writer keeps SQLITE_BUSY away
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, goerr.Wrap(err, "ping database", goerr.V("path", dbPath))
	}

	s := &SQLite{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLite) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS session_documents (
		storage_key TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err := s.db.Exec(query); err != nil {
		return goerr.Wrap(err, "create schema")
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM session_documents WHERE storage_key = ?`, key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, goerr.Wrap(err, "select document", goerr.V("key", key))
	}
	return []byte(doc), true, nil
}

func (s *SQLite) Put(ctx context.Context, key string, doc []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_documents (storage_key, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(storage_key) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at`,
		key, string(doc), time.Now().Unix())
	if err != nil {
		return goerr.Wrap(err, "upsert document", goerr.V("key", key))
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_documents WHERE storage_key = ?`, key); err != nil {
		return goerr.Wrap(err, "delete document", goerr.V("key", key))
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
