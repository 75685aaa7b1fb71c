package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Database owns the single SQLite connection shared by every repository.
// All access is synchronous; SetMaxOpenConns(1) keeps the single-writer
// invariant even when callers arrive from multiple goroutines.
type Database struct {
	path string
	conn *sqlx.DB
}

// New opens the store at the given path and creates the schema.
func New(path string) (*Database, error) {
	d := &Database{path: path}
	if err := d.Open(); err != nil {
		return nil, err
	}
	if err := d.InitSchema(); err != nil {
		d.Close()
		return nil, err
	}
	log.Info().Str("path", path).Msg("database initialized")
	return d, nil
}

// Open connects to the store. It is idempotent: calling it on an already
// open database returns immediately. Foreign-key enforcement is switched
// on as a side effect.
func (d *Database) Open() error {
	if d.conn != nil {
		return nil
	}
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", d.path)
	conn, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return storageErr("open", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return storageErr("open", err)
	}
	d.conn = conn
	return nil
}

// Close releases the connection. Subsequent statements fail with ErrClosed.
func (d *Database) Close() error {
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

// Path returns the filesystem location of the store.
func (d *Database) Path() string {
	return d.path
}

// Ping verifies the connection is alive.
func (d *Database) Ping() error {
	if d.conn == nil {
		return storageErr("ping", ErrClosed)
	}
	return d.conn.Ping()
}

// InitSchema creates the six tables and their indexes if absent.
func (d *Database) InitSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := d.Exec("init schema", stmt); err != nil {
			return err
		}
	}
	return nil
}

// Exec runs a statement and returns the number of affected rows. The op
// name identifies the attempted operation in the raised StorageError.
func (d *Database) Exec(op, query string, args ...any) (int64, error) {
	if d.conn == nil {
		return 0, storageErr(op, ErrClosed)
	}
	res, err := d.conn.Exec(query, args...)
	if err != nil {
		return 0, storageErr(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr(op, err)
	}
	return affected, nil
}

// ExecReturningID runs an INSERT and returns the id of the new row.
func (d *Database) ExecReturningID(op, query string, args ...any) (int64, error) {
	if d.conn == nil {
		return 0, storageErr(op, ErrClosed)
	}
	res, err := d.conn.Exec(query, args...)
	if err != nil {
		return 0, storageErr(op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr(op, err)
	}
	return id, nil
}

// Select runs a query and scans every row into dest, which must be a
// pointer to a slice of structs with db tags. Typed decoding happens here,
// at the query boundary; malformed rows surface as StorageError.
func (d *Database) Select(op string, dest any, query string, args ...any) error {
	if d.conn == nil {
		return storageErr(op, ErrClosed)
	}
	if err := d.conn.Select(dest, query, args...); err != nil {
		return storageErr(op, err)
	}
	return nil
}

// Get runs a query expected to return one row and scans it into dest.
// An absent row is reported as ErrNotFound (unwrapped, so callers can
// translate it into a nil result).
func (d *Database) Get(op string, dest any, query string, args ...any) error {
	if d.conn == nil {
		return storageErr(op, ErrClosed)
	}
	err := d.conn.Get(dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return storageErr(op, err)
	}
	return nil
}

// ScalarInt64 runs a query returning a single integer value, typically a
// COUNT or MAX aggregate.
func (d *Database) ScalarInt64(op, query string, args ...any) (int64, error) {
	var v sql.NullInt64
	if err := d.Get(op, &v, query, args...); err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return v.Int64, nil
}
