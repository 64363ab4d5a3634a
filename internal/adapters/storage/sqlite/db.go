package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"pet-registry/internal/domain/errs"
)

//go:embed schema.sql
var schemaSQL string

// pragmas por conexión (foreign_keys es por conexión en SQLite)
const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// LOWER de SQLite solo pliega ASCII; unicode_lower pliega como strings.ToLower.
func init() {
	msqlite.MustRegisterDeterministicScalarFunction("unicode_lower", 1, unicodeLower)
}

func unicodeLower(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// querier lo cumplen *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type DB struct {
	db *sql.DB
}

// Open abre (o crea) la base en path y aplica el schema.
func Open(ctx context.Context, path string) (*DB, error) {
	return open(ctx, "file:"+path+"?"+pragmas)
}

// OpenMemory abre una base en memoria aislada (nombre único por llamada).
func OpenMemory(ctx context.Context) (*DB, error) {
	return open(ctx, "file:"+uuid.NewString()+"?mode=memory&cache=shared&"+pragmas)
}

func open(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// un solo escritor; además mantiene viva la base en memoria
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

type txKey struct{}

// WithinTx abre una transacción y la deja en el ctx para los repos.
// Si ya hay una en el ctx, fn corre dentro de esa.
func (d *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.Storage("begin tx", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errs.Storage("commit tx", err)
	}
	return nil
}

func (d *DB) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return d.db
}

func isUniqueViolation(err error) bool {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		strings.Contains(se.Error(), "UNIQUE constraint failed")
}
