package postgres

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"pet-registry/internal/domain/errs"
)

//go:embed schema.sql
var schemaSQL string

// codigo SQLSTATE de unique_violation
const uniqueViolation = "23505"

// DBTX es lo mínimo que usan los repos. Lo cumplen *pgxpool.Pool, pgx.Tx y pgxmock.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// DB envuelve el pool y resuelve la transacción activa desde el ctx.
type DB struct {
	pool DBTX
}

func NewDB(pool DBTX) *DB {
	return &DB{pool: pool}
}

// Open abre un pool pgx contra Postgres y verifica la conexión.
func Open(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables (ajustable luego)
	cfg.MaxConns = 10
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return NewDB(pool), nil
}

func (db *DB) Close() {
	if c, ok := db.pool.(interface{ Close() }); ok {
		c.Close()
	}
}

// EnsureSchema crea tablas e índices si no existen.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return errs.Storage("ensure schema", err)
	}
	return nil
}

type txKey struct{}

// WithinTx abre una transacción y la deja en el ctx para los repos.
// Si ya hay una en el ctx, fn corre dentro de esa.
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return errs.Storage("begin tx", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Storage("commit tx", err)
	}
	committed = true
	return nil
}

func (db *DB) conn(ctx context.Context) DBTX {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.pool
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
