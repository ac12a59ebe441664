package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxIface es lo que el repo necesita del pool; pgxmock lo implementa en los tests.
type PgxIface interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	Close()
}

// NewPool abre el pool y hace ping antes de devolverlo.
func NewPool(ctx context.Context, url string, maxConns int32) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	if maxConns > 0 {
		config.MaxConns = maxConns
	}
	config.MaxConnIdleTime = 3 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("could not ping postgres: %w", err)
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS employees (
    id UUID PRIMARY KEY,
    nome TEXT NOT NULL,
    data_nascimento TEXT NOT NULL,
    cpf TEXT NOT NULL DEFAULT '',
    rg TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    data_contratacao TEXT NOT NULL DEFAULT '',
    sexo TEXT NOT NULL DEFAULT '',
    cargo TEXT NOT NULL DEFAULT '',
    departamento TEXT NOT NULL DEFAULT '',
    ativo BOOLEAN NOT NULL DEFAULT TRUE
)`

// InitSchema crea la tabla employees si no existe
func InitSchema(ctx context.Context, conn PgxIface) error {
	_, err := conn.Exec(ctx, schema)
	return err
}
