package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier é o subconjunto comum de pgxpool.Pool e pgx.Tx usado pelos
// repositórios. O mesmo adaptador serve consultas fora de transação (pool) e
// dentro dela (tx); o escopo transacional é decidido por quem constrói.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
