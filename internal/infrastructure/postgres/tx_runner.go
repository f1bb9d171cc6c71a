package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/estoque"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
)

var _ estoque.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL, entregando
// repositórios atados à tx. Erro do callback ou do Commit devolve tudo ao
// estado anterior (rollback no defer).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre a transação, executa fn e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	entradaRepo repository.EntradaRepository,
	saidaRepo repository.SaidaRepository,
	estoqueRepo repository.EstoqueRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entradaRepo := NewEntradaRepository(tx)
	saidaRepo := NewSaidaRepository(tx)
	estoqueRepo := NewEstoqueRepository(tx)

	if err := fn(entradaRepo, saidaRepo, estoqueRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
