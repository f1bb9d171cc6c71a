package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
)

var _ repository.UnidadeMedidaRepository = (*UnidadeRepo)(nil)

// UnidadeRepo leitura do cadastro de unidades de medida (dado de referência).
type UnidadeRepo struct {
	q Querier
}

func NewUnidadeRepository(q Querier) *UnidadeRepo {
	return &UnidadeRepo{q: q}
}

func (r *UnidadeRepo) GetByID(id int64) (*entity.UnidadeMedida, error) {
	return r.getBy("id", id)
}

func (r *UnidadeRepo) GetBySigla(sigla string) (*entity.UnidadeMedida, error) {
	return r.getBy("sigla", sigla)
}

func (r *UnidadeRepo) getBy(column string, value any) (*entity.UnidadeMedida, error) {
	query := fmt.Sprintf("SELECT id, sigla, descricao, fator_base FROM unidades_medida WHERE %s = $1", column)
	var u entity.UnidadeMedida
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&u.ID, &u.Sigla, &u.Descricao, &u.FatorBase,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unidade: %w", err)
	}
	return &u, nil
}

func (r *UnidadeRepo) List() ([]*entity.UnidadeMedida, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, sigla, descricao, fator_base FROM unidades_medida ORDER BY sigla`)
	if err != nil {
		return nil, fmt.Errorf("list unidades: %w", err)
	}
	defer rows.Close()

	var list []*entity.UnidadeMedida
	for rows.Next() {
		var u entity.UnidadeMedida
		if err := rows.Scan(&u.ID, &u.Sigla, &u.Descricao, &u.FatorBase); err != nil {
			return nil, fmt.Errorf("scan unidade: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
