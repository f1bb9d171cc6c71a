package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
)

var _ repository.EstoqueRepository = (*EstoqueRepo)(nil)

// EstoqueRepo implementação de EstoqueRepository sobre PostgreSQL (usável com
// pool ou tx).
type EstoqueRepo struct {
	q Querier
}

// NewEstoqueRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEstoqueRepository(q Querier) *EstoqueRepo {
	return &EstoqueRepo{q: q}
}

// GetByItemID devolve o saldo do item, ou nil se o item ainda não tem linha.
func (r *EstoqueRepo) GetByItemID(itemID int64) (*entity.Estoque, error) {
	return r.get(itemID, false)
}

// GetByItemIDForUpdate devolve o saldo bloqueando a linha (SELECT FOR UPDATE).
func (r *EstoqueRepo) GetByItemIDForUpdate(itemID int64) (*entity.Estoque, error) {
	return r.get(itemID, true)
}

func (r *EstoqueRepo) get(itemID int64, forUpdate bool) (*entity.Estoque, error) {
	query := `
		SELECT id, item_id, local, saldo_base
		FROM estoques WHERE item_id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var e entity.Estoque
	err := r.q.QueryRow(context.Background(), query, itemID).Scan(
		&e.ID, &e.ItemID, &e.Local, &e.SaldoBase,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get estoque: %w", err)
	}
	return &e, nil
}

// Create insere a linha de estoque do item (primeira entrada).
func (r *EstoqueRepo) Create(estoque *entity.Estoque) error {
	query := `
		INSERT INTO estoques (item_id, local, saldo_base)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		estoque.ItemID, estoque.Local, estoque.SaldoBase,
	).Scan(&estoque.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("estoque do item %d já existe: %w", estoque.ItemID, err)
		}
		return fmt.Errorf("create estoque: %w", err)
	}
	return nil
}

// UpdateSaldo grava o novo saldo do item.
func (r *EstoqueRepo) UpdateSaldo(itemID int64, saldoBase decimal.Decimal) error {
	query := `UPDATE estoques SET saldo_base = $2 WHERE item_id = $1`
	tag, err := r.q.Exec(context.Background(), query, itemID, saldoBase)
	if err != nil {
		return fmt.Errorf("update saldo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update saldo: item %d sem linha de estoque", itemID)
	}
	return nil
}

const estoqueComItemSelect = `
	SELECT e.id, e.item_id, e.local, e.saldo_base,
	       i.codigo, i.descricao, i.estoque_minimo,
	       u.sigla
	FROM estoques e
	JOIN itens i ON i.id = e.item_id
	JOIN unidades_medida u ON u.id = i.unidade_base_id`

// List lista saldos com dados do item, ordenados por descrição.
func (r *EstoqueRepo) List(limit, offset int) ([]*entity.Estoque, error) {
	query := estoqueComItemSelect + `
	ORDER BY i.descricao
	LIMIT $1 OFFSET $2`
	return r.listComItem(query, limit, offset)
}

// ListAbaixoMinimo lista só os itens ativos com saldo abaixo do mínimo.
func (r *EstoqueRepo) ListAbaixoMinimo(limit, offset int) ([]*entity.Estoque, error) {
	query := estoqueComItemSelect + `
	WHERE i.ativo AND e.saldo_base < i.estoque_minimo
	ORDER BY i.descricao
	LIMIT $1 OFFSET $2`
	return r.listComItem(query, limit, offset)
}

func (r *EstoqueRepo) listComItem(query string, limit, offset int) ([]*entity.Estoque, error) {
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list estoques: %w", err)
	}
	defer rows.Close()

	var list []*entity.Estoque
	for rows.Next() {
		e := entity.Estoque{Item: &entity.Item{}, UnidadeBase: &entity.UnidadeMedida{}}
		if err := rows.Scan(
			&e.ID, &e.ItemID, &e.Local, &e.SaldoBase,
			&e.Item.Codigo, &e.Item.Descricao, &e.Item.EstoqueMinimo,
			&e.UnidadeBase.Sigla,
		); err != nil {
			return nil, fmt.Errorf("scan estoque: %w", err)
		}
		e.Item.ID = e.ItemID
		list = append(list, &e)
	}
	return list, rows.Err()
}
