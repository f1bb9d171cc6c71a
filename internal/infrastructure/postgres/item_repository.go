package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
	"github.com/Antonio-JDev/sistema-S3E-connect/pkg/textutil"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementação de ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository constrói o adaptador.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, codigo, descricao, descricao_norm, categoria_id,
	unidade_base_id, estoque_minimo, comprimento_por_unidade, ativo`

// Create insere o item; descricao_norm é derivada aqui da descrição.
func (r *ItemRepo) Create(item *entity.Item) error {
	item.DescricaoNorm = textutil.Normalizar(item.Descricao)
	query := `
		INSERT INTO itens (codigo, descricao, descricao_norm, categoria_id,
			unidade_base_id, estoque_minimo, comprimento_por_unidade, ativo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.Codigo, item.Descricao, item.DescricaoNorm, item.CategoriaID,
		item.UnidadeBaseID, item.EstoqueMinimo, item.ComprimentoPorUnidade, item.Ativo,
	).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("código %q já cadastrado: %w", item.Codigo, err)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) GetByID(id int64) (*entity.Item, error) {
	return r.getBy("id", id)
}

func (r *ItemRepo) GetByCodigo(codigo string) (*entity.Item, error) {
	return r.getBy("codigo", codigo)
}

func (r *ItemRepo) getBy(column string, value any) (*entity.Item, error) {
	query := fmt.Sprintf("SELECT %s FROM itens WHERE %s = $1", itemColumns, column)
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&it.ID, &it.Codigo, &it.Descricao, &it.DescricaoNorm, &it.CategoriaID,
		&it.UnidadeBaseID, &it.EstoqueMinimo, &it.ComprimentoPorUnidade, &it.Ativo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// List busca por código e descrição normalizada (busca sem acentos).
func (r *ItemRepo) List(filtro repository.ItemFiltro) ([]*entity.Item, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if filtro.Busca != "" {
		padrao := "%" + textutil.Normalizar(filtro.Busca) + "%"
		where += fmt.Sprintf(" AND (descricao_norm LIKE $%d OR lower(codigo) LIKE $%d)", pos, pos)
		args = append(args, padrao)
		pos++
	}
	if filtro.CategoriaID != nil {
		where += fmt.Sprintf(" AND categoria_id = $%d", pos)
		args = append(args, *filtro.CategoriaID)
		pos++
	}
	if filtro.Ativo != nil {
		where += fmt.Sprintf(" AND ativo = $%d", pos)
		args = append(args, *filtro.Ativo)
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), "SELECT count(*) FROM itens"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count itens: %w", err)
	}

	query := "SELECT " + itemColumns + " FROM itens" + where +
		fmt.Sprintf(" ORDER BY descricao LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filtro.Limit, filtro.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list itens: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.ID, &it.Codigo, &it.Descricao, &it.DescricaoNorm, &it.CategoriaID,
			&it.UnidadeBaseID, &it.EstoqueMinimo, &it.ComprimentoPorUnidade, &it.Ativo,
		); err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, total, rows.Err()
}

// Update grava os campos editáveis do item e refaz a descrição normalizada.
func (r *ItemRepo) Update(item *entity.Item) error {
	item.DescricaoNorm = textutil.Normalizar(item.Descricao)
	query := `
		UPDATE itens
		SET descricao = $2, descricao_norm = $3, categoria_id = $4,
		    estoque_minimo = $5, comprimento_por_unidade = $6, ativo = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Descricao, item.DescricaoNorm, item.CategoriaID,
		item.EstoqueMinimo, item.ComprimentoPorUnidade, item.Ativo,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update item: id %d não encontrado", item.ID)
	}
	return nil
}
