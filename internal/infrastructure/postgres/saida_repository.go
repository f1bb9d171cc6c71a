package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
)

var _ repository.SaidaRepository = (*SaidaRepo)(nil)

// SaidaRepo implementação de SaidaRepository sobre PostgreSQL (usável com
// pool ou tx).
type SaidaRepo struct {
	q Querier
}

// NewSaidaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewSaidaRepository(q Querier) *SaidaRepo {
	return &SaidaRepo{q: q}
}

// CreateHeader insere o cabeçalho e preenche o ID gerado.
func (r *SaidaRepo) CreateHeader(saida *entity.Saida) error {
	query := `
		INSERT INTO saidas (data, obra_id, criado_por)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		saida.Data, saida.ObraID, saida.CriadoPor,
	).Scan(&saida.ID)
	if err != nil {
		return fmt.Errorf("insert saida: %w", err)
	}
	return nil
}

// CreateItem insere uma linha da saída (valor_unit_referencia já fotografado).
func (r *SaidaRepo) CreateItem(item *entity.SaidaItem) error {
	query := `
		INSERT INTO saidas_itens (saida_id, item_id, quantidade_base, valor_unit_referencia, unidade_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.SaidaID, item.ItemID, item.QuantidadeBase, item.ValorUnitReferencia, item.UnidadeID,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert saida item: %w", err)
	}
	return nil
}

// GetByID devolve a saída com obra e itens (nil se não existir).
func (r *SaidaRepo) GetByID(id int64) (*entity.Saida, error) {
	query := `
		SELECT s.id, s.data, s.obra_id, s.criado_por,
		       o.codigo, o.nome
		FROM saidas s
		LEFT JOIN obras o ON o.id = s.obra_id
		WHERE s.id = $1`
	var s entity.Saida
	var obraCodigo, obraNome *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Data, &s.ObraID, &s.CriadoPor, &obraCodigo, &obraNome,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get saida: %w", err)
	}
	if s.ObraID != nil && obraNome != nil {
		s.Obra = &entity.Obra{ID: *s.ObraID, Codigo: derefStr(obraCodigo), Nome: *obraNome}
	}
	if s.Itens, err = r.itensDaSaida(id); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaidaRepo) itensDaSaida(saidaID int64) ([]*entity.SaidaItem, error) {
	query := `
		SELECT si.id, si.saida_id, si.item_id, si.quantidade_base,
		       si.valor_unit_referencia, si.unidade_id,
		       i.codigo, i.descricao,
		       u.sigla
		FROM saidas_itens si
		JOIN itens i ON i.id = si.item_id
		LEFT JOIN unidades_medida u ON u.id = si.unidade_id
		WHERE si.saida_id = $1
		ORDER BY si.id`
	rows, err := r.q.Query(context.Background(), query, saidaID)
	if err != nil {
		return nil, fmt.Errorf("itens da saida: %w", err)
	}
	defer rows.Close()

	var itens []*entity.SaidaItem
	for rows.Next() {
		it := entity.SaidaItem{Item: &entity.Item{}}
		var sigla *string
		if err := rows.Scan(
			&it.ID, &it.SaidaID, &it.ItemID, &it.QuantidadeBase,
			&it.ValorUnitReferencia, &it.UnidadeID,
			&it.Item.Codigo, &it.Item.Descricao,
			&sigla,
		); err != nil {
			return nil, fmt.Errorf("scan saida item: %w", err)
		}
		it.Item.ID = it.ItemID
		if it.UnidadeID != nil && sigla != nil {
			it.Unidade = &entity.UnidadeMedida{ID: *it.UnidadeID, Sigla: *sigla}
		}
		itens = append(itens, &it)
	}
	return itens, rows.Err()
}

// List lista saídas (com itens) por obra e período, mais recentes primeiro.
func (r *SaidaRepo) List(filtro repository.SaidaFiltro) ([]*entity.Saida, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if filtro.ObraID != nil {
		where += fmt.Sprintf(" AND s.obra_id = $%d", pos)
		args = append(args, *filtro.ObraID)
		pos++
	}
	if filtro.DataInicio != nil {
		where += fmt.Sprintf(" AND s.data >= $%d", pos)
		args = append(args, *filtro.DataInicio)
		pos++
	}
	if filtro.DataFim != nil {
		where += fmt.Sprintf(" AND s.data <= $%d", pos)
		args = append(args, *filtro.DataFim)
		pos++
	}

	var total int
	countQuery := "SELECT count(*) FROM saidas s" + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count saidas: %w", err)
	}

	query := `
		SELECT s.id, s.data, s.obra_id, s.criado_por,
		       o.codigo, o.nome
		FROM saidas s
		LEFT JOIN obras o ON o.id = s.obra_id` + where +
		fmt.Sprintf(" ORDER BY s.data DESC, s.id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filtro.Limit, filtro.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list saidas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Saida
	for rows.Next() {
		var s entity.Saida
		var obraCodigo, obraNome *string
		if err := rows.Scan(&s.ID, &s.Data, &s.ObraID, &s.CriadoPor, &obraCodigo, &obraNome); err != nil {
			return nil, 0, fmt.Errorf("scan saida: %w", err)
		}
		if s.ObraID != nil && obraNome != nil {
			s.Obra = &entity.Obra{ID: *s.ObraID, Codigo: derefStr(obraCodigo), Nome: *obraNome}
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, s := range list {
		if s.Itens, err = r.itensDaSaida(s.ID); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}

// UpdateHeader atualiza a obra de destino.
func (r *SaidaRepo) UpdateHeader(saida *entity.Saida) error {
	_, err := r.q.Exec(context.Background(), `UPDATE saidas SET obra_id = $2 WHERE id = $1`, saida.ID, saida.ObraID)
	if err != nil {
		return fmt.Errorf("update saida: %w", err)
	}
	return nil
}

// DeleteItens remove todas as linhas da saída.
func (r *SaidaRepo) DeleteItens(saidaID int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM saidas_itens WHERE saida_id = $1`, saidaID)
	if err != nil {
		return fmt.Errorf("delete saida itens: %w", err)
	}
	return nil
}

// DeleteHeader remove o cabeçalho.
func (r *SaidaRepo) DeleteHeader(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM saidas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete saida: %w", err)
	}
	return nil
}
