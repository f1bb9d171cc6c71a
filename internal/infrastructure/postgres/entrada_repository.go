package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
)

var _ repository.EntradaRepository = (*EntradaRepo)(nil)

// EntradaRepo implementação de EntradaRepository sobre PostgreSQL (usável com
// pool ou tx).
type EntradaRepo struct {
	q Querier
}

// NewEntradaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEntradaRepository(q Querier) *EntradaRepo {
	return &EntradaRepo{q: q}
}

// CreateHeader insere o cabeçalho e preenche o ID gerado.
func (r *EntradaRepo) CreateHeader(entrada *entity.Entrada) error {
	query := `
		INSERT INTO entradas (data, fornecedor_id, nf_numero, nf_chave, criado_por)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		entrada.Data, entrada.FornecedorID, nullIfEmpty(entrada.NFNumero),
		nullIfEmpty(entrada.NFChave), entrada.CriadoPor,
	).Scan(&entrada.ID)
	if err != nil {
		return fmt.Errorf("insert entrada: %w", err)
	}
	return nil
}

// CreateItem insere uma linha da entrada (valor_unit_ultima_compra já derivado).
func (r *EntradaRepo) CreateItem(item *entity.EntradaItem) error {
	query := `
		INSERT INTO entradas_itens (entrada_id, item_id, quantidade_base, valor_total, valor_unit_ultima_compra, unidade_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.EntradaID, item.ItemID, item.QuantidadeBase, item.ValorTotal,
		item.ValorUnitUltimaCompra, item.UnidadeID,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert entrada item: %w", err)
	}
	return nil
}

// GetByID devolve a entrada com fornecedor e itens (nil se não existir).
func (r *EntradaRepo) GetByID(id int64) (*entity.Entrada, error) {
	query := `
		SELECT e.id, e.data, e.fornecedor_id, e.nf_numero, e.nf_chave, e.criado_por,
		       f.razao_social
		FROM entradas e
		LEFT JOIN fornecedores f ON f.id = e.fornecedor_id
		WHERE e.id = $1`
	var e entity.Entrada
	var nfNumero, nfChave, razaoSocial *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.Data, &e.FornecedorID, &nfNumero, &nfChave, &e.CriadoPor, &razaoSocial,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entrada: %w", err)
	}
	e.NFNumero = derefStr(nfNumero)
	e.NFChave = derefStr(nfChave)
	if razaoSocial != nil && e.FornecedorID != nil {
		e.Fornecedor = &entity.Fornecedor{ID: *e.FornecedorID, RazaoSocial: *razaoSocial}
	}
	if e.Itens, err = r.itensDaEntrada(id); err != nil {
		return nil, err
	}
	return &e, nil
}

// itensDaEntrada carrega as linhas com item de catálogo e unidade.
func (r *EntradaRepo) itensDaEntrada(entradaID int64) ([]*entity.EntradaItem, error) {
	query := `
		SELECT ei.id, ei.entrada_id, ei.item_id, ei.quantidade_base, ei.valor_total,
		       ei.valor_unit_ultima_compra, ei.unidade_id,
		       i.codigo, i.descricao,
		       u.sigla, u.fator_base
		FROM entradas_itens ei
		JOIN itens i ON i.id = ei.item_id
		LEFT JOIN unidades_medida u ON u.id = ei.unidade_id
		WHERE ei.entrada_id = $1
		ORDER BY ei.id`
	rows, err := r.q.Query(context.Background(), query, entradaID)
	if err != nil {
		return nil, fmt.Errorf("itens da entrada: %w", err)
	}
	defer rows.Close()

	var itens []*entity.EntradaItem
	for rows.Next() {
		it := entity.EntradaItem{Item: &entity.Item{}}
		var sigla *string
		var fator *decimal.Decimal
		if err := rows.Scan(
			&it.ID, &it.EntradaID, &it.ItemID, &it.QuantidadeBase, &it.ValorTotal,
			&it.ValorUnitUltimaCompra, &it.UnidadeID,
			&it.Item.Codigo, &it.Item.Descricao,
			&sigla, &fator,
		); err != nil {
			return nil, fmt.Errorf("scan entrada item: %w", err)
		}
		it.Item.ID = it.ItemID
		if it.UnidadeID != nil && sigla != nil {
			it.Unidade = &entity.UnidadeMedida{ID: *it.UnidadeID, Sigla: *sigla}
			if fator != nil {
				it.Unidade.FatorBase = *fator
			}
		}
		itens = append(itens, &it)
	}
	return itens, rows.Err()
}

// List lista entradas (com itens) por fornecedor e período, mais recentes primeiro.
func (r *EntradaRepo) List(filtro repository.EntradaFiltro) ([]*entity.Entrada, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if filtro.FornecedorID != nil {
		where += fmt.Sprintf(" AND e.fornecedor_id = $%d", pos)
		args = append(args, *filtro.FornecedorID)
		pos++
	}
	if filtro.DataInicio != nil {
		where += fmt.Sprintf(" AND e.data >= $%d", pos)
		args = append(args, *filtro.DataInicio)
		pos++
	}
	if filtro.DataFim != nil {
		where += fmt.Sprintf(" AND e.data <= $%d", pos)
		args = append(args, *filtro.DataFim)
		pos++
	}

	var total int
	countQuery := "SELECT count(*) FROM entradas e" + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count entradas: %w", err)
	}

	query := `
		SELECT e.id, e.data, e.fornecedor_id, e.nf_numero, e.nf_chave, e.criado_por,
		       f.razao_social
		FROM entradas e
		LEFT JOIN fornecedores f ON f.id = e.fornecedor_id` + where +
		fmt.Sprintf(" ORDER BY e.data DESC, e.id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filtro.Limit, filtro.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list entradas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Entrada
	for rows.Next() {
		var e entity.Entrada
		var nfNumero, nfChave, razaoSocial *string
		if err := rows.Scan(&e.ID, &e.Data, &e.FornecedorID, &nfNumero, &nfChave, &e.CriadoPor, &razaoSocial); err != nil {
			return nil, 0, fmt.Errorf("scan entrada: %w", err)
		}
		e.NFNumero = derefStr(nfNumero)
		e.NFChave = derefStr(nfChave)
		if razaoSocial != nil && e.FornecedorID != nil {
			e.Fornecedor = &entity.Fornecedor{ID: *e.FornecedorID, RazaoSocial: *razaoSocial}
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, e := range list {
		if e.Itens, err = r.itensDaEntrada(e.ID); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}

// UpdateHeader atualiza fornecedor e dados da NF.
func (r *EntradaRepo) UpdateHeader(entrada *entity.Entrada) error {
	query := `
		UPDATE entradas
		SET fornecedor_id = $2, nf_numero = $3, nf_chave = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		entrada.ID, entrada.FornecedorID, nullIfEmpty(entrada.NFNumero), nullIfEmpty(entrada.NFChave),
	)
	if err != nil {
		return fmt.Errorf("update entrada: %w", err)
	}
	return nil
}

// DeleteItens remove todas as linhas da entrada.
func (r *EntradaRepo) DeleteItens(entradaID int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM entradas_itens WHERE entrada_id = $1`, entradaID)
	if err != nil {
		return fmt.Errorf("delete entrada itens: %w", err)
	}
	return nil
}

// DeleteHeader remove o cabeçalho.
func (r *EntradaRepo) DeleteHeader(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM entradas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete entrada: %w", err)
	}
	return nil
}

// UltimoPrecoCompra busca a linha de entrada mais recente do item com data da
// entrada <= corte. Empate de data decide pelo maior id de entrada (criada
// por último). Sem histórico devolve zero, não erro: a valoração é
// informativa, não portão de correção da saída.
func (r *EntradaRepo) UltimoPrecoCompra(itemID int64, corte time.Time) (decimal.Decimal, error) {
	query := `
		SELECT ei.valor_unit_ultima_compra
		FROM entradas_itens ei
		JOIN entradas e ON e.id = ei.entrada_id
		WHERE ei.item_id = $1 AND e.data <= $2
		ORDER BY e.data DESC, e.id DESC, ei.id DESC
		LIMIT 1`
	var valor decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, itemID, corte).Scan(&valor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("último preço de compra: %w", err)
	}
	return valor, nil
}
