package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
)

var _ repository.FornecedorRepository = (*FornecedorRepo)(nil)

// FornecedorRepo implementação de FornecedorRepository sobre PostgreSQL.
type FornecedorRepo struct {
	q Querier
}

func NewFornecedorRepository(q Querier) *FornecedorRepo {
	return &FornecedorRepo{q: q}
}

func (r *FornecedorRepo) Create(f *entity.Fornecedor) error {
	query := `
		INSERT INTO fornecedores (razao_social, cnpj, contato, telefone, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		f.RazaoSocial, nullIfEmpty(f.CNPJ), nullIfEmpty(f.Contato),
		nullIfEmpty(f.Telefone), nullIfEmpty(f.Email),
	).Scan(&f.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("CNPJ %q já cadastrado: %w", f.CNPJ, err)
		}
		return fmt.Errorf("insert fornecedor: %w", err)
	}
	return nil
}

func (r *FornecedorRepo) GetByID(id int64) (*entity.Fornecedor, error) {
	query := `
		SELECT id, razao_social, cnpj, contato, telefone, email
		FROM fornecedores WHERE id = $1`
	var f entity.Fornecedor
	var cnpj, contato, telefone, email *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.RazaoSocial, &cnpj, &contato, &telefone, &email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fornecedor: %w", err)
	}
	f.CNPJ = derefStr(cnpj)
	f.Contato = derefStr(contato)
	f.Telefone = derefStr(telefone)
	f.Email = derefStr(email)
	return &f, nil
}

func (r *FornecedorRepo) List(busca string, limit, offset int) ([]*entity.Fornecedor, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if busca != "" {
		where += fmt.Sprintf(" AND (lower(razao_social) LIKE $%d OR cnpj LIKE $%d)", pos, pos)
		args = append(args, "%"+strings.ToLower(busca)+"%")
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), "SELECT count(*) FROM fornecedores"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count fornecedores: %w", err)
	}

	query := `SELECT id, razao_social, cnpj, contato, telefone, email FROM fornecedores` + where +
		fmt.Sprintf(" ORDER BY razao_social LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list fornecedores: %w", err)
	}
	defer rows.Close()

	var list []*entity.Fornecedor
	for rows.Next() {
		var f entity.Fornecedor
		var cnpj, contato, telefone, email *string
		if err := rows.Scan(&f.ID, &f.RazaoSocial, &cnpj, &contato, &telefone, &email); err != nil {
			return nil, 0, fmt.Errorf("scan fornecedor: %w", err)
		}
		f.CNPJ = derefStr(cnpj)
		f.Contato = derefStr(contato)
		f.Telefone = derefStr(telefone)
		f.Email = derefStr(email)
		list = append(list, &f)
	}
	return list, total, rows.Err()
}

func (r *FornecedorRepo) Update(f *entity.Fornecedor) error {
	query := `
		UPDATE fornecedores
		SET razao_social = $2, cnpj = $3, contato = $4, telefone = $5, email = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		f.ID, f.RazaoSocial, nullIfEmpty(f.CNPJ), nullIfEmpty(f.Contato),
		nullIfEmpty(f.Telefone), nullIfEmpty(f.Email),
	)
	if err != nil {
		return fmt.Errorf("update fornecedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update fornecedor: id %d não encontrado", f.ID)
	}
	return nil
}
