package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
)

var _ repository.ObraRepository = (*ObraRepo)(nil)

// ObraRepo implementação de ObraRepository sobre PostgreSQL.
type ObraRepo struct {
	q Querier
}

func NewObraRepository(q Querier) *ObraRepo {
	return &ObraRepo{q: q}
}

func (r *ObraRepo) Create(o *entity.Obra) error {
	query := `
		INSERT INTO obras (codigo, nome, cliente, responsavel, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		o.Codigo, o.Nome, nullIfEmpty(o.Cliente), nullIfEmpty(o.Responsavel), o.Status,
	).Scan(&o.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("código de obra %q já cadastrado: %w", o.Codigo, err)
		}
		return fmt.Errorf("insert obra: %w", err)
	}
	return nil
}

func (r *ObraRepo) GetByID(id int64) (*entity.Obra, error) {
	query := `SELECT id, codigo, nome, cliente, responsavel, status FROM obras WHERE id = $1`
	var o entity.Obra
	var cliente, responsavel *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Codigo, &o.Nome, &cliente, &responsavel, &o.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get obra: %w", err)
	}
	o.Cliente = derefStr(cliente)
	o.Responsavel = derefStr(responsavel)
	return &o, nil
}

func (r *ObraRepo) List(status string, limit, offset int) ([]*entity.Obra, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), "SELECT count(*) FROM obras"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count obras: %w", err)
	}

	query := `SELECT id, codigo, nome, cliente, responsavel, status FROM obras` + where +
		fmt.Sprintf(" ORDER BY codigo LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list obras: %w", err)
	}
	defer rows.Close()

	var list []*entity.Obra
	for rows.Next() {
		var o entity.Obra
		var cliente, responsavel *string
		if err := rows.Scan(&o.ID, &o.Codigo, &o.Nome, &cliente, &responsavel, &o.Status); err != nil {
			return nil, 0, fmt.Errorf("scan obra: %w", err)
		}
		o.Cliente = derefStr(cliente)
		o.Responsavel = derefStr(responsavel)
		list = append(list, &o)
	}
	return list, total, rows.Err()
}

func (r *ObraRepo) Update(o *entity.Obra) error {
	query := `
		UPDATE obras
		SET nome = $2, cliente = $3, responsavel = $4, status = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		o.ID, o.Nome, nullIfEmpty(o.Cliente), nullIfEmpty(o.Responsavel), o.Status,
	)
	if err != nil {
		return fmt.Errorf("update obra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update obra: id %d não encontrada", o.ID)
	}
	return nil
}
