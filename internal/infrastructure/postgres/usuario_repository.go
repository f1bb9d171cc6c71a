package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementação de UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (nome, email, senha_hash, perfil, ativo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, criado_em`
	err := r.q.QueryRow(context.Background(), query,
		u.Nome, u.Email, u.SenhaHash, u.Perfil, u.Ativo,
	).Scan(&u.ID, &u.CriadoEm)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

func (r *UsuarioRepo) GetByID(id int64) (*entity.Usuario, error) {
	return r.getBy("id", id)
}

func (r *UsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	return r.getBy("email", email)
}

func (r *UsuarioRepo) getBy(column string, value any) (*entity.Usuario, error) {
	query := fmt.Sprintf(
		"SELECT id, nome, email, senha_hash, perfil, ativo, criado_em FROM usuarios WHERE %s = $1",
		column,
	)
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&u.ID, &u.Nome, &u.Email, &u.SenhaHash, &u.Perfil, &u.Ativo, &u.CriadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}
