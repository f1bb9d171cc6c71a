package repository

import "github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"

// UsuarioRepository define o porto de persistência de usuários.
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	GetByID(id int64) (*entity.Usuario, error)
	GetByEmail(email string) (*entity.Usuario, error)
}
