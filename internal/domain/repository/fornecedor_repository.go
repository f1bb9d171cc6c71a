package repository

import "github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"

// FornecedorRepository define o porto de persistência de fornecedores.
type FornecedorRepository interface {
	Create(fornecedor *entity.Fornecedor) error
	GetByID(id int64) (*entity.Fornecedor, error)
	List(busca string, limit, offset int) ([]*entity.Fornecedor, int, error)
	Update(fornecedor *entity.Fornecedor) error
}
