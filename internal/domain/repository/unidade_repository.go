package repository

import "github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"

// UnidadeMedidaRepository define o porto de leitura do cadastro de unidades.
type UnidadeMedidaRepository interface {
	GetByID(id int64) (*entity.UnidadeMedida, error)
	GetBySigla(sigla string) (*entity.UnidadeMedida, error)
	List() ([]*entity.UnidadeMedida, error)
}
