package repository

import "github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"

// ObraRepository define o porto de persistência de obras.
type ObraRepository interface {
	Create(obra *entity.Obra) error
	GetByID(id int64) (*entity.Obra, error)
	List(status string, limit, offset int) ([]*entity.Obra, int, error)
	Update(obra *entity.Obra) error
}
