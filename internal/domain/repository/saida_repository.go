package repository

import (
	"time"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
)

// SaidaFiltro filtros de listagem de saídas.
type SaidaFiltro struct {
	ObraID     *int64
	DataInicio *time.Time
	DataFim    *time.Time
	Limit      int
	Offset     int
}

// SaidaRepository define o porto de persistência de saídas e seus itens.
type SaidaRepository interface {
	CreateHeader(saida *entity.Saida) error
	CreateItem(item *entity.SaidaItem) error
	GetByID(id int64) (*entity.Saida, error)
	List(filtro SaidaFiltro) ([]*entity.Saida, int, error)
	UpdateHeader(saida *entity.Saida) error
	DeleteItens(saidaID int64) error
	DeleteHeader(id int64) error
}
