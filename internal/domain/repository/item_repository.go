package repository

import "github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"

// ItemFiltro filtros de catálogo; Busca é comparada contra codigo e
// descricao_norm (sem acentos).
type ItemFiltro struct {
	Busca       string
	CategoriaID *int64
	Ativo       *bool
	Limit       int
	Offset      int
}

// ItemRepository define o porto de persistência do catálogo de itens.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id int64) (*entity.Item, error)
	GetByCodigo(codigo string) (*entity.Item, error)
	List(filtro ItemFiltro) ([]*entity.Item, int, error)
	Update(item *entity.Item) error
}
