package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
)

// EntradaFiltro filtros de listagem de entradas.
type EntradaFiltro struct {
	FornecedorID *int64
	DataInicio   *time.Time
	DataFim      *time.Time
	Limit        int
	Offset       int
}

// EntradaRepository define o porto de persistência de entradas e seus itens.
// Create* são chamados dentro da transação do processador de documentos.
type EntradaRepository interface {
	CreateHeader(entrada *entity.Entrada) error
	CreateItem(item *entity.EntradaItem) error
	// GetByID devolve a entrada com itens, item de catálogo e unidade (nil se não existir).
	GetByID(id int64) (*entity.Entrada, error)
	List(filtro EntradaFiltro) ([]*entity.Entrada, int, error)
	UpdateHeader(entrada *entity.Entrada) error
	DeleteItens(entradaID int64) error
	DeleteHeader(id int64) error
	// UltimoPrecoCompra devolve o valor_unit_ultima_compra da linha de entrada
	// mais recente com data <= corte para o item; empate de data decide pelo
	// maior id de entrada. Zero quando não há histórico.
	UltimoPrecoCompra(itemID int64, corte time.Time) (decimal.Decimal, error)
}
