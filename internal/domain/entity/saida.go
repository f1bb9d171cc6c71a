package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Saida é o documento de consumo: materiais entregues a uma obra.
type Saida struct {
	ID        int64
	Data      time.Time
	ObraID    *int64
	CriadoPor *int64
	Itens     []*SaidaItem

	Obra *Obra
}

// SaidaItem é uma linha da saída. ValorUnitReferencia é uma fotografia do
// último preço de compra no momento da criação, não um join vivo.
type SaidaItem struct {
	ID                  int64
	SaidaID             int64
	ItemID              int64
	QuantidadeBase      decimal.Decimal
	ValorUnitReferencia decimal.Decimal
	UnidadeID           *int64

	Item    *Item
	Unidade *UnidadeMedida
}
