package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entrada é o documento de compra (nota fiscal de entrada) com seus itens.
type Entrada struct {
	ID           int64
	Data         time.Time
	FornecedorID *int64
	NFNumero     string
	NFChave      string
	CriadoPor    *int64
	Itens        []*EntradaItem

	// Preenchidos em leituras (join), nunca persistidos por aqui.
	Fornecedor *Fornecedor
}

// EntradaItem é uma linha da entrada. ValorUnitUltimaCompra é derivado
// (valor_total / quantidade_base) no momento da criação da linha e fica
// gravado como registro histórico consultado pela valoração das saídas.
type EntradaItem struct {
	ID                    int64
	EntradaID             int64
	ItemID                int64
	QuantidadeBase        decimal.Decimal
	ValorTotal            decimal.Decimal
	ValorUnitUltimaCompra decimal.Decimal
	UnidadeID             *int64

	Item    *Item
	Unidade *UnidadeMedida
}
