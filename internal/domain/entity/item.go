package entity

import "github.com/shopspring/decimal"

// Item representa um material do catálogo (SKU do almoxarifado).
// Saldos são mantidos em Estoque, sempre na unidade base do item.
type Item struct {
	ID                    int64
	Codigo                string // único
	Descricao             string
	DescricaoNorm         string // descrição sem acentos, para busca
	CategoriaID           *int64
	UnidadeBaseID         int64
	EstoqueMinimo         decimal.Decimal
	ComprimentoPorUnidade *decimal.Decimal // ex.: metros por rolo de cabo
	Ativo                 bool
}

// Categoria agrupa itens do catálogo (dado de referência).
type Categoria struct {
	ID   int64
	Nome string
}
