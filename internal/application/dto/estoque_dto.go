package dto

import "github.com/shopspring/decimal"

// EstoqueResponse saldo de um item para exibição.
type EstoqueResponse struct {
	ItemID        int64           `json:"item_id"`
	ItemCodigo    string          `json:"item_codigo,omitempty"`
	ItemDescricao string          `json:"item_descricao,omitempty"`
	Local         string          `json:"local"`
	SaldoBase     decimal.Decimal `json:"saldo_base"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo"`
	UnidadeSigla  string          `json:"unidade_sigla,omitempty"`
}

// ListarEstoquesRequest filtros de consulta de saldos.
type ListarEstoquesRequest struct {
	PageRequest
	AbaixoMinimo bool `query:"abaixo_minimo"`
}
