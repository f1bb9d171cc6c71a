package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaidaItemRequest linha de uma saída (mesma convenção de quantidade da entrada).
type SaidaItemRequest struct {
	ItemID         int64           `json:"item_id"`
	QuantidadeBase decimal.Decimal `json:"quantidade_base"`
	Quantidade     decimal.Decimal `json:"quantidade"`
	UnidadeID      *int64          `json:"unidade_id"`
}

// CriarSaidaRequest corpo de criação de saída.
type CriarSaidaRequest struct {
	ObraID *int64             `json:"obra_id"`
	Itens  []SaidaItemRequest `json:"itens"`
}

// AtualizarSaidaRequest atualização de cabeçalho.
type AtualizarSaidaRequest struct {
	ObraID *int64 `json:"obra_id"`
}

// ListarSaidasRequest filtros de listagem.
type ListarSaidasRequest struct {
	PageRequest
	ObraID     *int64 `query:"obra_id"`
	DataInicio string `query:"data_inicio"`
	DataFim    string `query:"data_fim"`
}

// SaidaItemResponse linha de saída para exibição.
type SaidaItemResponse struct {
	ID                  int64           `json:"id"`
	ItemID              int64           `json:"item_id"`
	ItemCodigo          string          `json:"item_codigo,omitempty"`
	ItemDescricao       string          `json:"item_descricao,omitempty"`
	QuantidadeBase      decimal.Decimal `json:"quantidade_base"`
	ValorUnitReferencia decimal.Decimal `json:"valor_unit_referencia"`
	UnidadeSigla        string          `json:"unidade_sigla,omitempty"`
}

// SaidaResponse saída completa para exibição.
type SaidaResponse struct {
	ID       int64               `json:"id"`
	Data     time.Time           `json:"data"`
	ObraID   *int64              `json:"obra_id"`
	ObraNome string              `json:"obra_nome,omitempty"`
	Itens    []SaidaItemResponse `json:"itens"`
}

// ListaSaidasResponse página de saídas.
type ListaSaidasResponse struct {
	Saidas     []SaidaResponse `json:"saidas"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
}
