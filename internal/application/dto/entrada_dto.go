package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntradaItemRequest linha de uma entrada. Informar quantidade_base direto,
// ou quantidade + unidade_id para conversão pelo fator da unidade.
type EntradaItemRequest struct {
	ItemID         int64           `json:"item_id"`
	QuantidadeBase decimal.Decimal `json:"quantidade_base"`
	Quantidade     decimal.Decimal `json:"quantidade"`
	ValorTotal     decimal.Decimal `json:"valor_total"`
	UnidadeID      *int64          `json:"unidade_id"`
}

// CriarEntradaRequest corpo de criação de entrada.
type CriarEntradaRequest struct {
	FornecedorID *int64               `json:"fornecedor_id"`
	NFNumero     string               `json:"nf_numero"`
	NFChave      string               `json:"nf_chave"`
	Itens        []EntradaItemRequest `json:"itens"`
}

// AtualizarEntradaRequest atualização de cabeçalho (itens não são editáveis;
// excluir e recriar a entrada para corrigir linhas).
type AtualizarEntradaRequest struct {
	FornecedorID *int64 `json:"fornecedor_id"`
	NFNumero     string `json:"nf_numero"`
	NFChave      string `json:"nf_chave"`
}

// ListarEntradasRequest filtros de listagem.
type ListarEntradasRequest struct {
	PageRequest
	FornecedorID *int64 `query:"fornecedor_id"`
	DataInicio   string `query:"data_inicio"` // YYYY-MM-DD
	DataFim      string `query:"data_fim"`
}

// EntradaItemResponse linha de entrada para exibição.
type EntradaItemResponse struct {
	ID                    int64           `json:"id"`
	ItemID                int64           `json:"item_id"`
	ItemCodigo            string          `json:"item_codigo,omitempty"`
	ItemDescricao         string          `json:"item_descricao,omitempty"`
	QuantidadeBase        decimal.Decimal `json:"quantidade_base"`
	ValorTotal            decimal.Decimal `json:"valor_total"`
	ValorUnitUltimaCompra decimal.Decimal `json:"valor_unit_ultima_compra"`
	UnidadeSigla          string          `json:"unidade_sigla,omitempty"`
}

// EntradaResponse entrada completa para exibição.
type EntradaResponse struct {
	ID             int64                 `json:"id"`
	Data           time.Time             `json:"data"`
	FornecedorID   *int64                `json:"fornecedor_id"`
	FornecedorNome string                `json:"fornecedor_nome,omitempty"`
	NFNumero       string                `json:"nf_numero,omitempty"`
	NFChave        string                `json:"nf_chave,omitempty"`
	Itens          []EntradaItemResponse `json:"itens"`
}

// ListaEntradasResponse página de entradas.
type ListaEntradasResponse struct {
	Entradas   []EntradaResponse `json:"entradas"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}
