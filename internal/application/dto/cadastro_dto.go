package dto

import "github.com/shopspring/decimal"

// CriarItemRequest cadastro de item do catálogo.
type CriarItemRequest struct {
	Codigo                string           `json:"codigo"`
	Descricao             string           `json:"descricao"`
	CategoriaID           *int64           `json:"categoria_id"`
	UnidadeBaseID         int64            `json:"unidade_base_id"`
	EstoqueMinimo         decimal.Decimal  `json:"estoque_minimo"`
	ComprimentoPorUnidade *decimal.Decimal `json:"comprimento_por_unidade"`
}

// AtualizarItemRequest atualização de item (código e unidade base são imutáveis;
// trocar a unidade base reinterpretaria o saldo acumulado).
type AtualizarItemRequest struct {
	Descricao             string           `json:"descricao"`
	CategoriaID           *int64           `json:"categoria_id"`
	EstoqueMinimo         decimal.Decimal  `json:"estoque_minimo"`
	ComprimentoPorUnidade *decimal.Decimal `json:"comprimento_por_unidade"`
	Ativo                 *bool            `json:"ativo"`
}

// ListarItensRequest filtros do catálogo.
type ListarItensRequest struct {
	PageRequest
	Busca       string `query:"busca"`
	CategoriaID *int64 `query:"categoria_id"`
	Ativo       *bool  `query:"ativo"`
}

// ItemResponse item do catálogo para exibição.
type ItemResponse struct {
	ID                    int64            `json:"id"`
	Codigo                string           `json:"codigo"`
	Descricao             string           `json:"descricao"`
	CategoriaID           *int64           `json:"categoria_id"`
	UnidadeBaseID         int64            `json:"unidade_base_id"`
	EstoqueMinimo         decimal.Decimal  `json:"estoque_minimo"`
	ComprimentoPorUnidade *decimal.Decimal `json:"comprimento_por_unidade,omitempty"`
	Ativo                 bool             `json:"ativo"`
}

// ListaItensResponse página do catálogo.
type ListaItensResponse struct {
	Itens      []ItemResponse `json:"itens"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
}

// FornecedorRequest criação/atualização de fornecedor.
type FornecedorRequest struct {
	RazaoSocial string `json:"razao_social"`
	CNPJ        string `json:"cnpj"`
	Contato     string `json:"contato"`
	Telefone    string `json:"telefone"`
	Email       string `json:"email"`
}

// ObraRequest criação/atualização de obra.
type ObraRequest struct {
	Codigo      string `json:"codigo"`
	Nome        string `json:"nome"`
	Cliente     string `json:"cliente"`
	Responsavel string `json:"responsavel"`
	Status      string `json:"status"`
}

// UnidadeMedidaResponse unidade de medida para exibição.
type UnidadeMedidaResponse struct {
	ID        int64           `json:"id"`
	Sigla     string          `json:"sigla"`
	Descricao string          `json:"descricao"`
	FatorBase decimal.Decimal `json:"fator_base"`
}
