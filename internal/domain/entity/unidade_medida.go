package entity

import "github.com/shopspring/decimal"

// UnidadeMedida é dado de referência imutável: sigla única e fator de
// conversão para a unidade base (ex.: rolo de 100m -> fator_base 100).
type UnidadeMedida struct {
	ID        int64
	Sigla     string
	Descricao string
	FatorBase decimal.Decimal
}

// ParaBase converte uma quantidade informada nesta unidade para a unidade base.
func (u UnidadeMedida) ParaBase(quantidade decimal.Decimal) decimal.Decimal {
	return quantidade.Mul(u.FatorBase)
}
