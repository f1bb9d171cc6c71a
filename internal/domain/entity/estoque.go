package entity

import "github.com/shopspring/decimal"

// LocalPadrao é o único local físico deste desenho (depósito central).
const LocalPadrao = "DEPÓSITO"

// Estoque é o saldo corrente de um item, na unidade base, como decimal de
// ponto fixo. No máximo uma linha por item; criada na primeira entrada.
type Estoque struct {
	ID        int64
	ItemID    int64
	Local     string
	SaldoBase decimal.Decimal

	// Preenchidos em leituras (join).
	Item        *Item
	UnidadeBase *UnidadeMedida
}
