package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
)

// EstoqueRepository define o porto de persistência do saldo por item.
// Get/GetForUpdate devolvem nil (sem erro) quando o item ainda não tem linha
// de estoque; a criação preguiçosa é responsabilidade do ledger.
type EstoqueRepository interface {
	GetByItemID(itemID int64) (*entity.Estoque, error)
	// GetByItemIDForUpdate bloqueia a linha (SELECT FOR UPDATE) dentro da tx corrente.
	GetByItemIDForUpdate(itemID int64) (*entity.Estoque, error)
	Create(estoque *entity.Estoque) error
	UpdateSaldo(itemID int64, saldoBase decimal.Decimal) error
	List(limit, offset int) ([]*entity.Estoque, error)
	// ListAbaixoMinimo lista saldos abaixo do estoque mínimo do item.
	ListAbaixoMinimo(limit, offset int) ([]*entity.Estoque, error)
}
