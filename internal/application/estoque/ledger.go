package estoque

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
	"github.com/Antonio-JDev/sistema-S3E-connect/pkg/logger"
)

// Ledger é o único escritor de saldos. Toda mutação recebe o repositório já
// atado à transação do chamador; o escopo de tx/lock é parâmetro explícito,
// nunca estado ambiente.
type Ledger struct {
	log *logger.Logger
}

// NewLedger constrói o ledger.
func NewLedger(log *logger.Logger) *Ledger {
	return &Ledger{log: log}
}

// PreLock bloqueia as linhas de estoque dos itens em ordem crescente de id
// (SELECT FOR UPDATE), para que documentos com conjuntos de itens sobrepostos
// não se travem mutuamente. Devolve os saldos encontrados; itens ainda sem
// linha de estoque ficam fora do mapa.
func (l *Ledger) PreLock(repo repository.EstoqueRepository, itemIDs []int64) (map[int64]*entity.Estoque, error) {
	distintos := make([]int64, 0, len(itemIDs))
	visto := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		if !visto[id] {
			visto[id] = true
			distintos = append(distintos, id)
		}
	}
	sort.Slice(distintos, func(i, j int) bool { return distintos[i] < distintos[j] })

	saldos := make(map[int64]*entity.Estoque, len(distintos))
	for _, id := range distintos {
		est, err := repo.GetByItemIDForUpdate(id)
		if err != nil {
			return nil, err
		}
		if est != nil {
			saldos[id] = est
		}
	}
	return saldos, nil
}

// AplicarDelta soma signedQuantity ao saldo do item e devolve o novo saldo.
// Sem linha de estoque: delta positivo cria a linha com saldo = delta; delta
// negativo é erro de sequência do chamador (a checagem de disponibilidade
// deveria ter barrado antes) e falha com ErrInvariantViolation. Não há piso
// em zero aqui: underflow é impedido a montante, não neste componente.
func (l *Ledger) AplicarDelta(repo repository.EstoqueRepository, itemID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	est, err := repo.GetByItemIDForUpdate(itemID)
	if err != nil {
		return decimal.Zero, err
	}
	if est == nil {
		if delta.IsNegative() {
			l.log.Error().Int64("item_id", itemID).Str("delta", delta.String()).
				Msg("delta negativo contra item sem linha de estoque")
			return decimal.Zero, fmt.Errorf("aplicar delta no item %d: %w", itemID, domain.ErrInvariantViolation)
		}
		novo := &entity.Estoque{ItemID: itemID, Local: entity.LocalPadrao, SaldoBase: delta}
		if err := repo.Create(novo); err != nil {
			return decimal.Zero, err
		}
		return delta, nil
	}
	novoSaldo := est.SaldoBase.Add(delta)
	if err := repo.UpdateSaldo(itemID, novoSaldo); err != nil {
		return decimal.Zero, err
	}
	return novoSaldo, nil
}

// ReverterEntrada subtrai a quantidade de uma linha de entrada excluída, com
// piso em zero. O piso é política deliberada de recuperação com perda: dados
// históricos podem ter drenado o saldo por outras vias e a exclusão da compra
// não deve deixá-lo negativo. O resto descartado sai no log em WARN para não
// se confundir com violação de invariante.
func (l *Ledger) ReverterEntrada(repo repository.EstoqueRepository, itemID int64, quantidade decimal.Decimal) (decimal.Decimal, error) {
	est, err := repo.GetByItemIDForUpdate(itemID)
	if err != nil {
		return decimal.Zero, err
	}
	if est == nil {
		l.log.Warn().Int64("item_id", itemID).
			Msg("reversão de entrada sem linha de estoque; nada a reverter")
		return decimal.Zero, nil
	}
	novoSaldo := est.SaldoBase.Sub(quantidade)
	if novoSaldo.IsNegative() {
		l.log.Warn().
			Int64("item_id", itemID).
			Str("saldo_anterior", est.SaldoBase.String()).
			Str("quantidade", quantidade.String()).
			Str("resto_descartado", novoSaldo.Neg().String()).
			Msg("reversão de entrada com piso em zero")
		novoSaldo = decimal.Zero
	}
	if err := repo.UpdateSaldo(itemID, novoSaldo); err != nil {
		return decimal.Zero, err
	}
	return novoSaldo, nil
}
