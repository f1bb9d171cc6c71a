package estoque

import (
	"context"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/dto"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
)

// ConsultaUseCase é o lado de leitura dos saldos: consulta por item e
// listagens, inclusive de itens abaixo do estoque mínimo. Sem requisito
// transacional além da consistência normal de leitura.
type ConsultaUseCase struct {
	estoqueRepo repository.EstoqueRepository
	itemRepo    repository.ItemRepository
}

// NewConsultaUseCase constrói o caso de uso.
func NewConsultaUseCase(estoqueRepo repository.EstoqueRepository, itemRepo repository.ItemRepository) *ConsultaUseCase {
	return &ConsultaUseCase{estoqueRepo: estoqueRepo, itemRepo: itemRepo}
}

// GetSaldo devolve o saldo corrente de um item. Item sem linha de estoque
// (nenhuma entrada ainda) responde saldo zero, não erro.
func (uc *ConsultaUseCase) GetSaldo(_ context.Context, itemID int64) (*dto.EstoqueResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	est, err := uc.estoqueRepo.GetByItemID(itemID)
	if err != nil {
		return nil, err
	}
	resp := &dto.EstoqueResponse{
		ItemID:        itemID,
		ItemCodigo:    item.Codigo,
		ItemDescricao: item.Descricao,
		EstoqueMinimo: item.EstoqueMinimo,
	}
	if est != nil {
		resp.Local = est.Local
		resp.SaldoBase = est.SaldoBase
	}
	return resp, nil
}

// ListSaldos lista saldos; com abaixo_minimo, só os itens em alerta.
func (uc *ConsultaUseCase) ListSaldos(_ context.Context, in dto.ListarEstoquesRequest) ([]dto.EstoqueResponse, error) {
	in.DefaultPage()
	listar := uc.estoqueRepo.List
	if in.AbaixoMinimo {
		listar = uc.estoqueRepo.ListAbaixoMinimo
	}
	rows, err := listar(in.Limit, in.Offset())
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EstoqueResponse, 0, len(rows))
	for _, est := range rows {
		r := dto.EstoqueResponse{
			ItemID:    est.ItemID,
			Local:     est.Local,
			SaldoBase: est.SaldoBase,
		}
		if est.Item != nil {
			r.ItemCodigo = est.Item.Codigo
			r.ItemDescricao = est.Item.Descricao
			r.EstoqueMinimo = est.Item.EstoqueMinimo
		}
		if est.UnidadeBase != nil {
			r.UnidadeSigla = est.UnidadeBase.Sigla
		}
		resp = append(resp, r)
	}
	return resp, nil
}
