package estoque

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/dto"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
	"github.com/Antonio-JDev/sistema-S3E-connect/pkg/logger"
)

// SaidaUseCase processa documentos de saída (consumo por obra): checagem de
// disponibilidade de todas as linhas antes de qualquer mutação, baixa de
// saldo por linha e fotografia do último preço de compra como valor de
// referência, tudo em uma única transação.
type SaidaUseCase struct {
	txRunner    TxRunner
	saidaRepo   repository.SaidaRepository
	itemRepo    repository.ItemRepository
	unidadeRepo repository.UnidadeMedidaRepository
	obraRepo    repository.ObraRepository
	ledger      *Ledger
	romaneioPDF RomaneioPDFGenerator
	log         *logger.Logger
}

// NewSaidaUseCase constrói o caso de uso.
func NewSaidaUseCase(
	txRunner TxRunner,
	saidaRepo repository.SaidaRepository,
	itemRepo repository.ItemRepository,
	unidadeRepo repository.UnidadeMedidaRepository,
	obraRepo repository.ObraRepository,
	ledger *Ledger,
	romaneioPDF RomaneioPDFGenerator,
	log *logger.Logger,
) *SaidaUseCase {
	return &SaidaUseCase{
		txRunner:    txRunner,
		saidaRepo:   saidaRepo,
		itemRepo:    itemRepo,
		unidadeRepo: unidadeRepo,
		obraRepo:    obraRepo,
		ledger:      ledger,
		romaneioPDF: romaneioPDF,
		log:         log,
	}
}

type linhaSaida struct {
	itemID         int64
	quantidadeBase decimal.Decimal
	unidadeID      *int64
}

func (uc *SaidaUseCase) validarLinhas(itens []dto.SaidaItemRequest) ([]linhaSaida, error) {
	if len(itens) == 0 {
		return nil, domain.ErrInvalidInput
	}
	linhas := make([]linhaSaida, 0, len(itens))
	for _, l := range itens {
		qtd := l.QuantidadeBase
		if !qtd.IsPositive() && l.Quantidade.IsPositive() && l.UnidadeID != nil {
			un, err := uc.unidadeRepo.GetByID(*l.UnidadeID)
			if err != nil {
				return nil, err
			}
			if un == nil {
				return nil, domain.ErrNotFound
			}
			qtd = un.ParaBase(l.Quantidade)
		}
		if !qtd.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(l.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		linhas = append(linhas, linhaSaida{itemID: l.ItemID, quantidadeBase: qtd, unidadeID: l.UnidadeID})
	}
	return linhas, nil
}

// CreateSaida cria a saída dentro de uma transação:
//
//  1. Pré-checagem de disponibilidade: bloqueia os saldos (ordem crescente de
//     item) e confere TODAS as linhas antes de qualquer mutação: falta na
//     linha 3 impede as linhas 1–2 de serem aplicadas. Linhas repetidas do
//     mesmo item são conferidas pelo acumulado, para que uma saída nunca
//     construa saldo negativo.
//  2. Insere o cabeçalho (a data do documento nasce aqui).
//  3. Por linha: consulta o último preço de compra até a data do documento
//     (fotografia, não join vivo), grava a linha e baixa o saldo.
//
// A pré-checagem lê os saldos na mesma transação das mutações; duas saídas
// concorrentes sobre o mesmo item serializam no lock da linha de estoque.
func (uc *SaidaUseCase) CreateSaida(ctx context.Context, criadoPor int64, in dto.CriarSaidaRequest) (*dto.SaidaResponse, error) {
	linhas, err := uc.validarLinhas(in.Itens)
	if err != nil {
		return nil, err
	}
	if in.ObraID != nil {
		obra, err := uc.obraRepo.GetByID(*in.ObraID)
		if err != nil {
			return nil, err
		}
		if obra == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	var saidaID int64
	err = uc.txRunner.Run(ctx, func(
		entradaRepo repository.EntradaRepository,
		saidaRepo repository.SaidaRepository,
		estoqueRepo repository.EstoqueRepository,
	) error {
		itemIDs := make([]int64, len(linhas))
		for i, l := range linhas {
			itemIDs[i] = l.itemID
		}
		saldos, err := uc.ledger.PreLock(estoqueRepo, itemIDs)
		if err != nil {
			return err
		}

		// Disponibilidade de todas as linhas, na ordem recebida, contra o
		// acumulado exigido por item. Nada foi mutado até aqui.
		acumulado := make(map[int64]decimal.Decimal, len(linhas))
		for _, l := range linhas {
			exigido := acumulado[l.itemID].Add(l.quantidadeBase)
			acumulado[l.itemID] = exigido
			est := saldos[l.itemID]
			if est == nil || est.SaldoBase.LessThan(exigido) {
				return &domain.EstoqueInsuficienteError{ItemID: l.itemID}
			}
		}

		saida := &entity.Saida{Data: now, ObraID: in.ObraID, CriadoPor: &criadoPor}
		if err := saidaRepo.CreateHeader(saida); err != nil {
			return err
		}
		saidaID = saida.ID

		for _, l := range linhas {
			valorRef, err := entradaRepo.UltimoPrecoCompra(l.itemID, saida.Data)
			if err != nil {
				return err
			}
			item := &entity.SaidaItem{
				SaidaID:             saida.ID,
				ItemID:              l.itemID,
				QuantidadeBase:      l.quantidadeBase,
				ValorUnitReferencia: valorRef,
				UnidadeID:           l.unidadeID,
			}
			if err := saidaRepo.CreateItem(item); err != nil {
				return err
			}
			if _, err := uc.ledger.AplicarDelta(estoqueRepo, l.itemID, l.quantidadeBase.Neg()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("saida_id", saidaID).Int("linhas", len(linhas)).Msg("saída criada")
	return uc.GetSaida(ctx, saidaID)
}

// GetSaida devolve a saída completa (itens, item de catálogo e unidade).
func (uc *SaidaUseCase) GetSaida(_ context.Context, id int64) (*dto.SaidaResponse, error) {
	saida, err := uc.saidaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if saida == nil {
		return nil, domain.ErrNotFound
	}
	return toSaidaResponse(saida), nil
}

// ListSaidas lista saídas com filtros de obra e período.
func (uc *SaidaUseCase) ListSaidas(_ context.Context, in dto.ListarSaidasRequest) (*dto.ListaSaidasResponse, error) {
	in.DefaultPage()
	filtro := repository.SaidaFiltro{
		ObraID: in.ObraID,
		Limit:  in.Limit,
		Offset: in.Offset(),
	}
	var err error
	if filtro.DataInicio, filtro.DataFim, err = parsePeriodo(in.DataInicio, in.DataFim); err != nil {
		return nil, err
	}

	saidas, total, err := uc.saidaRepo.List(filtro)
	if err != nil {
		return nil, err
	}
	resp := &dto.ListaSaidasResponse{
		Saidas:     make([]dto.SaidaResponse, 0, len(saidas)),
		Total:      total,
		Page:       in.Page,
		TotalPages: int(math.Ceil(float64(total) / float64(in.Limit))),
	}
	for _, s := range saidas {
		resp.Saidas = append(resp.Saidas, *toSaidaResponse(s))
	}
	return resp, nil
}

// UpdateSaida atualiza somente o cabeçalho (obra de destino).
func (uc *SaidaUseCase) UpdateSaida(ctx context.Context, id int64, in dto.AtualizarSaidaRequest) (*dto.SaidaResponse, error) {
	saida, err := uc.saidaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if saida == nil {
		return nil, domain.ErrNotFound
	}
	saida.ObraID = in.ObraID
	if err := uc.saidaRepo.UpdateHeader(saida); err != nil {
		return nil, err
	}
	return uc.GetSaida(ctx, id)
}

// DeleteSaida exclui a saída devolvendo as quantidades ao ledger antes de
// remover linhas e cabeçalho, na mesma transação. Devolução só soma; não há
// piso a aplicar.
func (uc *SaidaUseCase) DeleteSaida(ctx context.Context, id int64) error {
	err := uc.txRunner.Run(ctx, func(
		_ repository.EntradaRepository,
		saidaRepo repository.SaidaRepository,
		estoqueRepo repository.EstoqueRepository,
	) error {
		saida, err := saidaRepo.GetByID(id)
		if err != nil {
			return err
		}
		if saida == nil {
			return domain.ErrNotFound
		}

		itemIDs := make([]int64, len(saida.Itens))
		for i, it := range saida.Itens {
			itemIDs[i] = it.ItemID
		}
		if _, err := uc.ledger.PreLock(estoqueRepo, itemIDs); err != nil {
			return err
		}
		for _, it := range saida.Itens {
			if _, err := uc.ledger.AplicarDelta(estoqueRepo, it.ItemID, it.QuantidadeBase); err != nil {
				return err
			}
		}
		if err := saidaRepo.DeleteItens(id); err != nil {
			return err
		}
		return saidaRepo.DeleteHeader(id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("saida_id", id).Msg("saída excluída e saldo devolvido")
	return nil
}

// GerarRomaneio gera o PDF do romaneio da saída (guia assinável na obra).
func (uc *SaidaUseCase) GerarRomaneio(ctx context.Context, id int64) ([]byte, error) {
	saida, err := uc.saidaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if saida == nil {
		return nil, domain.ErrNotFound
	}
	var obra *entity.Obra
	if saida.ObraID != nil {
		obra, err = uc.obraRepo.GetByID(*saida.ObraID)
		if err != nil {
			return nil, err
		}
	}
	return uc.romaneioPDF.GerarRomaneio(ctx, saida, obra)
}

func toSaidaResponse(s *entity.Saida) *dto.SaidaResponse {
	resp := &dto.SaidaResponse{
		ID:     s.ID,
		Data:   s.Data,
		ObraID: s.ObraID,
		Itens:  make([]dto.SaidaItemResponse, 0, len(s.Itens)),
	}
	if s.Obra != nil {
		resp.ObraNome = s.Obra.Nome
	}
	for _, it := range s.Itens {
		item := dto.SaidaItemResponse{
			ID:                  it.ID,
			ItemID:              it.ItemID,
			QuantidadeBase:      it.QuantidadeBase,
			ValorUnitReferencia: it.ValorUnitReferencia,
		}
		if it.Item != nil {
			item.ItemCodigo = it.Item.Codigo
			item.ItemDescricao = it.Item.Descricao
		}
		if it.Unidade != nil {
			item.UnidadeSigla = it.Unidade.Sigla
		}
		resp.Itens = append(resp.Itens, item)
	}
	return resp
}
