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

// casasDecimais é a precisão de todos os campos de quantidade e dinheiro
// (NUMERIC(18,6) no banco).
const casasDecimais = 6

// EntradaUseCase processa documentos de entrada (compras) de forma
// transacional: cabeçalho, linhas com custo unitário derivado e acréscimo de
// saldo por linha, tudo dentro de uma única transação.
type EntradaUseCase struct {
	txRunner    TxRunner
	entradaRepo repository.EntradaRepository
	itemRepo    repository.ItemRepository
	unidadeRepo repository.UnidadeMedidaRepository
	ledger      *Ledger
	log         *logger.Logger
}

// NewEntradaUseCase constrói o caso de uso.
func NewEntradaUseCase(
	txRunner TxRunner,
	entradaRepo repository.EntradaRepository,
	itemRepo repository.ItemRepository,
	unidadeRepo repository.UnidadeMedidaRepository,
	ledger *Ledger,
	log *logger.Logger,
) *EntradaUseCase {
	return &EntradaUseCase{
		txRunner:    txRunner,
		entradaRepo: entradaRepo,
		itemRepo:    itemRepo,
		unidadeRepo: unidadeRepo,
		ledger:      ledger,
		log:         log,
	}
}

// linhaResolvida é uma linha já validada, com quantidade na unidade base.
type linhaResolvida struct {
	itemID         int64
	quantidadeBase decimal.Decimal
	valorTotal     decimal.Decimal
	unidadeID      *int64
}

// resolverQuantidadeBase aceita quantidade_base direta ou quantidade +
// unidade, convertendo pelo fator de conversão da unidade informada.
func (uc *EntradaUseCase) resolverQuantidadeBase(base, quantidade decimal.Decimal, unidadeID *int64) (decimal.Decimal, error) {
	if base.IsPositive() {
		return base, nil
	}
	if quantidade.IsPositive() && unidadeID != nil {
		un, err := uc.unidadeRepo.GetByID(*unidadeID)
		if err != nil {
			return decimal.Zero, err
		}
		if un == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		return un.ParaBase(quantidade), nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}

// validarLinhas valida e resolve todas as linhas antes de abrir a transação.
// A camada de validação HTTP já checou a forma, mas as invariantes de negócio
// (quantidade positiva, item existente) são reforçadas aqui porque aquela
// camada é contornável.
func (uc *EntradaUseCase) validarLinhas(itens []dto.EntradaItemRequest) ([]linhaResolvida, error) {
	if len(itens) == 0 {
		return nil, domain.ErrInvalidInput
	}
	linhas := make([]linhaResolvida, 0, len(itens))
	for _, l := range itens {
		qtd, err := uc.resolverQuantidadeBase(l.QuantidadeBase, l.Quantidade, l.UnidadeID)
		if err != nil {
			return nil, err
		}
		if !qtd.IsPositive() || l.ValorTotal.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(l.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		linhas = append(linhas, linhaResolvida{
			itemID:         l.ItemID,
			quantidadeBase: qtd,
			valorTotal:     l.ValorTotal,
			unidadeID:      l.UnidadeID,
		})
	}
	return linhas, nil
}

// CreateEntrada cria a entrada dentro de uma transação: insere o cabeçalho e,
// por linha na ordem recebida, deriva valor_unit_ultima_compra
// (valor_total / quantidade_base), grava a linha e soma o saldo no ledger.
// Qualquer falha desfaz tudo; nenhuma linha é aplicada parcialmente.
func (uc *EntradaUseCase) CreateEntrada(ctx context.Context, criadoPor int64, in dto.CriarEntradaRequest) (*dto.EntradaResponse, error) {
	linhas, err := uc.validarLinhas(in.Itens)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var entradaID int64
	err = uc.txRunner.Run(ctx, func(
		entradaRepo repository.EntradaRepository,
		_ repository.SaidaRepository,
		estoqueRepo repository.EstoqueRepository,
	) error {
		itemIDs := make([]int64, len(linhas))
		for i, l := range linhas {
			itemIDs[i] = l.itemID
		}
		// Ordem de bloqueio consistente entre documentos concorrentes
		if _, err := uc.ledger.PreLock(estoqueRepo, itemIDs); err != nil {
			return err
		}

		entrada := &entity.Entrada{
			Data:         now,
			FornecedorID: in.FornecedorID,
			NFNumero:     in.NFNumero,
			NFChave:      in.NFChave,
			CriadoPor:    &criadoPor,
		}
		if err := entradaRepo.CreateHeader(entrada); err != nil {
			return err
		}
		entradaID = entrada.ID

		for _, l := range linhas {
			// Derivação explícita no fluxo de criação, não em hook de persistência:
			// este valor é o registro histórico consultado pela valoração das saídas.
			valorUnit := l.valorTotal.DivRound(l.quantidadeBase, casasDecimais)
			item := &entity.EntradaItem{
				EntradaID:             entrada.ID,
				ItemID:                l.itemID,
				QuantidadeBase:        l.quantidadeBase,
				ValorTotal:            l.valorTotal,
				ValorUnitUltimaCompra: valorUnit,
				UnidadeID:             l.unidadeID,
			}
			if err := entradaRepo.CreateItem(item); err != nil {
				return err
			}
			if _, err := uc.ledger.AplicarDelta(estoqueRepo, l.itemID, l.quantidadeBase); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("entrada_id", entradaID).Int("linhas", len(linhas)).Msg("entrada criada")
	return uc.GetEntrada(ctx, entradaID)
}

// GetEntrada devolve a entrada completa (itens, item de catálogo e unidade).
func (uc *EntradaUseCase) GetEntrada(_ context.Context, id int64) (*dto.EntradaResponse, error) {
	entrada, err := uc.entradaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entrada == nil {
		return nil, domain.ErrNotFound
	}
	return toEntradaResponse(entrada), nil
}

// ListEntradas lista entradas com filtros de fornecedor e período.
func (uc *EntradaUseCase) ListEntradas(_ context.Context, in dto.ListarEntradasRequest) (*dto.ListaEntradasResponse, error) {
	in.DefaultPage()
	filtro := repository.EntradaFiltro{
		FornecedorID: in.FornecedorID,
		Limit:        in.Limit,
		Offset:       in.Offset(),
	}
	var err error
	if filtro.DataInicio, filtro.DataFim, err = parsePeriodo(in.DataInicio, in.DataFim); err != nil {
		return nil, err
	}

	entradas, total, err := uc.entradaRepo.List(filtro)
	if err != nil {
		return nil, err
	}
	resp := &dto.ListaEntradasResponse{
		Entradas:   make([]dto.EntradaResponse, 0, len(entradas)),
		Total:      total,
		Page:       in.Page,
		TotalPages: int(math.Ceil(float64(total) / float64(in.Limit))),
	}
	for _, e := range entradas {
		resp.Entradas = append(resp.Entradas, *toEntradaResponse(e))
	}
	return resp, nil
}

// UpdateEntrada atualiza somente o cabeçalho (fornecedor e dados da NF);
// linhas não são editáveis para não descolar o saldo do histórico.
func (uc *EntradaUseCase) UpdateEntrada(ctx context.Context, id int64, in dto.AtualizarEntradaRequest) (*dto.EntradaResponse, error) {
	entrada, err := uc.entradaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entrada == nil {
		return nil, domain.ErrNotFound
	}
	entrada.FornecedorID = in.FornecedorID
	entrada.NFNumero = in.NFNumero
	entrada.NFChave = in.NFChave
	if err := uc.entradaRepo.UpdateHeader(entrada); err != nil {
		return nil, err
	}
	return uc.GetEntrada(ctx, id)
}

// DeleteEntrada exclui a entrada revertendo o efeito no ledger antes de
// remover linhas e cabeçalho, na mesma transação: por linha subtrai a
// quantidade com piso em zero (política de recuperação do ledger).
func (uc *EntradaUseCase) DeleteEntrada(ctx context.Context, id int64) error {
	err := uc.txRunner.Run(ctx, func(
		entradaRepo repository.EntradaRepository,
		_ repository.SaidaRepository,
		estoqueRepo repository.EstoqueRepository,
	) error {
		entrada, err := entradaRepo.GetByID(id)
		if err != nil {
			return err
		}
		if entrada == nil {
			return domain.ErrNotFound
		}

		itemIDs := make([]int64, len(entrada.Itens))
		for i, it := range entrada.Itens {
			itemIDs[i] = it.ItemID
		}
		if _, err := uc.ledger.PreLock(estoqueRepo, itemIDs); err != nil {
			return err
		}
		for _, it := range entrada.Itens {
			if _, err := uc.ledger.ReverterEntrada(estoqueRepo, it.ItemID, it.QuantidadeBase); err != nil {
				return err
			}
		}
		if err := entradaRepo.DeleteItens(id); err != nil {
			return err
		}
		return entradaRepo.DeleteHeader(id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("entrada_id", id).Msg("entrada excluída e saldo revertido")
	return nil
}

func toEntradaResponse(e *entity.Entrada) *dto.EntradaResponse {
	resp := &dto.EntradaResponse{
		ID:           e.ID,
		Data:         e.Data,
		FornecedorID: e.FornecedorID,
		NFNumero:     e.NFNumero,
		NFChave:      e.NFChave,
		Itens:        make([]dto.EntradaItemResponse, 0, len(e.Itens)),
	}
	if e.Fornecedor != nil {
		resp.FornecedorNome = e.Fornecedor.RazaoSocial
	}
	for _, it := range e.Itens {
		item := dto.EntradaItemResponse{
			ID:                    it.ID,
			ItemID:                it.ItemID,
			QuantidadeBase:        it.QuantidadeBase,
			ValorTotal:            it.ValorTotal,
			ValorUnitUltimaCompra: it.ValorUnitUltimaCompra,
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

// parsePeriodo interpreta datas YYYY-MM-DD dos filtros; data_fim inclui o dia inteiro.
func parsePeriodo(inicio, fim string) (*time.Time, *time.Time, error) {
	var dataInicio, dataFim *time.Time
	if inicio != "" {
		t, err := time.Parse("2006-01-02", inicio)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		dataInicio = &t
	}
	if fim != "" {
		t, err := time.Parse("2006-01-02", fim)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		dataFim = &t
	}
	return dataInicio, dataFim, nil
}
