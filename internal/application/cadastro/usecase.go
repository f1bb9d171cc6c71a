// Package cadastro reúne os casos de uso dos dados de referência do
// almoxarifado: catálogo de itens, fornecedores, obras e unidades de medida.
package cadastro

import (
	"context"
	"math"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/dto"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
)

// UseCase CRUD dos cadastros. Exclusão física não existe: itens são
// desativados para preservar o histórico de entradas e saídas.
type UseCase struct {
	itemRepo       repository.ItemRepository
	unidadeRepo    repository.UnidadeMedidaRepository
	fornecedorRepo repository.FornecedorRepository
	obraRepo       repository.ObraRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(
	itemRepo repository.ItemRepository,
	unidadeRepo repository.UnidadeMedidaRepository,
	fornecedorRepo repository.FornecedorRepository,
	obraRepo repository.ObraRepository,
) *UseCase {
	return &UseCase{
		itemRepo:       itemRepo,
		unidadeRepo:    unidadeRepo,
		fornecedorRepo: fornecedorRepo,
		obraRepo:       obraRepo,
	}
}

// CreateItem cadastra um item novo, ativo, com unidade base validada.
func (uc *UseCase) CreateItem(_ context.Context, in dto.CriarItemRequest) (*dto.ItemResponse, error) {
	if in.Codigo == "" || in.Descricao == "" || in.UnidadeBaseID == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.EstoqueMinimo.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	un, err := uc.unidadeRepo.GetByID(in.UnidadeBaseID)
	if err != nil {
		return nil, err
	}
	if un == nil {
		return nil, domain.ErrNotFound
	}
	existente, err := uc.itemRepo.GetByCodigo(in.Codigo)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}
	item := &entity.Item{
		Codigo:                in.Codigo,
		Descricao:             in.Descricao,
		CategoriaID:           in.CategoriaID,
		UnidadeBaseID:         in.UnidadeBaseID,
		EstoqueMinimo:         in.EstoqueMinimo,
		ComprimentoPorUnidade: in.ComprimentoPorUnidade,
		Ativo:                 true,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetItem devolve um item do catálogo.
func (uc *UseCase) GetItem(_ context.Context, id int64) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// ListItens lista o catálogo com busca sem acentos.
func (uc *UseCase) ListItens(_ context.Context, in dto.ListarItensRequest) (*dto.ListaItensResponse, error) {
	in.DefaultPage()
	itens, total, err := uc.itemRepo.List(repository.ItemFiltro{
		Busca:       in.Busca,
		CategoriaID: in.CategoriaID,
		Ativo:       in.Ativo,
		Limit:       in.Limit,
		Offset:      in.Offset(),
	})
	if err != nil {
		return nil, err
	}
	resp := &dto.ListaItensResponse{
		Itens:      make([]dto.ItemResponse, 0, len(itens)),
		Total:      total,
		Page:       in.Page,
		TotalPages: int(math.Ceil(float64(total) / float64(in.Limit))),
	}
	for _, it := range itens {
		resp.Itens = append(resp.Itens, *toItemResponse(it))
	}
	return resp, nil
}

// UpdateItem atualiza os campos editáveis; Ativo só muda quando enviado.
func (uc *UseCase) UpdateItem(_ context.Context, id int64, in dto.AtualizarItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Descricao == "" || in.EstoqueMinimo.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item.Descricao = in.Descricao
	item.CategoriaID = in.CategoriaID
	item.EstoqueMinimo = in.EstoqueMinimo
	item.ComprimentoPorUnidade = in.ComprimentoPorUnidade
	if in.Ativo != nil {
		item.Ativo = *in.Ativo
	}
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// ListUnidades lista as unidades de medida (dado de referência imutável).
func (uc *UseCase) ListUnidades(_ context.Context) ([]dto.UnidadeMedidaResponse, error) {
	unidades, err := uc.unidadeRepo.List()
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UnidadeMedidaResponse, 0, len(unidades))
	for _, u := range unidades {
		resp = append(resp, dto.UnidadeMedidaResponse{
			ID: u.ID, Sigla: u.Sigla, Descricao: u.Descricao, FatorBase: u.FatorBase,
		})
	}
	return resp, nil
}

// CreateFornecedor cadastra um fornecedor.
func (uc *UseCase) CreateFornecedor(_ context.Context, in dto.FornecedorRequest) (*entity.Fornecedor, error) {
	if in.RazaoSocial == "" {
		return nil, domain.ErrInvalidInput
	}
	f := &entity.Fornecedor{
		RazaoSocial: in.RazaoSocial,
		CNPJ:        in.CNPJ,
		Contato:     in.Contato,
		Telefone:    in.Telefone,
		Email:       in.Email,
	}
	if err := uc.fornecedorRepo.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

// GetFornecedor devolve um fornecedor.
func (uc *UseCase) GetFornecedor(_ context.Context, id int64) (*entity.Fornecedor, error) {
	f, err := uc.fornecedorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

// ListFornecedores lista fornecedores com busca por razão social ou CNPJ.
func (uc *UseCase) ListFornecedores(_ context.Context, busca string, page dto.PageRequest) ([]*entity.Fornecedor, int, error) {
	page.DefaultPage()
	return uc.fornecedorRepo.List(busca, page.Limit, page.Offset())
}

// UpdateFornecedor atualiza um fornecedor.
func (uc *UseCase) UpdateFornecedor(_ context.Context, id int64, in dto.FornecedorRequest) (*entity.Fornecedor, error) {
	f, err := uc.fornecedorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	if in.RazaoSocial == "" {
		return nil, domain.ErrInvalidInput
	}
	f.RazaoSocial = in.RazaoSocial
	f.CNPJ = in.CNPJ
	f.Contato = in.Contato
	f.Telefone = in.Telefone
	f.Email = in.Email
	if err := uc.fornecedorRepo.Update(f); err != nil {
		return nil, err
	}
	return f, nil
}

// CreateObra cadastra uma obra; status vazio nasce ativa.
func (uc *UseCase) CreateObra(_ context.Context, in dto.ObraRequest) (*entity.Obra, error) {
	if in.Codigo == "" || in.Nome == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.ObraStatusAtiva
	}
	if !statusObraValido(status) {
		return nil, domain.ErrInvalidInput
	}
	o := &entity.Obra{
		Codigo:      in.Codigo,
		Nome:        in.Nome,
		Cliente:     in.Cliente,
		Responsavel: in.Responsavel,
		Status:      status,
	}
	if err := uc.obraRepo.Create(o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetObra devolve uma obra.
func (uc *UseCase) GetObra(_ context.Context, id int64) (*entity.Obra, error) {
	o, err := uc.obraRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// ListObras lista obras, opcionalmente por status.
func (uc *UseCase) ListObras(_ context.Context, status string, page dto.PageRequest) ([]*entity.Obra, int, error) {
	if status != "" && !statusObraValido(status) {
		return nil, 0, domain.ErrInvalidInput
	}
	page.DefaultPage()
	return uc.obraRepo.List(status, page.Limit, page.Offset())
}

// UpdateObra atualiza uma obra (código é imutável).
func (uc *UseCase) UpdateObra(_ context.Context, id int64, in dto.ObraRequest) (*entity.Obra, error) {
	o, err := uc.obraRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nome == "" || !statusObraValido(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	o.Nome = in.Nome
	o.Cliente = in.Cliente
	o.Responsavel = in.Responsavel
	o.Status = in.Status
	if err := uc.obraRepo.Update(o); err != nil {
		return nil, err
	}
	return o, nil
}

func statusObraValido(s string) bool {
	switch s {
	case entity.ObraStatusAtiva, entity.ObraStatusPausada, entity.ObraStatusConcluida:
		return true
	}
	return false
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:                    it.ID,
		Codigo:                it.Codigo,
		Descricao:             it.Descricao,
		CategoriaID:           it.CategoriaID,
		UnidadeBaseID:         it.UnidadeBaseID,
		EstoqueMinimo:         it.EstoqueMinimo,
		ComprimentoPorUnidade: it.ComprimentoPorUnidade,
		Ativo:                 it.Ativo,
	}
}
