package estoque_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/estoque"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
	"github.com/Antonio-JDev/sistema-S3E-connect/pkg/logger"
)

// memStore guarda todo o estado dos repositórios em memória. O fakeTxRunner
// tira um snapshot antes do callback e restaura em caso de erro, reproduzindo
// o tudo-ou-nada da transação real.
type memStore struct {
	itens    map[int64]*entity.Item
	unidades map[int64]*entity.UnidadeMedida
	obras    map[int64]*entity.Obra
	estoques map[int64]*entity.Estoque // chave: item_id

	entradas     map[int64]*entity.Entrada
	entradaItens []*entity.EntradaItem
	saidas       map[int64]*entity.Saida
	saidaItens   []*entity.SaidaItem

	seq int64

	// ids passados a GetByItemIDForUpdate, na ordem das chamadas
	forUpdateCalls []int64
}

func newMemStore() *memStore {
	return &memStore{
		itens:    map[int64]*entity.Item{},
		unidades: map[int64]*entity.UnidadeMedida{},
		obras:    map[int64]*entity.Obra{},
		estoques: map[int64]*entity.Estoque{},
		entradas: map[int64]*entity.Entrada{},
		saidas:   map[int64]*entity.Saida{},
	}
}

func (s *memStore) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.seq = s.seq
	for k, v := range s.itens {
		cp := *v
		c.itens[k] = &cp
	}
	for k, v := range s.unidades {
		cp := *v
		c.unidades[k] = &cp
	}
	for k, v := range s.obras {
		cp := *v
		c.obras[k] = &cp
	}
	for k, v := range s.estoques {
		cp := *v
		c.estoques[k] = &cp
	}
	for k, v := range s.entradas {
		cp := *v
		cp.Itens = nil
		c.entradas[k] = &cp
	}
	for _, v := range s.entradaItens {
		cp := *v
		c.entradaItens = append(c.entradaItens, &cp)
	}
	for k, v := range s.saidas {
		cp := *v
		cp.Itens = nil
		c.saidas[k] = &cp
	}
	for _, v := range s.saidaItens {
		cp := *v
		c.saidaItens = append(c.saidaItens, &cp)
	}
	return c
}

func (s *memStore) restore(snap *memStore) {
	s.itens = snap.itens
	s.unidades = snap.unidades
	s.obras = snap.obras
	s.estoques = snap.estoques
	s.entradas = snap.entradas
	s.entradaItens = snap.entradaItens
	s.saidas = snap.saidas
	s.saidaItens = snap.saidaItens
	s.seq = snap.seq
}

// ── repositórios fake ────────────────────────────────────────────────────────

type fakeEstoqueRepo struct{ s *memStore }

func (r *fakeEstoqueRepo) GetByItemID(itemID int64) (*entity.Estoque, error) {
	if est, ok := r.s.estoques[itemID]; ok {
		cp := *est
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeEstoqueRepo) GetByItemIDForUpdate(itemID int64) (*entity.Estoque, error) {
	r.s.forUpdateCalls = append(r.s.forUpdateCalls, itemID)
	return r.GetByItemID(itemID)
}

func (r *fakeEstoqueRepo) Create(est *entity.Estoque) error {
	est.ID = r.s.nextID()
	cp := *est
	r.s.estoques[est.ItemID] = &cp
	return nil
}

func (r *fakeEstoqueRepo) UpdateSaldo(itemID int64, saldoBase decimal.Decimal) error {
	r.s.estoques[itemID].SaldoBase = saldoBase
	return nil
}

func (r *fakeEstoqueRepo) List(limit, offset int) ([]*entity.Estoque, error) {
	return r.list(limit, offset, false)
}

func (r *fakeEstoqueRepo) ListAbaixoMinimo(limit, offset int) ([]*entity.Estoque, error) {
	return r.list(limit, offset, true)
}

func (r *fakeEstoqueRepo) list(limit, offset int, soAbaixo bool) ([]*entity.Estoque, error) {
	var all []*entity.Estoque
	for _, est := range r.s.estoques {
		item := r.s.itens[est.ItemID]
		if soAbaixo && (item == nil || !item.Ativo || !est.SaldoBase.LessThan(item.EstoqueMinimo)) {
			continue
		}
		cp := *est
		if item != nil {
			itemCp := *item
			cp.Item = &itemCp
			if un, ok := r.s.unidades[item.UnidadeBaseID]; ok {
				unCp := *un
				cp.UnidadeBase = &unCp
			}
		}
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ItemID < all[j].ItemID })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

type fakeEntradaRepo struct{ s *memStore }

func (r *fakeEntradaRepo) CreateHeader(e *entity.Entrada) error {
	e.ID = r.s.nextID()
	cp := *e
	cp.Itens = nil
	r.s.entradas[e.ID] = &cp
	return nil
}

func (r *fakeEntradaRepo) CreateItem(it *entity.EntradaItem) error {
	it.ID = r.s.nextID()
	cp := *it
	r.s.entradaItens = append(r.s.entradaItens, &cp)
	return nil
}

func (r *fakeEntradaRepo) GetByID(id int64) (*entity.Entrada, error) {
	e, ok := r.s.entradas[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	for _, it := range r.s.entradaItens {
		if it.EntradaID != id {
			continue
		}
		itCp := *it
		if item, ok := r.s.itens[it.ItemID]; ok {
			itemCp := *item
			itCp.Item = &itemCp
		}
		cp.Itens = append(cp.Itens, &itCp)
	}
	return &cp, nil
}

func (r *fakeEntradaRepo) List(filtro repository.EntradaFiltro) ([]*entity.Entrada, int, error) {
	var all []*entity.Entrada
	for id := range r.s.entradas {
		e, _ := r.GetByID(id)
		if filtro.FornecedorID != nil && (e.FornecedorID == nil || *e.FornecedorID != *filtro.FornecedorID) {
			continue
		}
		if filtro.DataInicio != nil && e.Data.Before(*filtro.DataInicio) {
			continue
		}
		if filtro.DataFim != nil && e.Data.After(*filtro.DataFim) {
			continue
		}
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Data.Equal(all[j].Data) {
			return all[i].Data.After(all[j].Data)
		}
		return all[i].ID > all[j].ID
	})
	return all, len(all), nil
}

func (r *fakeEntradaRepo) UpdateHeader(e *entity.Entrada) error {
	cp := *e
	cp.Itens = nil
	r.s.entradas[e.ID] = &cp
	return nil
}

func (r *fakeEntradaRepo) DeleteItens(entradaID int64) error {
	kept := r.s.entradaItens[:0]
	for _, it := range r.s.entradaItens {
		if it.EntradaID != entradaID {
			kept = append(kept, it)
		}
	}
	r.s.entradaItens = kept
	return nil
}

func (r *fakeEntradaRepo) DeleteHeader(id int64) error {
	delete(r.s.entradas, id)
	return nil
}

func (r *fakeEntradaRepo) UltimoPrecoCompra(itemID int64, corte time.Time) (decimal.Decimal, error) {
	var melhor *entity.EntradaItem
	var melhorData time.Time
	for _, it := range r.s.entradaItens {
		if it.ItemID != itemID {
			continue
		}
		e := r.s.entradas[it.EntradaID]
		if e == nil || e.Data.After(corte) {
			continue
		}
		if melhor == nil ||
			e.Data.After(melhorData) ||
			(e.Data.Equal(melhorData) && it.EntradaID > melhor.EntradaID) ||
			(e.Data.Equal(melhorData) && it.EntradaID == melhor.EntradaID && it.ID > melhor.ID) {
			melhor = it
			melhorData = e.Data
		}
	}
	if melhor == nil {
		return decimal.Zero, nil
	}
	return melhor.ValorUnitUltimaCompra, nil
}

type fakeSaidaRepo struct{ s *memStore }

func (r *fakeSaidaRepo) CreateHeader(sd *entity.Saida) error {
	sd.ID = r.s.nextID()
	cp := *sd
	cp.Itens = nil
	r.s.saidas[sd.ID] = &cp
	return nil
}

func (r *fakeSaidaRepo) CreateItem(it *entity.SaidaItem) error {
	it.ID = r.s.nextID()
	cp := *it
	r.s.saidaItens = append(r.s.saidaItens, &cp)
	return nil
}

func (r *fakeSaidaRepo) GetByID(id int64) (*entity.Saida, error) {
	sd, ok := r.s.saidas[id]
	if !ok {
		return nil, nil
	}
	cp := *sd
	if cp.ObraID != nil {
		if o, ok := r.s.obras[*cp.ObraID]; ok {
			oCp := *o
			cp.Obra = &oCp
		}
	}
	for _, it := range r.s.saidaItens {
		if it.SaidaID != id {
			continue
		}
		itCp := *it
		if item, ok := r.s.itens[it.ItemID]; ok {
			itemCp := *item
			itCp.Item = &itemCp
		}
		cp.Itens = append(cp.Itens, &itCp)
	}
	return &cp, nil
}

func (r *fakeSaidaRepo) List(filtro repository.SaidaFiltro) ([]*entity.Saida, int, error) {
	var all []*entity.Saida
	for id := range r.s.saidas {
		sd, _ := r.GetByID(id)
		if filtro.ObraID != nil && (sd.ObraID == nil || *sd.ObraID != *filtro.ObraID) {
			continue
		}
		if filtro.DataInicio != nil && sd.Data.Before(*filtro.DataInicio) {
			continue
		}
		if filtro.DataFim != nil && sd.Data.After(*filtro.DataFim) {
			continue
		}
		all = append(all, sd)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all, len(all), nil
}

func (r *fakeSaidaRepo) UpdateHeader(sd *entity.Saida) error {
	cp := *sd
	cp.Itens = nil
	cp.Obra = nil
	r.s.saidas[sd.ID] = &cp
	return nil
}

func (r *fakeSaidaRepo) DeleteItens(saidaID int64) error {
	kept := r.s.saidaItens[:0]
	for _, it := range r.s.saidaItens {
		if it.SaidaID != saidaID {
			kept = append(kept, it)
		}
	}
	r.s.saidaItens = kept
	return nil
}

func (r *fakeSaidaRepo) DeleteHeader(id int64) error {
	delete(r.s.saidas, id)
	return nil
}

type fakeItemRepo struct{ s *memStore }

func (r *fakeItemRepo) Create(it *entity.Item) error {
	it.ID = r.s.nextID()
	cp := *it
	r.s.itens[it.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(id int64) (*entity.Item, error) {
	if it, ok := r.s.itens[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeItemRepo) GetByCodigo(codigo string) (*entity.Item, error) {
	for _, it := range r.s.itens {
		if it.Codigo == codigo {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) List(filtro repository.ItemFiltro) ([]*entity.Item, int, error) {
	var all []*entity.Item
	for _, it := range r.s.itens {
		if filtro.Busca != "" && !strings.Contains(strings.ToLower(it.Descricao), strings.ToLower(filtro.Busca)) {
			continue
		}
		if filtro.Ativo != nil && it.Ativo != *filtro.Ativo {
			continue
		}
		cp := *it
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, len(all), nil
}

func (r *fakeItemRepo) Update(it *entity.Item) error {
	cp := *it
	r.s.itens[it.ID] = &cp
	return nil
}

type fakeUnidadeRepo struct{ s *memStore }

func (r *fakeUnidadeRepo) GetByID(id int64) (*entity.UnidadeMedida, error) {
	if u, ok := r.s.unidades[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUnidadeRepo) GetBySigla(sigla string) (*entity.UnidadeMedida, error) {
	for _, u := range r.s.unidades {
		if u.Sigla == sigla {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUnidadeRepo) List() ([]*entity.UnidadeMedida, error) {
	var all []*entity.UnidadeMedida
	for _, u := range r.s.unidades {
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

type fakeObraRepo struct{ s *memStore }

func (r *fakeObraRepo) Create(o *entity.Obra) error {
	o.ID = r.s.nextID()
	cp := *o
	r.s.obras[o.ID] = &cp
	return nil
}

func (r *fakeObraRepo) GetByID(id int64) (*entity.Obra, error) {
	if o, ok := r.s.obras[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeObraRepo) List(status string, limit, offset int) ([]*entity.Obra, int, error) {
	var all []*entity.Obra
	for _, o := range r.s.obras {
		if status != "" && o.Status != status {
			continue
		}
		cp := *o
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, len(all), nil
}

func (r *fakeObraRepo) Update(o *entity.Obra) error {
	cp := *o
	r.s.obras[o.ID] = &cp
	return nil
}

// fakeTxRunner reproduz o tudo-ou-nada: snapshot antes, restore no erro.
type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	entradaRepo repository.EntradaRepository,
	saidaRepo repository.SaidaRepository,
	estoqueRepo repository.EstoqueRepository,
) error) error {
	snap := r.s.clone()
	if err := fn(&fakeEntradaRepo{r.s}, &fakeSaidaRepo{r.s}, &fakeEstoqueRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

type fakeRomaneioPDF struct{}

func (fakeRomaneioPDF) GerarRomaneio(_ context.Context, _ *entity.Saida, _ *entity.Obra) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

// ── harness ──────────────────────────────────────────────────────────────────

type harness struct {
	store      *memStore
	entradaUC  *estoque.EntradaUseCase
	saidaUC    *estoque.SaidaUseCase
	consultaUC *estoque.ConsultaUseCase
	ledger     *estoque.Ledger
}

func newHarness() *harness {
	s := newMemStore()
	log := logger.NewNop()
	ledger := estoque.NewLedger(log)
	tx := &fakeTxRunner{s}
	entradaRepo := &fakeEntradaRepo{s}
	saidaRepo := &fakeSaidaRepo{s}
	itemRepo := &fakeItemRepo{s}
	unidadeRepo := &fakeUnidadeRepo{s}
	obraRepo := &fakeObraRepo{s}
	estoqueRepo := &fakeEstoqueRepo{s}

	return &harness{
		store:      s,
		ledger:     ledger,
		entradaUC:  estoque.NewEntradaUseCase(tx, entradaRepo, itemRepo, unidadeRepo, ledger, log),
		saidaUC:    estoque.NewSaidaUseCase(tx, saidaRepo, itemRepo, unidadeRepo, obraRepo, ledger, fakeRomaneioPDF{}, log),
		consultaUC: estoque.NewConsultaUseCase(estoqueRepo, itemRepo),
	}
}

func (h *harness) seedUnidade(sigla string, fator string) int64 {
	id := h.store.nextID()
	h.store.unidades[id] = &entity.UnidadeMedida{
		ID: id, Sigla: sigla, FatorBase: dec(fator),
	}
	return id
}

func (h *harness) seedItem(codigo string, unidadeBaseID int64) int64 {
	id := h.store.nextID()
	h.store.itens[id] = &entity.Item{
		ID: id, Codigo: codigo, Descricao: "Item " + codigo,
		UnidadeBaseID: unidadeBaseID, Ativo: true,
	}
	return id
}

func (h *harness) seedObra(codigo string) int64 {
	id := h.store.nextID()
	h.store.obras[id] = &entity.Obra{ID: id, Codigo: codigo, Nome: "Obra " + codigo, Status: entity.ObraStatusAtiva}
	return id
}

// seedEstoque cria a linha de saldo direto, sem passar por uma entrada.
func (h *harness) seedEstoque(itemID int64, saldo string) {
	id := h.store.nextID()
	h.store.estoques[itemID] = &entity.Estoque{
		ID: id, ItemID: itemID, Local: entity.LocalPadrao, SaldoBase: dec(saldo),
	}
}

func (h *harness) saldo(itemID int64) decimal.Decimal {
	if est, ok := h.store.estoques[itemID]; ok {
		return est.SaldoBase
	}
	return decimal.Zero
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
