package estoque_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain"
)

func TestAplicarDelta_CriaLinhaPreguicosa(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	item := h.seedItem("CABO-2.5", un)
	repo := &fakeEstoqueRepo{h.store}

	novo, err := h.ledger.AplicarDelta(repo, item, dec("100"))
	require.NoError(t, err)
	assert.True(t, novo.Equal(dec("100")), "primeira entrada cria a linha com saldo igual ao delta")

	est := h.store.estoques[item]
	require.NotNil(t, est, "linha de estoque deve existir após o delta positivo")
	assert.Equal(t, "DEPÓSITO", est.Local)
}

func TestAplicarDelta_AcumulaSobreLinhaExistente(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	item := h.seedItem("CABO-4", un)
	h.seedEstoque(item, "10.5")
	repo := &fakeEstoqueRepo{h.store}

	novo, err := h.ledger.AplicarDelta(repo, item, dec("-3.25"))
	require.NoError(t, err)
	assert.True(t, novo.Equal(dec("7.25")))
	assert.True(t, h.saldo(item).Equal(dec("7.25")))
}

func TestAplicarDelta_NegativoSemLinha_ViolaInvariante(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	item := h.seedItem("CABO-6", un)
	repo := &fakeEstoqueRepo{h.store}

	_, err := h.ledger.AplicarDelta(repo, item, dec("-5"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation,
		"baixa contra item sem linha é erro de sequência do chamador")
	assert.Nil(t, h.store.estoques[item], "nenhuma linha deve ser criada")
}

func TestReverterEntrada_SubtracaoNormal(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	item := h.seedItem("DISJ-20A", un)
	h.seedEstoque(item, "100")
	repo := &fakeEstoqueRepo{h.store}

	novo, err := h.ledger.ReverterEntrada(repo, item, dec("40"))
	require.NoError(t, err)
	assert.True(t, novo.Equal(dec("60")))
}

func TestReverterEntrada_PisoEmZero(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	item := h.seedItem("DISJ-32A", un)
	h.seedEstoque(item, "30")
	repo := &fakeEstoqueRepo{h.store}

	// Reverter mais do que o saldo corrente: o resto é descartado, nunca negativo.
	novo, err := h.ledger.ReverterEntrada(repo, item, dec("100"))
	require.NoError(t, err)
	assert.True(t, novo.IsZero(), "reversão de entrada aplica piso em zero")
	assert.True(t, h.saldo(item).IsZero())
}

func TestReverterEntrada_SemLinha_NoOp(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	item := h.seedItem("TOMADA-10A", un)
	repo := &fakeEstoqueRepo{h.store}

	novo, err := h.ledger.ReverterEntrada(repo, item, dec("5"))
	require.NoError(t, err, "reverter item sem linha não é erro")
	assert.True(t, novo.IsZero())
}

func TestAplicarDelta_ConservacaoEmMovimentosAlternados(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	item := h.seedItem("CABO-10", un)
	h.seedEstoque(item, "500")
	repo := &fakeEstoqueRepo{h.store}

	// 5000 pares entra/sai da mesma quantidade fracionária: a soma dos deltas
	// é zero e o saldo final deve ser exatamente o inicial, sem resíduo de
	// arredondamento acumulado.
	passo := dec("0.333333")
	for i := 0; i < 5000; i++ {
		if _, err := h.ledger.AplicarDelta(repo, item, passo); err != nil {
			t.Fatalf("delta positivo %d: %v", i, err)
		}
		if _, err := h.ledger.AplicarDelta(repo, item, passo.Neg()); err != nil {
			t.Fatalf("delta negativo %d: %v", i, err)
		}
	}
	assert.True(t, h.saldo(item).Equal(dec("500")),
		"saldo final deve voltar exatamente ao inicial, obtido %s", h.saldo(item))
}

func TestPreLock_OrdenaEDeduplicaItens(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	a := h.seedItem("A", un)
	b := h.seedItem("B", un)
	c := h.seedItem("C", un)
	h.seedEstoque(b, "1")
	h.seedEstoque(c, "2")
	repo := &fakeEstoqueRepo{h.store}

	saldos, err := h.ledger.PreLock(repo, []int64{c, a, b, c, a})
	require.NoError(t, err)

	assert.Equal(t, []int64{a, b, c}, h.store.forUpdateCalls,
		"locks devem ser adquiridos em ordem crescente, sem repetição")
	assert.Nil(t, saldos[a], "item sem linha fica fora do mapa")
	assert.True(t, saldos[b].SaldoBase.Equal(dec("1")))
	assert.True(t, saldos[c].SaldoBase.Equal(dec("2")))
}
