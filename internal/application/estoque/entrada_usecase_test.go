package estoque_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/dto"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain"
)

func TestCreateEntrada_DerivaCustoESomaSaldo(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	cabo := h.seedItem("CABO-2.5", un)

	// 100 m de cabo por R$ 250,00: custo unitário derivado de 2,50/m.
	resp, err := h.entradaUC.CreateEntrada(context.Background(), 1, dto.CriarEntradaRequest{
		NFNumero: "12345",
		Itens: []dto.EntradaItemRequest{
			{ItemID: cabo, QuantidadeBase: dec("100"), ValorTotal: dec("250.00")},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Itens, 1)

	assert.True(t, resp.Itens[0].ValorUnitUltimaCompra.Equal(dec("2.5")),
		"valor_unit_ultima_compra = valor_total / quantidade_base")
	assert.True(t, h.saldo(cabo).Equal(dec("100")), "saldo criado preguiçosamente na primeira entrada")
}

func TestCreateEntrada_ConverteQuantidadePorUnidade(t *testing.T) {
	h := newHarness()
	rolo := h.seedUnidade("RL100", "100")
	cabo := h.seedItem("CABO-4", rolo)

	// 2 rolos de 100 m viram 200 na unidade base.
	resp, err := h.entradaUC.CreateEntrada(context.Background(), 1, dto.CriarEntradaRequest{
		Itens: []dto.EntradaItemRequest{
			{ItemID: cabo, Quantidade: dec("2"), UnidadeID: &rolo, ValorTotal: dec("500.00")},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Itens[0].QuantidadeBase.Equal(dec("200")))
	assert.True(t, resp.Itens[0].ValorUnitUltimaCompra.Equal(dec("2.5")),
		"custo unitário calculado sobre a quantidade na unidade base")
	assert.True(t, h.saldo(cabo).Equal(dec("200")))
}

func TestCreateEntrada_LinhaInvalida_NadaAplicado(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	a := h.seedItem("A", un)
	b := h.seedItem("B", un)

	casos := []struct {
		nome  string
		itens []dto.EntradaItemRequest
		want  error
	}{
		{"sem linhas", nil, domain.ErrInvalidInput},
		{"quantidade zero", []dto.EntradaItemRequest{
			{ItemID: a, QuantidadeBase: dec("10"), ValorTotal: dec("5")},
			{ItemID: b, QuantidadeBase: decimal.Zero, ValorTotal: dec("5")},
		}, domain.ErrInvalidInput},
		{"valor negativo", []dto.EntradaItemRequest{
			{ItemID: a, QuantidadeBase: dec("10"), ValorTotal: dec("-1")},
		}, domain.ErrInvalidInput},
		{"item inexistente", []dto.EntradaItemRequest{
			{ItemID: a, QuantidadeBase: dec("10"), ValorTotal: dec("5")},
			{ItemID: 9999, QuantidadeBase: dec("1"), ValorTotal: dec("1")},
		}, domain.ErrNotFound},
	}
	for _, tc := range casos {
		t.Run(tc.nome, func(t *testing.T) {
			_, err := h.entradaUC.CreateEntrada(context.Background(), 1, dto.CriarEntradaRequest{Itens: tc.itens})
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, h.saldo(a).IsZero(), "linha boa não pode ter sido aplicada")
			assert.True(t, h.saldo(b).IsZero())
			assert.Empty(t, h.store.entradas, "nenhum cabeçalho pode ter sido gravado")
		})
	}
}

func TestCreateEntrada_ValorZero_CustoZero(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("UN", "1")
	brinde := h.seedItem("BRINDE", un)

	// Doação/bonificação: valor total zero é aceito e o custo derivado é zero.
	resp, err := h.entradaUC.CreateEntrada(context.Background(), 1, dto.CriarEntradaRequest{
		Itens: []dto.EntradaItemRequest{
			{ItemID: brinde, QuantidadeBase: dec("10"), ValorTotal: decimal.Zero},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Itens[0].ValorUnitUltimaCompra.IsZero())
	assert.True(t, h.saldo(brinde).Equal(dec("10")))
}

func TestCreateEntrada_ConservacaoDecimal(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	cabo := h.seedItem("CABO-FINO", un)

	// 300 linhas de 0.333333 m: aritmética decimal não acumula erro binário.
	itens := make([]dto.EntradaItemRequest, 300)
	for i := range itens {
		itens[i] = dto.EntradaItemRequest{ItemID: cabo, QuantidadeBase: dec("0.333333"), ValorTotal: dec("1")}
	}
	_, err := h.entradaUC.CreateEntrada(context.Background(), 1, dto.CriarEntradaRequest{Itens: itens})
	require.NoError(t, err)

	assert.True(t, h.saldo(cabo).Equal(dec("99.9999")),
		"300 * 0.333333 deve fechar exato em decimal, saldo %s", h.saldo(cabo))
}

func TestDeleteEntrada_ReverteSaldo(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	cabo := h.seedItem("CABO-2.5", un)

	entrada, err := h.entradaUC.CreateEntrada(context.Background(), 1, dto.CriarEntradaRequest{
		Itens: []dto.EntradaItemRequest{
			{ItemID: cabo, QuantidadeBase: dec("100"), ValorTotal: dec("250")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, h.entradaUC.DeleteEntrada(context.Background(), entrada.ID))

	assert.True(t, h.saldo(cabo).IsZero(), "exclusão da entrada devolve o saldo ao estado anterior")
	assert.Empty(t, h.store.entradaItens)
	assert.Empty(t, h.store.entradas)
}

func TestDeleteEntrada_PisoEmZeroQuandoSaldoJaConsumido(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	cabo := h.seedItem("CABO-2.5", un)

	entrada, err := h.entradaUC.CreateEntrada(context.Background(), 1, dto.CriarEntradaRequest{
		Itens: []dto.EntradaItemRequest{
			{ItemID: cabo, QuantidadeBase: dec("100"), ValorTotal: dec("250")},
		},
	})
	require.NoError(t, err)

	// Consome 40 m antes de excluir a compra de 100 m.
	_, err = h.saidaUC.CreateSaida(context.Background(), 1, dto.CriarSaidaRequest{
		Itens: []dto.SaidaItemRequest{{ItemID: cabo, QuantidadeBase: dec("40")}},
	})
	require.NoError(t, err)
	require.True(t, h.saldo(cabo).Equal(dec("60")))

	require.NoError(t, h.entradaUC.DeleteEntrada(context.Background(), entrada.ID))

	assert.True(t, h.saldo(cabo).IsZero(),
		"60 - 100 aplicaria saldo negativo; a reversão corta no zero")
}

func TestDeleteEntrada_Inexistente(t *testing.T) {
	h := newHarness()
	err := h.entradaUC.DeleteEntrada(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetEntrada_Inexistente(t *testing.T) {
	h := newHarness()
	_, err := h.entradaUC.GetEntrada(context.Background(), 123)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetEntrada_LeituraNaoMuta(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	cabo := h.seedItem("CABO-2.5", un)

	criada, err := h.entradaUC.CreateEntrada(context.Background(), 1, dto.CriarEntradaRequest{
		Itens: []dto.EntradaItemRequest{
			{ItemID: cabo, QuantidadeBase: dec("100"), ValorTotal: dec("250.00")},
		},
	})
	require.NoError(t, err)

	primeira, err := h.entradaUC.GetEntrada(context.Background(), criada.ID)
	require.NoError(t, err)
	segunda, err := h.entradaUC.GetEntrada(context.Background(), criada.ID)
	require.NoError(t, err)

	assert.Equal(t, primeira, segunda, "leituras repetidas devolvem o mesmo documento")
	assert.True(t, h.saldo(cabo).Equal(dec("100")), "consulta não altera saldo")
}

func TestUpdateEntrada_SomenteCabecalho(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	cabo := h.seedItem("CABO-2.5", un)

	entrada, err := h.entradaUC.CreateEntrada(context.Background(), 1, dto.CriarEntradaRequest{
		NFNumero: "111",
		Itens: []dto.EntradaItemRequest{
			{ItemID: cabo, QuantidadeBase: dec("50"), ValorTotal: dec("100")},
		},
	})
	require.NoError(t, err)

	atualizada, err := h.entradaUC.UpdateEntrada(context.Background(), entrada.ID, dto.AtualizarEntradaRequest{
		NFNumero: "222",
	})
	require.NoError(t, err)

	assert.Equal(t, "222", atualizada.NFNumero)
	require.Len(t, atualizada.Itens, 1, "linhas permanecem intactas")
	assert.True(t, h.saldo(cabo).Equal(dec("50")), "atualizar cabeçalho não toca o saldo")
}
