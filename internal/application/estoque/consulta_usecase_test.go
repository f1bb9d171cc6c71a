package estoque_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/dto"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain"
)

func TestGetSaldo_ItemSemMovimento_RespondeZero(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("UN", "1")
	item := h.seedItem("NOVO", un)

	resp, err := h.consultaUC.GetSaldo(context.Background(), item)
	require.NoError(t, err, "item cadastrado sem entradas não é erro de consulta")
	assert.True(t, resp.SaldoBase.IsZero())
	assert.Equal(t, "NOVO", resp.ItemCodigo)
}

func TestGetSaldo_ItemInexistente(t *testing.T) {
	h := newHarness()
	_, err := h.consultaUC.GetSaldo(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListSaldos_AbaixoMinimo(t *testing.T) {
	h := newHarness()
	un := h.seedUnidade("M", "1")
	ok := h.seedItem("OK", un)
	alerta := h.seedItem("ALERTA", un)
	h.store.itens[ok].EstoqueMinimo = dec("10")
	h.store.itens[alerta].EstoqueMinimo = dec("50")
	h.seedEstoque(ok, "100")
	h.seedEstoque(alerta, "20")

	todos, err := h.consultaUC.ListSaldos(context.Background(), dto.ListarEstoquesRequest{})
	require.NoError(t, err)
	assert.Len(t, todos, 2)

	emAlerta, err := h.consultaUC.ListSaldos(context.Background(), dto.ListarEstoquesRequest{AbaixoMinimo: true})
	require.NoError(t, err)
	require.Len(t, emAlerta, 1)
	assert.Equal(t, alerta, emAlerta[0].ItemID)
	assert.Equal(t, "ALERTA", emAlerta[0].ItemCodigo)
}
