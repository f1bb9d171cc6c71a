package nfe_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/nfe"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain"
)

func decFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

const xmlNFeValida = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc versao="4.00" xmlns="http://www.portalfiscal.inf.br/nfe">
  <NFe>
    <infNFe Id="NFe35230811222333000181550010000012341000012349" versao="4.00">
      <ide>
        <nNF>1234</nNF>
      </ide>
      <emit>
        <CNPJ>11222333000181</CNPJ>
        <xNome>Distribuidora Eletrica Ltda</xNome>
      </emit>
      <det nItem="1">
        <prod>
          <cProd>CB-250</cProd>
          <xProd>CABO FLEX 2,5MM AZUL</xProd>
          <uCom>M</uCom>
          <qCom>100.0000</qCom>
          <vProd>250.00</vProd>
        </prod>
      </det>
      <det nItem="2">
        <prod>
          <cProd>DJ-20</cProd>
          <xProd>DISJUNTOR 20A</xProd>
          <uCom>UN</uCom>
          <qCom>12.0000</qCom>
          <vProd>180.00</vProd>
        </prod>
      </det>
    </infNFe>
  </NFe>
</nfeProc>`

func TestParse_NotaValida(t *testing.T) {
	imp := nfe.NewImporter()
	pre, err := imp.Parse([]byte(xmlNFeValida))
	require.NoError(t, err)

	assert.Equal(t, "35230811222333000181550010000012341000012349", pre.NFChave,
		"chave sem o prefixo NFe do atributo Id")
	assert.Equal(t, "1234", pre.NFNumero)
	assert.Equal(t, "11222333000181", pre.EmitenteCNPJ)
	assert.Equal(t, "Distribuidora Eletrica Ltda", pre.EmitenteNome)

	require.Len(t, pre.Produtos, 2)
	assert.Equal(t, "CB-250", pre.Produtos[0].Codigo)
	assert.Equal(t, "CABO FLEX 2,5MM AZUL", pre.Produtos[0].Descricao)
	assert.Equal(t, "M", pre.Produtos[0].Unidade)
	assert.True(t, pre.Produtos[0].Quantidade.Equal(decFromString(t, "100")))
	assert.True(t, pre.Produtos[0].ValorTotal.Equal(decFromString(t, "250")))
	assert.Equal(t, "DJ-20", pre.Produtos[1].Codigo)
}

func TestParse_XMLInvalido(t *testing.T) {
	imp := nfe.NewImporter()
	_, err := imp.Parse([]byte("isto não é xml <"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParse_SemInfNFe(t *testing.T) {
	imp := nfe.NewImporter()
	_, err := imp.Parse([]byte(`<?xml version="1.0"?><outra><coisa/></outra>`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParse_NotaSemProdutos(t *testing.T) {
	imp := nfe.NewImporter()
	xml := `<?xml version="1.0"?><NFe><infNFe Id="NFe123"><ide><nNF>1</nNF></ide></infNFe></NFe>`
	_, err := imp.Parse([]byte(xml))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nota sem linha de produto não serve de pré-entrada")
}

func TestParse_QuantidadeMalformada(t *testing.T) {
	imp := nfe.NewImporter()
	xml := `<?xml version="1.0"?><NFe><infNFe Id="NFe123">
	  <det><prod><cProd>X</cProd><qCom>abc</qCom><vProd>1.00</vProd></prod></det>
	</infNFe></NFe>`
	_, err := imp.Parse([]byte(xml))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
