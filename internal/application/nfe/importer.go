// Package nfe faz a pré-importação de uma NF-e (modelo 55): lê o XML da nota
// e devolve as linhas de produto para o operador mapear aos itens do catálogo
// antes de confirmar a entrada. Somente leitura; nada é persistido e o XML
// não é validado quanto à assinatura.
package nfe

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain"
)

// ProdutoNFe é uma linha <det> da nota.
type ProdutoNFe struct {
	Codigo     string          `json:"codigo"`     // cProd do emitente
	Descricao  string          `json:"descricao"`  // xProd
	Unidade    string          `json:"unidade"`    // uCom
	Quantidade decimal.Decimal `json:"quantidade"` // qCom
	ValorTotal decimal.Decimal `json:"valor_total"` // vProd
}

// PreEntrada é o resultado da pré-importação: dados do cabeçalho para a
// entrada e as linhas ainda não mapeadas ao catálogo.
type PreEntrada struct {
	NFNumero       string       `json:"nf_numero"`
	NFChave        string       `json:"nf_chave"`
	EmitenteCNPJ   string       `json:"emitente_cnpj"`
	EmitenteNome   string       `json:"emitente_nome"`
	Produtos       []ProdutoNFe `json:"produtos"`
}

// Importer interpreta o XML de NF-e.
type Importer struct{}

// NewImporter constrói o importador.
func NewImporter() *Importer { return &Importer{} }

// Parse lê o XML (nfeProc ou NFe na raiz) e extrai cabeçalho e produtos.
func (i *Importer) Parse(xmlData []byte) (*PreEntrada, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlData); err != nil {
		return nil, domain.ErrInvalidInput
	}

	infNFe := doc.FindElement("//infNFe")
	if infNFe == nil {
		return nil, domain.ErrInvalidInput
	}

	pre := &PreEntrada{
		NFChave: strings.TrimPrefix(infNFe.SelectAttrValue("Id", ""), "NFe"),
	}
	if ide := infNFe.FindElement("ide"); ide != nil {
		pre.NFNumero = textOf(ide, "nNF")
	}
	if emit := infNFe.FindElement("emit"); emit != nil {
		pre.EmitenteCNPJ = textOf(emit, "CNPJ")
		pre.EmitenteNome = textOf(emit, "xNome")
	}

	for _, det := range infNFe.FindElements("det") {
		prod := det.FindElement("prod")
		if prod == nil {
			continue
		}
		qtd, err := parseDecimal(textOf(prod, "qCom"))
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		valor, err := parseDecimal(textOf(prod, "vProd"))
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		pre.Produtos = append(pre.Produtos, ProdutoNFe{
			Codigo:     textOf(prod, "cProd"),
			Descricao:  textOf(prod, "xProd"),
			Unidade:    textOf(prod, "uCom"),
			Quantidade: qtd,
			ValorTotal: valor,
		})
	}
	if len(pre.Produtos) == 0 {
		return nil, domain.ErrInvalidInput
	}
	return pre, nil
}

func textOf(parent *etree.Element, tag string) string {
	if el := parent.FindElement(tag); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
