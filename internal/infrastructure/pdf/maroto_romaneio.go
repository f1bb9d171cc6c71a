// Package pdf implementa a geração do romaneio de saída (guia de remessa de
// material para a obra).
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Sistema S3E Connect  │  Romaneio N° + Data         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OBRA: código + nome + cliente + responsável                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Código | Descrição | Qtd (base) | Valor Ref.       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ASSINATURAS: retirado por / conferido por                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/estoque"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
)

var (
	corPrimaria = &props.Color{Red: 0, Green: 70, Blue: 127}
	corCinza    = &props.Color{Red: 100, Green: 100, Blue: 100}
	corBranca   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ estoque.RomaneioPDFGenerator = (*MarotoRomaneioGenerator)(nil)

// MarotoRomaneioGenerator implementa estoque.RomaneioPDFGenerator usando Maroto v2.
type MarotoRomaneioGenerator struct{}

// NewMarotoRomaneioGenerator constrói o gerador.
func NewMarotoRomaneioGenerator() *MarotoRomaneioGenerator { return &MarotoRomaneioGenerator{} }

// GerarRomaneio gera o PDF do romaneio e devolve seus bytes.
func (g *MarotoRomaneioGenerator) GerarRomaneio(
	_ context.Context,
	saida *entity.Saida,
	obra *entity.Obra,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Romaneio de Saída %d", saida.ID), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(cabecalhoRow(saida))
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.5}))
	m.AddRows(obraRow(obra))
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.3}))

	m.AddRows(tabelaCabecalhoRow())
	for _, r := range tabelaItemRows(saida.Itens) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: corCinza, Thickness: 0.3}))
	m.AddRows(assinaturasRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar romaneio: %w", err)
	}
	return doc.GetBytes(), nil
}

// cabecalhoRow: nome do sistema (esq) e número + data do romaneio (dir).
func cabecalhoRow(saida *entity.Saida) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("S3E Engenharia Elétrica", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: corPrimaria, Top: 1,
			}),
			text.New("Controle de Almoxarifado", props.Text{
				Size: 9, Top: 9, Color: corCinza,
			}),
		),
		col.New(5).Add(
			text.New("ROMANEIO DE SAÍDA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: corPrimaria, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", saida.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+saida.Data.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: corCinza,
			}),
		),
	)
}

// obraRow: dados da obra de destino; saídas avulsas mostram traço.
func obraRow(obra *entity.Obra) core.Row {
	nome := "—"
	detalhe := "Saída sem obra vinculada"
	if obra != nil {
		nome = fmt.Sprintf("%s — %s", obra.Codigo, obra.Nome)
		detalhe = fmt.Sprintf("Cliente: %s   |   Responsável: %s",
			naoVazio(obra.Cliente, "—"),
			naoVazio(obra.Responsavel, "—"),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("OBRA DE DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: corPrimaria, Top: 1,
			}),
			text.New(nome, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(detalhe, props.Text{Size: 8, Top: 12, Color: corCinza}),
		),
	)
}

func tabelaCabecalhoRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: corBranca, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Descrição do material", 5, align.Left),
		h("Qtd (unid. base)", 3, align.Right),
		h("Valor Ref.", 2, align.Right),
	)
}

// tabelaItemRows: uma linha por item da saída.
func tabelaItemRows(itens []*entity.SaidaItem) []core.Row {
	result := make([]core.Row, 0, len(itens))
	for _, it := range itens {
		codigo, descricao := "", fmt.Sprintf("item %d", it.ItemID)
		if it.Item != nil {
			codigo = it.Item.Codigo
			descricao = it.Item.Descricao
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(codigo, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(5).Add(text.New(descricao, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New(
				it.QuantidadeBase.StringFixed(3),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"R$ "+it.ValorUnitReferencia.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// assinaturasRow: campos de assinatura de retirada e conferência.
func assinaturasRow() core.Row {
	campo := func(label string) core.Col {
		return col.New(6).Add(
			text.New("_________________________________", props.Text{
				Size: 9, Align: align.Center, Top: 14, Color: corCinza,
			}),
			text.New(label, props.Text{
				Size: 8, Align: align.Center, Top: 20, Color: corCinza,
			}),
		)
	}
	return row.New(26).Add(
		campo("Retirado por"),
		campo("Conferido por"),
	)
}

func naoVazio(s, alternativa string) string {
	if s != "" {
		return s
	}
	return alternativa
}
