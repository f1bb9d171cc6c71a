package estoque

import (
	"context"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, entregando
// repositórios atados a essa tx. Garante o tudo-ou-nada dos documentos:
// qualquer erro devolvido por fn desfaz cabeçalho, linhas e saldos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entradaRepo repository.EntradaRepository,
		saidaRepo repository.SaidaRepository,
		estoqueRepo repository.EstoqueRepository,
	) error) error
}

// RomaneioPDFGenerator gera o romaneio (guia de remessa) de uma saída.
type RomaneioPDFGenerator interface {
	GerarRomaneio(ctx context.Context, saida *entity.Saida, obra *entity.Obra) ([]byte, error)
}
