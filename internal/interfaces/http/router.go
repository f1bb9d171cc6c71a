package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/auth"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/cadastro"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/estoque"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/nfe"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	EntradaUC  *estoque.EntradaUseCase
	SaidaUC    *estoque.SaidaUseCase
	ConsultaUC *estoque.ConsultaUseCase
	CadastroUC *cadastro.UseCase
	AuthUC     *auth.AuthUseCase
	Importer   *nfe.Importer
	JWTSecret  string
}

// Router registra as rotas da API. Leituras exigem apenas autenticação;
// mutações de documentos e cadastros exigem perfil admin ou almoxarife, e o
// registro de usuários é exclusivo do admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	opera := RequireRole(entity.PerfilAdmin, entity.PerfilAlmoxarife)

	// Auth (login público; registro restrito)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/registrar", AuthMiddleware(deps.JWTSecret), RequireRole(entity.PerfilAdmin), authHandler.Registrar)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de itens e unidades
	itens := protected.Group("/itens")
	itemHandler := NewItemHandler(deps.CadastroUC)
	itens.Post("/", opera, itemHandler.Create)
	itens.Get("/", itemHandler.List)
	itens.Get("/:id", itemHandler.GetByID)
	itens.Put("/:id", opera, itemHandler.Update)
	protected.Get("/unidades", itemHandler.ListUnidades)

	// Fornecedores
	fornecedores := protected.Group("/fornecedores")
	fornecedorHandler := NewFornecedorHandler(deps.CadastroUC)
	fornecedores.Post("/", opera, fornecedorHandler.Create)
	fornecedores.Get("/", fornecedorHandler.List)
	fornecedores.Get("/:id", fornecedorHandler.GetByID)
	fornecedores.Put("/:id", opera, fornecedorHandler.Update)

	// Obras
	obras := protected.Group("/obras")
	obraHandler := NewObraHandler(deps.CadastroUC)
	obras.Post("/", opera, obraHandler.Create)
	obras.Get("/", obraHandler.List)
	obras.Get("/:id", obraHandler.GetByID)
	obras.Put("/:id", opera, obraHandler.Update)

	// Entradas (compras)
	entradas := protected.Group("/entradas")
	entradaHandler := NewEntradaHandler(deps.EntradaUC, deps.Importer)
	entradas.Post("/", opera, entradaHandler.Create)
	entradas.Post("/importar-nfe", opera, entradaHandler.ImportarNFe)
	entradas.Get("/", entradaHandler.List)
	entradas.Get("/:id", entradaHandler.GetByID)
	entradas.Put("/:id", opera, entradaHandler.Update)
	entradas.Delete("/:id", opera, entradaHandler.Delete)

	// Saídas (consumo por obra)
	saidas := protected.Group("/saidas")
	saidaHandler := NewSaidaHandler(deps.SaidaUC)
	saidas.Post("/", opera, saidaHandler.Create)
	saidas.Get("/", saidaHandler.List)
	saidas.Get("/:id", saidaHandler.GetByID)
	saidas.Get("/:id/romaneio", saidaHandler.Romaneio)
	saidas.Put("/:id", opera, saidaHandler.Update)
	saidas.Delete("/:id", opera, saidaHandler.Delete)

	// Estoques (leitura)
	estoques := protected.Group("/estoques")
	estoqueHandler := NewEstoqueHandler(deps.ConsultaUC)
	estoques.Get("/", estoqueHandler.List)
	estoques.Get("/item/:id", estoqueHandler.GetByItem)
}
