package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/auth"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/cadastro"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/estoque"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/nfe"
	infrapdf "github.com/Antonio-JDev/sistema-S3E-connect/internal/infrastructure/pdf"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/infrastructure/postgres"
	httpRouter "github.com/Antonio-JDev/sistema-S3E-connect/internal/interfaces/http"
	"github.com/Antonio-JDev/sistema-S3E-connect/pkg/config"
	"github.com/Antonio-JDev/sistema-S3E-connect/pkg/logger"
	"github.com/Antonio-JDev/sistema-S3E-connect/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	unidadeRepo := postgres.NewUnidadeRepository(pool)
	fornecedorRepo := postgres.NewFornecedorRepository(pool)
	obraRepo := postgres.NewObraRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	entradaRepo := postgres.NewEntradaRepository(pool)
	saidaRepo := postgres.NewSaidaRepository(pool)
	estoqueRepo := postgres.NewEstoqueRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := estoque.NewLedger(log)
	romaneioPDF := infrapdf.NewMarotoRomaneioGenerator()
	importer := nfe.NewImporter()

	entradaUC := estoque.NewEntradaUseCase(txRunner, entradaRepo, itemRepo, unidadeRepo, ledger, log)
	saidaUC := estoque.NewSaidaUseCase(txRunner, saidaRepo, itemRepo, unidadeRepo, obraRepo, ledger, romaneioPDF, log)
	consultaUC := estoque.NewConsultaUseCase(estoqueRepo, itemRepo)
	cadastroUC := cadastro.NewUseCase(itemRepo, unidadeRepo, fornecedorRepo, obraRepo)
	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestIDMiddleware())

	httpMetrics := metrics.NewHTTPMetrics(cfg.App.Name)
	app.Use(httpMetrics.Middleware())
	app.Get("/metrics", httpMetrics.Handler())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sistema S3E API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EntradaUC:  entradaUC,
		SaidaUC:    saidaUC,
		ConsultaUC: consultaUC,
		CadastroUC: cadastroUC,
		AuthUC:     authUC,
		Importer:   importer,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
