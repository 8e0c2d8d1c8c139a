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

	_ "github.com/estoque-pro/estoque-api/docs"
	"github.com/estoque-pro/estoque-api/internal/application/auth"
	"github.com/estoque-pro/estoque-api/internal/application/catalog"
	"github.com/estoque-pro/estoque-api/internal/application/inventory"
	"github.com/estoque-pro/estoque-api/internal/application/reports"
	"github.com/estoque-pro/estoque-api/internal/application/sales"
	infrapdf "github.com/estoque-pro/estoque-api/internal/infrastructure/pdf"
	"github.com/estoque-pro/estoque-api/internal/infrastructure/postgres"
	httpRouter "github.com/estoque-pro/estoque-api/internal/interfaces/http"
	"github.com/estoque-pro/estoque-api/pkg/config"
	"github.com/estoque-pro/estoque-api/pkg/logger"
)

// @title        Estoque API
// @version      1.0
// @description  API de control de estoque: catálogo, movimientos, ventas y reportes.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	categoryUC := catalog.NewCategoryUseCase(categoryRepo, productRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo, productRepo)
	productUC := catalog.NewProductUseCase(productRepo, categoryRepo, supplierRepo, movementRepo, saleRepo)
	movementUC := inventory.NewMovementUseCase(txRunner, productRepo, movementRepo)
	saleUC := sales.NewSaleUseCase(txRunner, productRepo, saleRepo)

	// PDF: reporte de estoque bajo mínimo
	stockReport := infrapdf.NewMarotoStockReport()
	reportUC := reports.NewReportUseCase(productRepo, stockReport)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Estoque API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CategoryUC: categoryUC,
		SupplierUC: supplierUC,
		ProductUC:  productUC,
		MovementUC: movementUC,
		SaleUC:     saleUC,
		ReportUC:   reportUC,
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

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
