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

	"github.com/jhoicas/panaderia-api/internal/application/audit"
	"github.com/jhoicas/panaderia-api/internal/application/catalog"
	"github.com/jhoicas/panaderia-api/internal/application/inventory"
	"github.com/jhoicas/panaderia-api/internal/application/orders"
	infrapdf "github.com/jhoicas/panaderia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/panaderia-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/panaderia-api/internal/interfaces/http"
	"github.com/jhoicas/panaderia-api/pkg/config"
	"github.com/jhoicas/panaderia-api/pkg/logger"
)

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

	productRepo := postgres.NewProductRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditor := audit.NewNotifier(auditRepo, log)
	movementUC := inventory.NewMovementUseCase(txRunner, productRepo, branchRepo, invRepo, movRepo, auditor)
	orderUC := orders.NewOrderUseCase(txRunner, movementUC, productRepo, branchRepo, invRepo, orderRepo, auditor)
	catalogUC := catalog.NewUseCase(productRepo, branchRepo, categoryRepo)
	tickets := infrapdf.NewTicketGenerator()

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
		Title:    "Panadería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrderUC:     orderUC,
		MovementUC:  movementUC,
		CatalogUC:   catalogUC,
		ProductRepo: productRepo,
		BranchRepo:  branchRepo,
		Tickets:     tickets,
		JWTSecret:   cfg.JWT.Secret,
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
