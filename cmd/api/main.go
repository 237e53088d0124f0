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
	"github.com/redis/go-redis/v9"

	"github.com/dramirezh/puntoventa-api/internal/application/auth"
	"github.com/dramirezh/puntoventa-api/internal/application/checkout"
	"github.com/dramirezh/puntoventa-api/internal/application/reports"
	"github.com/dramirezh/puntoventa-api/internal/application/usecase"
	"github.com/dramirezh/puntoventa-api/internal/infrastructure/cartstore"
	infrapdf "github.com/dramirezh/puntoventa-api/internal/infrastructure/pdf"
	"github.com/dramirezh/puntoventa-api/internal/infrastructure/postgres"
	httpRouter "github.com/dramirezh/puntoventa-api/internal/interfaces/http"
	"github.com/dramirezh/puntoventa-api/pkg/config"
	"github.com/dramirezh/puntoventa-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	configRepo := postgres.NewConfigRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Carritos de sesión en Redis; si no hay Redis disponible (entorno de
	// desarrollo) se cae a un store en memoria y los carritos no sobreviven
	// reinicios.
	var store checkout.CartStore
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, carritos en memoria")
		store = cartstore.NewMemoryStore()
	} else {
		store = cartstore.NewRedisStore(redisClient, time.Duration(cfg.Redis.CartTTLMin)*time.Minute)
		defer redisClient.Close()
	}

	var engineOpts []checkout.Option
	if cfg.App.VolumeDiscounts {
		engineOpts = append(engineOpts, checkout.WithVolumeDiscounts())
	}
	engine := checkout.NewEngine(txRunner, productRepo, saleRepo, configRepo, engineOpts...)
	checkoutSvc := checkout.NewService(engine, store, productRepo)

	productUC := usecase.NewProductUseCase(productRepo)
	saleUC := usecase.NewSaleUseCase(saleRepo)
	configUC := usecase.NewConfigUseCase(configRepo)
	corteUC := reports.NewCorteUseCase(saleRepo, userRepo)
	dashboardUC := reports.NewDashboardUseCase(reportRepo, saleRepo, productRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGen := infrapdf.NewTicketGenerator()

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
		Title:    "Punto de Venta API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		SaleUC:      saleUC,
		ConfigUC:    configUC,
		CorteUC:     corteUC,
		DashboardUC: dashboardUC,
		Checkout:    checkoutSvc,
		ConfigRepo:  configRepo,
		PDFGen:      pdfGen,
		Kiosk:       cfg.Kiosk,
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
