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

	"github.com/tu-usuario/factura-pyme/internal/application/assistant"
	"github.com/tu-usuario/factura-pyme/internal/application/auth"
	"github.com/tu-usuario/factura-pyme/internal/application/ledger"
	"github.com/tu-usuario/factura-pyme/internal/application/ports"
	"github.com/tu-usuario/factura-pyme/internal/application/usecase"
	infraai "github.com/tu-usuario/factura-pyme/internal/infrastructure/ai"
	infrapdf "github.com/tu-usuario/factura-pyme/internal/infrastructure/pdf"
	"github.com/tu-usuario/factura-pyme/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/factura-pyme/internal/interfaces/http"
	"github.com/tu-usuario/factura-pyme/pkg/config"
	"github.com/tu-usuario/factura-pyme/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	allocator := ledger.NewNumberAllocator()
	createUC := ledger.NewInvoiceUseCase(txRunner, allocator)
	queryUC := ledger.NewInvoiceQueryUseCase(txRunner, allocator, customerRepo, invoiceRepo, paymentRepo)
	paymentsUC := ledger.NewApplyPaymentUseCase(txRunner)
	reverserUC := ledger.NewReversePaymentUseCase(txRunner)
	receivablesUC := ledger.NewReceivablesUseCase(txRunner, customerRepo)

	customerUC := usecase.NewCustomerUseCase(customerRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	settingsUC := usecase.NewSettingsUseCase(settingRepo)
	dashboardUC := usecase.NewDashboardUseCase(analyticsRepo)

	// PDF: factura imprimible para entregar o reenviar al cliente
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := ledger.NewInvoicePDFUseCase(customerRepo, productRepo, invoiceRepo, settingRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.Password != "" {
		if err := authUC.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("crear usuario administrador inicial")
		}
	}

	// Asistente conversacional: solo si hay proveedor LLM configurado.
	var assistantUC *assistant.UseCase
	var llm ports.LLMService
	switch cfg.AI.Provider {
	case "anthropic":
		llm = infraai.NewAnthropicService(cfg.AI.APIKey, cfg.AI.Model)
	case "gemini":
		llm = infraai.NewGeminiService(cfg.AI.APIKey, cfg.AI.Model)
	case "":
		log.Info().Msg("asistente desactivado (AI_PROVIDER vacío)")
	default:
		log.Fatal().Str("provider", cfg.AI.Provider).Msg("proveedor LLM no soportado")
	}
	if llm != nil {
		assistantUC = assistant.NewUseCase(
			llm, assistant.NewSessionStore(),
			customerUC, productUC, createUC, paymentsUC,
			customerRepo, productRepo, invoiceRepo,
		)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// (swagger.json se genera con swag a partir de los comentarios godoc)
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Factura PyME API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		ProductUC:   productUC,
		SettingsUC:  settingsUC,
		DashboardUC: dashboardUC,
		CreateUC:    createUC,
		QueryUC:     queryUC,
		PaymentsUC:  paymentsUC,
		ReverserUC:  reverserUC,
		Receivables: receivablesUC,
		PDFUC:       pdfUC,
		AssistantUC: assistantUC,
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
