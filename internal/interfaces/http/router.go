package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/factura-pyme/internal/application/assistant"
	"github.com/tu-usuario/factura-pyme/internal/application/auth"
	"github.com/tu-usuario/factura-pyme/internal/application/ledger"
	"github.com/tu-usuario/factura-pyme/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CustomerUC  *usecase.CustomerUseCase
	ProductUC   *usecase.ProductUseCase
	SettingsUC  *usecase.SettingsUseCase
	DashboardUC *usecase.DashboardUseCase
	CreateUC    *ledger.InvoiceUseCase
	QueryUC     *ledger.InvoiceQueryUseCase
	PaymentsUC  *ledger.ApplyPaymentUseCase
	ReverserUC  *ledger.ReversePaymentUseCase
	Receivables *ledger.ReceivablesUseCase
	PDFUC       *ledger.InvoicePDFUseCase
	AssistantUC *assistant.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público solo el login)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/change-password", authHandler.ChangePassword)

	adminOnly := RequireRole("admin")

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Receivables, deps.PaymentsUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/export", customerHandler.ExportCSV)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)
	customers.Get("/:id/statement", customerHandler.Statement)
	customers.Post("/:id/payments", customerHandler.Pay)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateUC, deps.QueryUC, deps.PaymentsUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/export", invoiceHandler.ExportCSV)
	invoices.Post("/draft", invoiceHandler.Start)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Delete("/:id", adminOnly, invoiceHandler.Delete)
	invoices.Post("/:id/items", invoiceHandler.AddItem)
	invoices.Post("/:id/finalize", invoiceHandler.Finalize)
	invoices.Post("/:id/duplicate", invoiceHandler.Duplicate)
	invoices.Get("/:id/payments", invoiceHandler.ListPayments)
	invoices.Post("/:id/payments", invoiceHandler.Pay)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	// Payments (reversa)
	paymentHandler := NewPaymentHandler(deps.ReverserUC)
	protected.Delete("/payments/:id", adminOnly, paymentHandler.Reverse)

	// Receivables
	receivablesHandler := NewReceivablesHandler(deps.Receivables)
	protected.Get("/receivables", receivablesHandler.Summary)

	// Dashboard y settings
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.SettingsUC)
	protected.Get("/dashboard", dashboardHandler.Stats)
	protected.Get("/settings", dashboardHandler.GetSettings)
	protected.Put("/settings", adminOnly, dashboardHandler.UpdateSettings)

	// Asistente conversacional
	if deps.AssistantUC != nil {
		assistantHandler := NewAssistantHandler(deps.AssistantUC)
		protected.Post("/assistant/chat", assistantHandler.Chat)
	}
}
