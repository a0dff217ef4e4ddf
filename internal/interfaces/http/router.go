package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/usecase"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	ProductUC   *usecase.ProductUseCase
	AnalyticsUC *usecase.AnalyticsUseCase
	CustomerUC  *billing.CustomerUseCase
	SessionUC   *billing.SessionUseCase
	SubmitUC    *billing.SubmitInvoiceUseCase
	InvoiceUC   *billing.InvoiceQueryUseCase
	PDFUC       *billing.PDFUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	companyHandler := NewCompanyHandler(deps.CompanyUC)

	// Alta de empresa (público: es el primer paso del onboarding)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Perfil de la empresa del token (solo admin puede modificarlo)
	protected.Get("/company", companyHandler.Get)
	protected.Put("/company", RequireRole(entity.RoleAdmin), companyHandler.Update)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Billing sessions (protegido): el flujo del punto de venta
	sessions := protected.Group("/billing/sessions")
	sessionHandler := NewBillingSessionHandler(deps.SessionUC, deps.SubmitUC)
	sessions.Post("/", sessionHandler.Start)
	sessions.Get("/:id", sessionHandler.Get)
	sessions.Delete("/:id", sessionHandler.Discard)
	sessions.Post("/:id/items", sessionHandler.AddItem)
	sessions.Patch("/:id/items/:itemID", sessionHandler.UpdateItem)
	sessions.Delete("/:id/items/:itemID", sessionHandler.RemoveItem)
	sessions.Put("/:id/customer", sessionHandler.SelectCustomer)
	sessions.Put("/:id/round-totals", sessionHandler.SetRoundTotals)
	sessions.Post("/:id/submit", sessionHandler.Submit)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	// Analytics (protegido, solo admin)
	analytics := protected.Group("/analytics", RequireRole(entity.RoleAdmin))
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analytics.Get("/sales", analyticsHandler.SalesSummary)
}
