package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dramirezh/puntoventa-api/internal/application/auth"
	"github.com/dramirezh/puntoventa-api/internal/application/checkout"
	"github.com/dramirezh/puntoventa-api/internal/application/reports"
	"github.com/dramirezh/puntoventa-api/internal/application/usecase"
	"github.com/dramirezh/puntoventa-api/internal/domain/repository"
	"github.com/dramirezh/puntoventa-api/internal/infrastructure/pdf"
	"github.com/dramirezh/puntoventa-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	SaleUC      *usecase.SaleUseCase
	ConfigUC    *usecase.ConfigUseCase
	CorteUC     *reports.CorteUseCase
	DashboardUC *reports.DashboardUseCase
	Checkout    *checkout.Service
	ConfigRepo  repository.ConfigRepository
	PDFGen      *pdf.TicketGenerator
	Kiosk       config.KioskConfig
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

	// Kiosco de autoservicio (sin JWT; su middleware valida sesión y flag)
	kioskHandler := NewKioskHandler(deps.Checkout, deps.ProductUC, deps.Kiosk)
	kiosk := api.Group("/kiosk", kioskHandler.KioskMiddleware())
	kiosk.Get("/cart", kioskHandler.Cart)
	kiosk.Post("/scan", kioskHandler.Scan)
	kiosk.Get("/products/:barcode", kioskHandler.Lookup)
	kiosk.Delete("/cart/items/:productId", kioskHandler.Remove)
	kiosk.Post("/cart/items/:productId/decrease", kioskHandler.Decrease)
	kiosk.Post("/pay", kioskHandler.Pay)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios
	usersGroup := protected.Group("/users")
	usersGroup.Get("/me", authHandler.Me)
	usersGroup.Put("/me/monto-inicial", authHandler.SetMontoInicial)
	usersGroup.Get("/", RequireAdmin(), authHandler.List)
	usersGroup.Put("/:id", RequireAdmin(), authHandler.Update)
	usersGroup.Delete("/:id", RequireAdmin(), authHandler.Delete)

	// Catálogo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/categories", productHandler.Categories)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireAdmin(), productHandler.Create)
	products.Put("/:id", RequireAdmin(), productHandler.Update)
	products.Post("/:id/stock", RequireAdmin(), productHandler.AdjustStock)
	products.Delete("/:id", RequireAdmin(), productHandler.Delete)

	// Caja del cajero
	cart := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.Checkout)
	cart.Get("/", cartHandler.Get)
	cart.Post("/items", cartHandler.Add)
	cart.Delete("/items/:productId", cartHandler.Remove)
	cart.Post("/items/:productId/decrease", cartHandler.Decrease)
	cart.Put("/tier", cartHandler.SetTier)
	cart.Delete("/", cartHandler.Clear)
	cart.Post("/pay", cartHandler.Pay)
	cart.Post("/hold", cartHandler.Hold)
	cart.Post("/resume/:saleId", cartHandler.Resume)

	// Ledger de ventas y corte de caja
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.CorteUC, deps.ConfigRepo, deps.PDFGen)
	sales.Get("/", saleHandler.List)
	sales.Get("/corte", saleHandler.Corte)
	sales.Get("/corte/pdf", saleHandler.CortePDF)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/ticket.pdf", saleHandler.TicketPDF)
	sales.Get("/:id/ticket.txt", saleHandler.TicketTXT)
	sales.Delete("/:id", RequireAdmin(), saleHandler.DeletePending)

	// Configuración del negocio
	configGroup := protected.Group("/config")
	configHandler := NewConfigHandler(deps.ConfigUC)
	configGroup.Get("/", configHandler.Get)
	configGroup.Put("/", RequireAdmin(), configHandler.Save)

	// Dashboard (solo admin)
	dashboard := protected.Group("/dashboard", RequireAdmin())
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/top-products", dashboardHandler.TopProducts)
	dashboard.Get("/series/daily", dashboardHandler.DailySeries)
	dashboard.Get("/series/hourly", dashboardHandler.HourlySeries)
	dashboard.Get("/series/weekday", dashboardHandler.WeekdaySeries)
}
