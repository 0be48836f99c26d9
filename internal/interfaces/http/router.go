package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/restobar-api/internal/application/analytics"
	"github.com/jhoicas/restobar-api/internal/application/auth"
	"github.com/jhoicas/restobar-api/internal/application/billing"
	"github.com/jhoicas/restobar-api/internal/application/cashregister"
	"github.com/jhoicas/restobar-api/internal/application/inventory"
	"github.com/jhoicas/restobar-api/internal/application/tables"
	"github.com/jhoicas/restobar-api/internal/application/usecase"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	ArticleUC        *usecase.ArticleUseCase
	WarehouseUC      *usecase.WarehouseUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	KardexUC         *inventory.KardexUseCase
	StockUC          *inventory.StockUseCase
	KardexHTML       inventory.KardexRenderer
	KardexPDF        inventory.KardexRenderer
	CashRegisterUC   *cashregister.UseCase
	CreateInvoice    *billing.CreateInvoiceUseCase
	CustomerUC       *billing.CustomerUseCase
	ReceivableUC     *billing.ReceivableUseCase
	TablesUC         *tables.UseCase
	MarginsUC        *appanalytics.MarginsUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	JWTSecret        string
}

const (
	admin     = entity.RoleAdmin
	cajero    = entity.RoleCajero
	mesero    = entity.RoleMesero
	bodeguero = entity.RoleBodeguero
)

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token). Cualquier rol autenticado pasa
	// salvo que la ruta pida roles concretos.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole())
	adminOnly := RequireRole(admin)
	stockRoles := RequireRole(admin, bodeguero)
	cashRoles := RequireRole(admin, cajero)

	protected.Get("/auth/me", authHandler.Me)

	// Usuarios (admin)
	users := protected.Group("/users", adminOnly)
	users.Post("/", authHandler.Register)
	users.Get("/", authHandler.ListUsers)
	users.Put("/:id", authHandler.UpdateUser)

	// Artículos y kits
	articles := protected.Group("/articles")
	articleHandler := NewArticleHandler(deps.ArticleUC)
	articles.Get("/", articleHandler.List)
	articles.Get("/:code", articleHandler.GetByCode)
	articles.Get("/:code/components", articleHandler.Components)
	articles.Post("/", stockRoles, articleHandler.Create)
	articles.Put("/:code", stockRoles, articleHandler.Update)
	articles.Put("/:code/components", stockRoles, articleHandler.ReplaceComponents)

	// Bodegas
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:code", warehouseHandler.GetByCode)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Put("/:code", adminOnly, warehouseHandler.Update)

	// Inventario: transacciones, kardex y existencias
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.KardexUC, deps.StockUC, deps.KardexHTML, deps.KardexPDF)
	inv.Post("/purchases", stockRoles, inventoryHandler.Purchases)
	inv.Post("/consumptions", stockRoles, inventoryHandler.Consumptions)
	inv.Post("/adjustments", stockRoles, inventoryHandler.Adjustments)
	inv.Post("/transfers", stockRoles, inventoryHandler.Transfers)
	inv.Get("/kardex", RequireRole(admin, bodeguero, cajero), inventoryHandler.Kardex)
	inv.Get("/stock", RequireRole(admin, bodeguero, cajero), inventoryHandler.Stock)

	// Cajas y sesiones
	cash := protected.Group("/cash-registers")
	cashHandler := NewCashRegisterHandler(deps.CashRegisterUC)
	cash.Post("/", adminOnly, cashHandler.Create)
	cash.Get("/", cashRoles, cashHandler.List)
	cash.Post("/sessions/open", cashRoles, cashHandler.Open)
	cash.Post("/sessions/close", cashRoles, cashHandler.Close)
	cash.Get("/sessions/current", cashRoles, cashHandler.Current)
	cash.Get("/sessions/:id", cashRoles, cashHandler.GetSession)
	cash.Get("/sessions/:id/report.pdf", cashRoles, cashHandler.ClosureReport)

	// Facturas
	invoices := protected.Group("/invoices", cashRoles)
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)

	// Clientes, condiciones de pago y cartera
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.ReceivableUC)
	customers := protected.Group("/customers", cashRoles)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Get("/:id/statement", customerHandler.Statement)
	terms := protected.Group("/payment-terms", cashRoles)
	terms.Get("/", customerHandler.ListTerms)
	terms.Post("/", adminOnly, customerHandler.CreateTerm)
	receivables := protected.Group("/receivables", cashRoles)
	receivables.Post("/", customerHandler.CreateReceivable)
	receivables.Post("/:id/payments", customerHandler.ApplyPayment)

	// Zonas, mesas y reservas
	tableHandler := NewTableHandler(deps.TablesUC)
	protected.Get("/zones", tableHandler.ListZones)
	protected.Post("/zones", adminOnly, tableHandler.CreateZone)
	tbl := protected.Group("/tables")
	tbl.Get("/", tableHandler.ListTables)
	tbl.Post("/", adminOnly, tableHandler.CreateTable)
	tbl.Get("/:code", tableHandler.GetTable)
	tbl.Post("/:code/claim", RequireRole(admin, mesero), tableHandler.Claim)
	tbl.Post("/:code/lines", RequireRole(admin, mesero), tableHandler.AddLine)
	tbl.Post("/:code/send", RequireRole(admin, mesero), tableHandler.Send)
	tbl.Put("/:code/status", RequireRole(admin, mesero, cajero), tableHandler.SetStatus)
	tbl.Post("/:code/release", RequireRole(admin, mesero), tableHandler.Release)
	tbl.Get("/:code/reservations", tableHandler.ListReservations)
	tbl.Post("/:code/reservations", tableHandler.Reserve)
	protected.Delete("/reservations/:id", tableHandler.CancelReservation)

	// Analítica y tablero (admin)
	analyticsHandler := NewAnalyticsHandler(deps.MarginsUC)
	protected.Get("/analytics/margins", adminOnly, analyticsHandler.GetMargins)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", adminOnly, dashboardHandler.GetSummary)
}
