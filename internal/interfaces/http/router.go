package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estoque-pro/estoque-api/internal/application/auth"
	"github.com/estoque-pro/estoque-api/internal/application/catalog"
	"github.com/estoque-pro/estoque-api/internal/application/inventory"
	"github.com/estoque-pro/estoque-api/internal/application/reports"
	"github.com/estoque-pro/estoque-api/internal/application/sales"
	"github.com/estoque-pro/estoque-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CategoryUC *catalog.CategoryUseCase
	SupplierUC *catalog.SupplierUseCase
	ProductUC  *catalog.ProductUseCase
	MovementUC *inventory.MovementUseCase
	SaleUC     *sales.SaleUseCase
	ReportUC   *reports.ReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)
	adminOrManager := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Auth (login público, el resto protegido)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), adminOnly, authHandler.Register)
	authGroup.Put("/password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (administración, solo admin)
	users := protected.Group("/users", adminOnly)
	users.Get("/", authHandler.ListUsers)
	users.Put("/:id/active", authHandler.SetActive)

	// Categories (protegido; borrar requiere admin o manager)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", adminOrManager, categoryHandler.Delete)

	// Suppliers (protegido; borrar requiere admin o manager)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", adminOrManager, supplierHandler.Delete)

	// Products (protegido; borrar requiere admin o manager)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOrManager, productHandler.Delete)

	// Stock ledger (protegido)
	stock := protected.Group("/stock")
	inventoryHandler := NewInventoryHandler(deps.MovementUC)
	stock.Post("/entradas", inventoryHandler.RegisterEntrada)
	stock.Post("/salidas", inventoryHandler.RegisterSalida)
	stock.Get("/movements", inventoryHandler.ListMovements)

	// Sales (protegido; borrar requiere admin)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Delete("/:id", adminOnly, saleHandler.Delete)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/low-stock.pdf", reportHandler.LowStockPDF)
}
