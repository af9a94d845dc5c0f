package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/auth"
	"github.com/jhoicas/Farmacia-api/internal/application/document"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	MedicineUC  *usecase.MedicineUseCase
	CategoryUC  *usecase.CategoryUseCase
	UnitUC      *usecase.UnitUseCase
	SupplierUC  *usecase.SupplierUseCase
	WarehouseUC *usecase.WarehouseUseCase
	DocumentUC  *document.UseCase
	DocPDFUC    *document.PDFUseCase
	StockUC     *inventory.StockUseCase
	CheckUC     *inventory.CheckUseCase
	ReportUC    *usecase.ReportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; el resto protegido)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Put("/password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)
	authGroup.Get("/users", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.ListUsers)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Catálogo de medicamentos
	medicines := protected.Group("/medicines")
	medicineHandler := NewMedicineHandler(deps.MedicineUC)
	medicines.Post("/", medicineHandler.Create)
	medicines.Get("/", medicineHandler.List)
	medicines.Get("/:id", medicineHandler.GetByID)
	medicines.Put("/:id", medicineHandler.Update)
	medicines.Delete("/:id", adminOnly, medicineHandler.Delete)

	// Categorías
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Unidades
	units := protected.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Post("/", unitHandler.Create)
	units.Get("/", unitHandler.List)
	units.Put("/:id", unitHandler.Update)
	units.Delete("/:id", adminOnly, unitHandler.Delete)

	// Proveedores
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Bodegas
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Documentos de entrada/salida: la auditoría (cambio de estado) y el borrado
	// son de administradores; crear y consultar lo puede hacer cualquier operador.
	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.DocPDFUC)
	documents.Post("/", documentHandler.Create)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Get("/:id/pdf", documentHandler.PDF)
	documents.Put("/:id", adminOnly, documentHandler.Update)
	documents.Delete("/:id", adminOnly, documentHandler.Delete)

	// Existencias y conteos físicos
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.CheckUC)
	stock.Get("/", stockHandler.List)
	stock.Get("/warning", stockHandler.Warning)
	stock.Post("/checks", stockHandler.CreateCheck)
	stock.Get("/checks", stockHandler.ListChecks)
	stock.Get("/checks/:id", stockHandler.GetCheck)

	// Reportes
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/inbound-by-supplier", reportHandler.InboundBySupplier)
	reports.Get("/stock-summary", reportHandler.StockSummary)
}
