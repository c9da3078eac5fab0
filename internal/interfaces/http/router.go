package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-api/internal/application/catalog"
	"github.com/jhoicas/panaderia-api/internal/application/inventory"
	"github.com/jhoicas/panaderia-api/internal/application/orders"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
	"github.com/jhoicas/panaderia-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC     *orders.OrderUseCase
	MovementUC  *inventory.MovementUseCase
	CatalogUC   *catalog.UseCase
	ProductRepo repository.ProductRepository
	BranchRepo  repository.BranchRepository
	Tickets     *pdf.TicketGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
// Pedidos y movimientos son de mostrador: aceptan peticiones anónimas y solo
// capturan la identidad si viene un Bearer Token válido. La administración del
// catálogo sí exige token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", IdentityMiddleware(deps.JWTSecret))

	// Pedidos (mostrador)
	ordersGroup := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ProductRepo, deps.BranchRepo, deps.Tickets)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Post("/:id/cancel", orderHandler.Cancel)
	ordersGroup.Post("/:id/pickup", orderHandler.Pickup)
	ordersGroup.Get("/:id/ticket", orderHandler.Ticket)

	// Inventario: libro de movimientos y stock (mostrador)
	invGroup := api.Group("/inventory")
	movementHandler := NewMovementHandler(deps.MovementUC)
	invGroup.Post("/movements", movementHandler.Create)
	invGroup.Get("/movements", movementHandler.List)
	invGroup.Get("/stock", movementHandler.Stock)

	// Catálogo: lecturas públicas, altas protegidas
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products := api.Group("/products")
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:slug", catalogHandler.GetProduct)
	products.Post("/", RequireAuth(deps.JWTSecret), catalogHandler.CreateProduct)

	branches := api.Group("/branches")
	branches.Get("/", catalogHandler.ListBranches)
	branches.Post("/", RequireAuth(deps.JWTSecret), catalogHandler.CreateBranch)

	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", RequireAuth(deps.JWTSecret), catalogHandler.CreateCategory)
}
