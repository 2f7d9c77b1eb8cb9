package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/kardex-api/internal/application/ledger"
	"github.com/tu-usuario/kardex-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC      *usecase.ItemUseCase
	DashboardUC *usecase.DashboardUseCase
	Record      *ledger.RecordMovementUseCase
	Queries     *ledger.QueryUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todas las rutas /api requieren Bearer Token;
// el alta y edición de ítems queda restringida a administradores.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Items (protegido; escritura solo admin)
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/categories", itemHandler.Categories)
	items.Post("/", RequireRole(RoleAdmin), itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", RequireRole(RoleAdmin), itemHandler.Update)

	// Kardex (protegido; cualquier rol autenticado registra movimientos)
	ledgerHandler := NewLedgerHandler(deps.Record, deps.Queries)
	items.Get("/:id/movements", ledgerHandler.ListItemMovements)
	items.Get("/:id/reconcile", ledgerHandler.Reconcile)

	movements := api.Group("/movements")
	movements.Post("/", ledgerHandler.RecordMovement)
	movements.Get("/", ledgerHandler.ListMovements)
	movements.Get("/:id", ledgerHandler.GetMovement)

	// Dashboard y reportes (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.GetSummary)
	api.Get("/reports/stock", dashboardHandler.StockReport)
}
