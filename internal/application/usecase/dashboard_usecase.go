package usecase

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/kardex-api/internal/application/dto"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// LowStockThreshold umbral de stock bajo para indicadores del dashboard.
const LowStockThreshold = 10

// DashboardUseCase arma los indicadores del dashboard y el reporte de stock
// valorizado a partir de consultas agregadas.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	movementRepo  repository.MovementRepository
	itemRepo      repository.ItemRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	movementRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		movementRepo:  movementRepo,
		itemRepo:      itemRepo,
	}
}

// GetSummary devuelve indicadores, movimientos recientes, ítems con stock bajo y
// el gráfico anual de movimientos.
func (uc *DashboardUseCase) GetSummary() (*dto.DashboardResponse, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfTomorrow := startOfDay.AddDate(0, 0, 1)

	totalItems, err := uc.analyticsRepo.CountItems()
	if err != nil {
		return nil, err
	}
	lowStockCount, err := uc.analyticsRepo.CountLowStock(LowStockThreshold)
	if err != nil {
		return nil, err
	}
	// Acotado por ambos lados: un asiento retrofechado a mañana no cuenta como "hoy".
	todayMovements, err := uc.analyticsRepo.CountMovementsBetween(startOfDay, startOfTomorrow)
	if err != nil {
		return nil, err
	}
	totalValue, err := uc.analyticsRepo.TotalStockValue()
	if err != nil {
		return nil, err
	}

	recent, err := uc.movementRepo.List(repository.MovementFilter{Limit: 10})
	if err != nil {
		return nil, err
	}
	recentDTOs := make([]dto.MovementResponse, 0, len(recent))
	for _, m := range recent {
		recentDTOs = append(recentDTOs, *dto.NewMovementResponse(m))
	}

	lowStock, err := uc.analyticsRepo.LowStockItems(LowStockThreshold, 10)
	if err != nil {
		return nil, err
	}
	lowStockDTOs := make([]dto.ItemResponse, 0, len(lowStock))
	for _, i := range lowStock {
		lowStockDTOs = append(lowStockDTOs, *dto.NewItemResponse(i))
	}

	counts, err := uc.analyticsRepo.MonthlyMovementCounts(now.Year())
	if err != nil {
		return nil, err
	}
	chart := make([]dto.MonthlyChartPoint, 0, len(counts))
	for _, c := range counts {
		chart = append(chart, dto.MonthlyChartPoint{
			Month:    time.Month(c.Month).String()[:3],
			StockIn:  c.StockIn,
			StockOut: c.StockOut,
		})
	}

	return &dto.DashboardResponse{
		Stats: dto.DashboardStats{
			TotalItems:      totalItems,
			LowStockItems:   lowStockCount,
			TodayMovements:  todayMovements,
			TotalStockValue: totalValue,
		},
		RecentMovements: recentDTOs,
		LowStock:        lowStockDTOs,
		ChartData:       chart,
	}, nil
}

// StockReport devuelve el inventario (filtrable por búsqueda y categoría) con el
// valor total del stock listado.
func (uc *DashboardUseCase) StockReport(search, category string) (*dto.StockReportResponse, error) {
	// El reporte es completo, no paginado; el límite alto acota casos extremos.
	list, err := uc.itemRepo.List(search, category, 1000, 0)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	total := decimal.Zero
	for _, i := range list {
		items = append(items, *dto.NewItemResponse(i))
		total = total.Add(i.StockValue())
	}
	return &dto.StockReportResponse{Items: items, TotalValue: total}, nil
}
