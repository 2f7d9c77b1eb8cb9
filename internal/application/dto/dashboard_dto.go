package dto

import "github.com/shopspring/decimal"

// DashboardStats indicadores principales del dashboard.
type DashboardStats struct {
	TotalItems        int64           `json:"total_items"`
	LowStockItems     int64           `json:"low_stock_items"`
	TodayMovements    int64           `json:"today_movements"`
	TotalStockValue   decimal.Decimal `json:"total_stock_value"`
}

// MonthlyChartPoint punto del gráfico anual de movimientos.
type MonthlyChartPoint struct {
	Month    string `json:"month"` // Jan, Feb, ...
	StockIn  int64  `json:"stock_in"`
	StockOut int64  `json:"stock_out"`
}

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	Stats           DashboardStats      `json:"stats"`
	RecentMovements []MovementResponse  `json:"recent_movements"`
	LowStock        []ItemResponse      `json:"low_stock_items"`
	ChartData       []MonthlyChartPoint `json:"chart_data"`
}

// StockReportResponse respuesta de GET /api/reports/stock: inventario valorizado.
type StockReportResponse struct {
	Items      []ItemResponse  `json:"items"`
	TotalValue decimal.Decimal `json:"total_value"`
}
