package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// MonthlyMovementCount conteo de movimientos in/out de un mes (para el gráfico anual).
type MonthlyMovementCount struct {
	Month    int // 1..12
	StockIn  int64
	StockOut int64
}

// AnalyticsRepository define el puerto de consultas agregadas para el dashboard
// y el reporte de stock. Solo lecturas.
type AnalyticsRepository interface {
	CountItems() (int64, error)
	CountLowStock(threshold int64) (int64, error)
	// CountMovementsBetween cuenta movimientos con from <= occurred_at < to.
	// El límite superior excluye asientos retrofechados hacia el futuro.
	CountMovementsBetween(from, to time.Time) (int64, error)
	// TotalStockValue devuelve SUM(stock_quantity * price) sobre todos los ítems.
	TotalStockValue() (decimal.Decimal, error)
	// MonthlyMovementCounts devuelve los 12 meses del año indicado (meses sin
	// movimientos van en cero).
	MonthlyMovementCounts(year int) ([]MonthlyMovementCount, error)
	LowStockItems(threshold int64, limit int) ([]*entity.Item, error)
}
