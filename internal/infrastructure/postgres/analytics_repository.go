package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas para dashboard y reportes. Solo lecturas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func (r *AnalyticsRepo) CountItems() (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM items`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) CountLowStock(threshold int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM items WHERE stock_quantity <= $1`, threshold).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) CountMovementsBetween(from, to time.Time) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_movements WHERE occurred_at >= $1 AND occurred_at < $2`,
		from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// TotalStockValue valor total del inventario: SUM(stock_quantity * price).
func (r *AnalyticsRepo) TotalStockValue() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(stock_quantity * price), 0) FROM items`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total stock value: %w", err)
	}
	return total, nil
}

// MonthlyMovementCounts conteo in/out por mes del año dado; devuelve siempre 12
// entradas (meses sin movimientos en cero).
func (r *AnalyticsRepo) MonthlyMovementCounts(year int) ([]repository.MonthlyMovementCount, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT EXTRACT(MONTH FROM occurred_at)::int AS month, direction, COUNT(*)
		FROM stock_movements
		WHERE EXTRACT(YEAR FROM occurred_at) = $1
		GROUP BY month, direction
		ORDER BY month`, year)
	if err != nil {
		return nil, fmt.Errorf("monthly movement counts: %w", err)
	}
	defer rows.Close()

	counts := make([]repository.MonthlyMovementCount, 12)
	for i := range counts {
		counts[i].Month = i + 1
	}
	for rows.Next() {
		var month int
		var direction string
		var n int64
		if err := rows.Scan(&month, &direction, &n); err != nil {
			return nil, fmt.Errorf("scan monthly count: %w", err)
		}
		if month < 1 || month > 12 {
			continue
		}
		if direction == entity.DirectionIn {
			counts[month-1].StockIn = n
		} else {
			counts[month-1].StockOut = n
		}
	}
	return counts, rows.Err()
}

func (r *AnalyticsRepo) LowStockItems(threshold int64, limit int) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+itemColumns+` FROM items WHERE stock_quantity <= $1 ORDER BY stock_quantity LIMIT $2`,
		threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := rows.Scan(&i.ID, &i.Code, &i.Name, &i.Description, &i.Category, &i.Unit,
			&i.Price, &i.StockQuantity, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
