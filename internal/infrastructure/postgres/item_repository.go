package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = "id, code, name, description, category, unit, price, stock_quantity, created_at, updated_at"

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	err := row.Scan(
		&i.ID, &i.Code, &i.Name, &i.Description, &i.Category, &i.Unit,
		&i.Price, &i.StockQuantity, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create persiste un ítem nuevo. Un código repetido devuelve ErrDuplicateCode.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, code, name, description, category, unit, price, stock_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.Name, item.Description, item.Category, item.Unit,
		item.Price, item.StockQuantity, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	item, err := scanItem(r.q.QueryRow(context.Background(),
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// GetByCode obtiene un ítem por código.
func (r *ItemRepo) GetByCode(code string) (*entity.Item, error) {
	item, err := scanItem(r.q.QueryRow(context.Background(),
		`SELECT `+itemColumns+` FROM items WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by code: %w", err)
	}
	return item, nil
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE). Serializa
// los commits del ledger por ítem; filas de ítems distintos no se bloquean entre sí.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	item, err := scanItem(r.q.QueryRow(context.Background(),
		`SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return item, nil
}

// Update actualiza campos descriptivos. stock_quantity no aparece en el SET:
// esa columna la muta únicamente AdjustQuantity.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET code = $2, name = $3, description = $4, category = $5, unit = $6, price = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.Name, item.Description, item.Category, item.Unit,
		item.Price, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// AdjustQuantity aplica stock_quantity += delta como update condicional: el WHERE
// re-valida la no-negatividad dentro de la misma operación atómica, sin confiar en
// una lectura previa. Cero filas afectadas sobre un ítem existente significa que el
// resultado sería negativo -> ErrInvariantViolation.
func (r *ItemRepo) AdjustQuantity(id string, delta int64) error {
	query := `
		UPDATE items SET stock_quantity = stock_quantity + $2, updated_at = now()
		WHERE id = $1 AND stock_quantity + $2 >= 0`
	cmd, err := r.q.Exec(context.Background(), query, id, delta)
	if err != nil {
		return fmt.Errorf("adjust quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvariantViolation
	}
	return nil
}

// List lista ítems con búsqueda por nombre/código (ILIKE) y filtro por categoría.
func (r *ItemRepo) List(search, category string, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var conds []string
	var args []any
	pos := 1
	if search != "" {
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d)", pos, pos))
		args = append(args, "%"+search+"%")
		pos++
	}
	if category != "" {
		conds = append(conds, fmt.Sprintf("category = $%d", pos))
		args = append(args, category)
		pos++
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
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

// Categories devuelve las categorías no vacías en uso, ordenadas.
func (r *ItemRepo) Categories() ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT category FROM items WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
