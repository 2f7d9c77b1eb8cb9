package repository

import "github.com/tu-usuario/kardex-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para ítems (DIP).
// GetByID y GetByCode devuelven (nil, nil) si el ítem no existe.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCode(code string) (*entity.Item, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del ledger.
	GetForUpdate(id string) (*entity.Item, error)
	// Update modifica solo campos descriptivos; nunca StockQuantity
	// (esa columna la muta únicamente AdjustQuantity vía el ledger).
	Update(item *entity.Item) error
	// AdjustQuantity aplica stock_quantity += delta de forma condicional:
	// si el resultado fuera negativo no aplica nada y devuelve ErrInvariantViolation.
	AdjustQuantity(id string, delta int64) error
	List(search, category string, limit, offset int) ([]*entity.Item, error)
	Categories() ([]string, error)
}
