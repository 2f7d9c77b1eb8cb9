package repository

import (
	"time"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos del kardex.
// Los campos string vacíos y los punteros nil se ignoran.
type MovementFilter struct {
	ItemID    string
	Direction string
	ActorID   string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementRepository define el puerto de persistencia para el kardex (append-only).
// No existen operaciones de update ni delete sobre movimientos.
type MovementRepository interface {
	// Create inserta el movimiento y asigna movement.ID (secuencia monótona)
	// y movement.CreatedAt.
	Create(movement *entity.Movement) error
	// GetByID devuelve (nil, nil) si el movimiento no existe.
	GetByID(id int64) (*entity.Movement, error)
	// List devuelve movimientos ordenados por occurred_at DESC, id DESC.
	List(filter MovementFilter) ([]*entity.Movement, error)
	// SumByItem pliega el kardex de un ítem: sum(entradas) - sum(salidas).
	SumByItem(itemID string) (int64, error)
}
