package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicateCode      = errors.New("código de ítem duplicado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvariantViolation = errors.New("violación de invariante de stock")
	ErrUnauthorized       = errors.New("no autorizado")
)

// InsufficientStockError indica que una salida excede el stock disponible.
// Lleva la cantidad disponible para que el caller pueda mostrarla.
type InsufficientStockError struct {
	ItemID    string
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente (disponible: %d)", e.Available)
}

// Is permite errors.Is(err, ErrInsufficientStock) sobre el error tipado.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
