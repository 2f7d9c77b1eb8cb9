package entity

import "time"

// Direcciones de movimiento de stock.
const (
	DirectionIn  = "in"  // entrada
	DirectionOut = "out" // salida
)

// ValidDirection verifica que la dirección sea in u out.
func ValidDirection(d string) bool {
	return d == DirectionIn || d == DirectionOut
}

// Movement representa un asiento inmutable del kardex: una entrada o salida de stock.
// No existe update ni delete; las correcciones se registran como movimientos compensatorios
// (ej. una salida que revierte una entrada errónea).
type Movement struct {
	ID           int64  // asignado por inserción, monótono (orden de commit)
	ItemID       string
	Direction    string // in | out
	Quantity     int64  // siempre positiva; el signo lo da Direction
	OccurredAt   time.Time // fecha lógica del movimiento, puede ser retroactiva
	ActorID      string // principal que registró el movimiento (opaco, solo auditoría)
	Counterparty string // proveedor si in, destino si out; vacío en la dirección contraria
	Notes        string
	CreatedAt    time.Time // fecha de registro, distinta de OccurredAt
}

// SignedQuantity devuelve la cantidad con signo según la dirección.
func (m *Movement) SignedQuantity() int64 {
	if m.Direction == DirectionOut {
		return -m.Quantity
	}
	return m.Quantity
}
