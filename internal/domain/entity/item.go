package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un ítem/material almacenable (pool de stock único).
// StockQuantity es un valor derivado y cacheado: en todo momento debe ser igual a
// la suma de entradas menos salidas del kardex; solo el commit del ledger lo muta.
type Item struct {
	ID            string
	Code          string // código único legible (ej. BRG0001)
	Name          string
	Description   string
	Category      string
	Unit          string          // unidad de medida: pcs, kg, liter...
	Price         decimal.Decimal // precio referencial, sin peso en invariantes
	StockQuantity int64           // cantidad en mano, nunca negativa
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockValue devuelve el valor del stock en mano (cantidad * precio).
func (i *Item) StockValue() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.StockQuantity))
}
