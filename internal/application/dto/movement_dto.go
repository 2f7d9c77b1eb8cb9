package dto

import (
	"time"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// RecordMovementRequest body para POST /api/movements.
// supplier aplica solo a direction=in; destination solo a direction=out.
// occurred_at puede ser retroactivo; si se omite se usa la hora actual.
type RecordMovementRequest struct {
	ItemID      string     `json:"item_id"`
	Direction   string     `json:"direction"` // in | out
	Quantity    int64      `json:"quantity"`
	OccurredAt  *time.Time `json:"occurred_at,omitempty"`
	Supplier    string     `json:"supplier,omitempty"`
	Destination string     `json:"destination,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// MovementResponse representación de un asiento del kardex en la API.
type MovementResponse struct {
	ID           int64     `json:"id"`
	ItemID       string    `json:"item_id"`
	Direction    string    `json:"direction"`
	Quantity     int64     `json:"quantity"`
	OccurredAt   time.Time `json:"occurred_at"`
	ActorID      string    `json:"actor_id"`
	Counterparty string    `json:"counterparty,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}

// ReconcileResponse resultado de verificar la cantidad cacheada contra el kardex.
// Drift=true indica divergencia entre el cache y el pliegue de movimientos.
type ReconcileResponse struct {
	ItemID     string `json:"item_id"`
	Cached     int64  `json:"cached"`
	Recomputed int64  `json:"recomputed"`
	Drift      bool   `json:"drift"`
}

// NewMovementResponse mapea la entidad al DTO de salida.
func NewMovementResponse(m *entity.Movement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:           m.ID,
		ItemID:       m.ItemID,
		Direction:    m.Direction,
		Quantity:     m.Quantity,
		OccurredAt:   m.OccurredAt,
		ActorID:      m.ActorID,
		Counterparty: m.Counterparty,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
	}
}
