package ledger

import (
	"context"
	"time"

	"github.com/tu-usuario/kardex-api/internal/application/dto"
	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// RecordMovementFromRequest adapta el request HTTP al caso de uso RecordMovement.
// Resuelve la contraparte según la dirección (supplier en entradas, destination en
// salidas); el campo de la dirección contraria se descarta siempre.
func (uc *RecordMovementUseCase) RecordMovementFromRequest(ctx context.Context, actorID string, in dto.RecordMovementRequest) (*entity.Movement, error) {
	// El actor sale del token, nunca del body; sin actor no hay asiento auditable.
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	var counterparty string
	switch in.Direction {
	case entity.DirectionIn:
		counterparty = in.Supplier
	case entity.DirectionOut:
		counterparty = in.Destination
	}
	var occurredAt time.Time
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}
	return uc.RecordMovement(ctx, MovementInput{
		ItemID:       in.ItemID,
		Direction:    in.Direction,
		Quantity:     in.Quantity,
		OccurredAt:   occurredAt,
		ActorID:      actorID,
		Counterparty: counterparty,
		Notes:        in.Notes,
	})
}
