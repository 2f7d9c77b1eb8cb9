package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// RecordMovementUseCase registra movimientos de stock (in/out) de forma transaccional:
// bloqueo de fila del ítem (SELECT FOR UPDATE), verificación de suficiencia sobre el
// valor vivo y commit atómico de asiento + ajuste de cantidad.
type RecordMovementUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(txRunner TxRunner, itemRepo repository.ItemRepository) *RecordMovementUseCase {
	return &RecordMovementUseCase{txRunner: txRunner, itemRepo: itemRepo}
}

// MovementInput entrada para registrar un movimiento de stock.
// Counterparty es el proveedor en entradas y el destino en salidas.
type MovementInput struct {
	ItemID       string
	Direction    string
	Quantity     int64
	OccurredAt   time.Time
	ActorID      string
	Counterparty string
	Notes        string
}

// RecordMovement valida la solicitud, inicia una transacción, bloquea la fila del ítem,
// re-verifica la suficiencia contra el valor vivo y registra asiento + ajuste como una
// sola unidad. Orden de validación: cantidad, dirección, existencia, suficiencia.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidDirection(input.Direction) {
		return nil, domain.ErrInvalidInput
	}

	// Pre-chequeo de existencia fuera de la tx para fallar rápido; la verificación
	// que decide es la de dentro de la tx, sobre la fila bloqueada.
	item, err := uc.itemRepo.GetByID(input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	var recorded *entity.Movement
	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movementRepo repository.MovementRepository) error {
		// Bloquea la fila del ítem: serializa commits por ítem sin acoplar ítems distintos.
		locked, err := itemRepo.GetForUpdate(input.ItemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}

		delta := input.Quantity
		if input.Direction == entity.DirectionOut {
			// Regla dura: una salida nunca excede el stock en mano, contra el valor
			// vivo de la fila bloqueada, no contra una lectura previa del caller.
			if input.Quantity > locked.StockQuantity {
				return &domain.InsufficientStockError{ItemID: locked.ID, Available: locked.StockQuantity}
			}
			delta = -input.Quantity
		}

		movement := &entity.Movement{
			ItemID:       input.ItemID,
			Direction:    input.Direction,
			Quantity:     input.Quantity,
			OccurredAt:   occurredAt,
			ActorID:      input.ActorID,
			Counterparty: input.Counterparty,
			Notes:        input.Notes,
		}
		if err := movementRepo.Create(movement); err != nil {
			return err
		}
		if err := itemRepo.AdjustQuantity(input.ItemID, delta); err != nil {
			if errors.Is(err, domain.ErrInvariantViolation) {
				// Inalcanzable si la serialización por ítem funciona: la suficiencia
				// ya se verificó sobre la fila bloqueada. Se registra como defecto.
				log.Error().
					Str("item_id", input.ItemID).
					Int64("delta", delta).
					Msg("ajuste de stock rechazado tras verificación: posible bug de control de concurrencia")
			}
			return err
		}
		recorded = movement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recorded, nil
}
