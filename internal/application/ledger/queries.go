package ledger

import (
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// QueryUseCase lecturas del kardex: listado con filtros, detalle y verificación
// de la cantidad cacheada contra el pliegue de movimientos.
type QueryUseCase struct {
	movementRepo repository.MovementRepository
	itemRepo     repository.ItemRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(movementRepo repository.MovementRepository, itemRepo repository.ItemRepository) *QueryUseCase {
	return &QueryUseCase{movementRepo: movementRepo, itemRepo: itemRepo}
}

// ListMovements lista movimientos ordenados por occurred_at DESC, id DESC.
func (uc *QueryUseCase) ListMovements(filter repository.MovementFilter) ([]*entity.Movement, error) {
	if filter.Direction != "" && !entity.ValidDirection(filter.Direction) {
		return nil, domain.ErrInvalidInput
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return uc.movementRepo.List(filter)
}

// GetMovement obtiene un movimiento por ID.
func (uc *QueryUseCase) GetMovement(id int64) (*entity.Movement, error) {
	movement, err := uc.movementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, domain.ErrNotFound
	}
	return movement, nil
}

// RecomputeQuantity pliega todos los movimientos de un ítem y devuelve la suma
// con signo. Utilidad de verificación: el valor cacheado debe coincidir siempre.
func (uc *QueryUseCase) RecomputeQuantity(itemID string) (int64, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, domain.ErrNotFound
	}
	return uc.movementRepo.SumByItem(itemID)
}

// Reconcile compara la cantidad cacheada contra el kardex. Una divergencia indica
// un defecto en el commit del ledger y se registra a nivel error.
func (uc *QueryUseCase) Reconcile(itemID string) (*ReconcileResult, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	recomputed, err := uc.movementRepo.SumByItem(itemID)
	if err != nil {
		return nil, err
	}
	result := &ReconcileResult{
		ItemID:     itemID,
		Cached:     item.StockQuantity,
		Recomputed: recomputed,
		Drift:      item.StockQuantity != recomputed,
	}
	if result.Drift {
		log.Error().
			Str("item_id", itemID).
			Int64("cached", result.Cached).
			Int64("recomputed", result.Recomputed).
			Msg("divergencia entre cantidad cacheada y kardex")
	}
	return result, nil
}

// ReconcileResult resultado de Reconcile.
type ReconcileResult struct {
	ItemID     string
	Cached     int64
	Recomputed int64
	Drift      bool
}
