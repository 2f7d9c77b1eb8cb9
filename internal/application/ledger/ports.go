package ledger

import (
	"context"

	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que el asiento del kardex y el ajuste de la cantidad
// cacheada se confirmen o reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movementRepo repository.MovementRepository,
	) error) error
}
