package ledger

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que "leer existencia, calcular, escribir existencia,
// anexar movimiento" sea atómico frente a llamadas concurrentes sobre el mismo
// material: o queda exactamente un movimiento nuevo y una existencia actualizada,
// o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.MaterialMovementRepository,
		materialRepo repository.MaterialRepository,
	) error) error
}
