package memory

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/application/ledger"
	"github.com/jhoicas/Atelier-api/internal/application/orders"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de la aplicación.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ orders.OrderTxRunner = (*TxRunner)(nil)
var _ orders.ConsumptionTxRunner = (*TxRunner)(nil)

// TxRunner transacciones sobre el store en memoria: el mutex serializa (como el
// bloqueo de fila en PostgreSQL) y un snapshot permite rollback ante error.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) run(fn func() error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.takeSnapshot()
	if err := fn(); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// Run transacción del libro de movimientos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MaterialMovementRepository,
	materialRepo repository.MaterialRepository,
) error) error {
	return r.run(func() error {
		return fn(
			&StockRepo{base{s: r.s, inTx: true}},
			&MovementRepo{base{s: r.s, inTx: true}},
			&MaterialRepo{base{s: r.s, inTx: true}},
		)
	})
}

// RunOrder transacción de creación de pedidos.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	pictureRepo repository.PictureRepository,
	bomRepo repository.PictureMaterialRepository,
) error) error {
	return r.run(func() error {
		return fn(
			&OrderRepo{base{s: r.s, inTx: true}},
			&PictureRepo{base{s: r.s, inTx: true}},
			&PictureMaterialRepo{base{s: r.s, inTx: true}},
		)
	})
}

// RunConsumption sub-transacción de consumo/devolución de un cuadro.
func (r *TxRunner) RunConsumption(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MaterialMovementRepository,
	materialRepo repository.MaterialRepository,
	bomRepo repository.PictureMaterialRepository,
	templateRepo repository.BOMTemplateRepository,
	consumptionRepo repository.OrderConsumptionRepository,
) error) error {
	return r.run(func() error {
		return fn(
			&StockRepo{base{s: r.s, inTx: true}},
			&MovementRepo{base{s: r.s, inTx: true}},
			&MaterialRepo{base{s: r.s, inTx: true}},
			&PictureMaterialRepo{base{s: r.s, inTx: true}},
			&BOMTemplateRepo{base{s: r.s, inTx: true}},
			&ConsumptionRepo{base{s: r.s, inTx: true}},
		)
	})
}
