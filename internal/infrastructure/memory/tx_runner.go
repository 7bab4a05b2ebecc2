package memory

import (
	"context"

	"github.com/clinica-horizonte/insumos/internal/application/stock"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks como unidad atómica sobre el store en memoria.
// Toma el lock del store (serializa cualquier check-then-act concurrente
// sobre el mismo insumo), saca una instantánea y la restaura si fn falla:
// stock y libro de movimientos quedan siempre reconciliables.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repositorios atados a la "transacción" (sin lock propio:
// el runner ya sostiene el mutex). Commit implícito si fn devuelve nil;
// rollback restaurando la instantánea si devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	insumos repository.InsumoRepository,
	movimientos repository.MovimientoRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.tomarInstantanea()
	if err := fn(&txInsumoRepo{s: r.s}, &txMovimientoRepo{s: r.s}); err != nil {
		r.s.restaurar(snap)
		return err
	}
	return nil
}
