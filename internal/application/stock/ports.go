package stock

import (
	"context"

	"github.com/clinica-horizonte/insumos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de persistencia,
// pasando repositorios atados a esa transacción. Si fn devuelve error no
// queda ningún cambio aplicado: la mutación de stock y el asiento del
// movimiento se confirman o revierten como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		insumos repository.InsumoRepository,
		movimientos repository.MovimientoRepository,
	) error) error
}
