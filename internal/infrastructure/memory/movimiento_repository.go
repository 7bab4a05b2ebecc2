package memory

import (
	"time"

	"github.com/clinica-horizonte/insumos/internal/domain/entity"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo libro de movimientos sobre el store en memoria. Append-only:
// el ID secuencial y la fecha los asigna el store al asentar, sin mutación
// por reflection como hacía el sistema original.
type MovimientoRepo struct {
	s *Store
}

// NewMovimientoRepository construye el libro de movimientos.
func NewMovimientoRepository(s *Store) *MovimientoRepo {
	return &MovimientoRepo{s: s}
}

// Append valida el asiento, asigna ID secuencial y fecha, y lo persiste.
func (r *MovimientoRepo) Append(m *entity.Movimiento) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.asentarMovimiento(m)
}

// FindAll devuelve los movimientos ordenados por fecha e ID descendentes.
func (r *MovimientoRepo) FindAll() ([]*entity.Movimiento, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.todosLosMovimientos(), nil
}

// FindByPeriodoYServicio filtra por fecha calendario inclusive y servicio.
func (r *MovimientoRepo) FindByPeriodoYServicio(desde, hasta time.Time, servicioID *int) ([]*entity.Movimiento, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.movimientosPorPeriodoYServicio(desde, hasta, servicioID), nil
}

// txMovimientoRepo variante sin lock para usar dentro de TxRunner.Run.
type txMovimientoRepo struct {
	s *Store
}

var _ repository.MovimientoRepository = (*txMovimientoRepo)(nil)

func (r *txMovimientoRepo) Append(m *entity.Movimiento) error {
	return r.s.asentarMovimiento(m)
}

func (r *txMovimientoRepo) FindAll() ([]*entity.Movimiento, error) {
	return r.s.todosLosMovimientos(), nil
}

func (r *txMovimientoRepo) FindByPeriodoYServicio(desde, hasta time.Time, servicioID *int) ([]*entity.Movimiento, error) {
	return r.s.movimientosPorPeriodoYServicio(desde, hasta, servicioID), nil
}
