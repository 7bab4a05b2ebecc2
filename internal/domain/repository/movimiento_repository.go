package repository

import (
	"time"

	"github.com/clinica-horizonte/insumos/internal/domain/entity"
)

// MovimientoRepository define el puerto del libro de movimientos. Es
// append-only: el contrato público no tiene update ni delete.
type MovimientoRepository interface {
	// Append asigna el siguiente ID secuencial (desde 1) y, si falta, la fecha
	// actual; valida las invariantes del asiento y lo persiste. El movimiento
	// recibido queda con su ID asignado.
	Append(m *entity.Movimiento) error
	// FindAll devuelve todos los movimientos ordenados por fecha descendente,
	// desempate por ID descendente.
	FindAll() ([]*entity.Movimiento, error)
	// FindByPeriodoYServicio filtra por fecha calendario en [desde, hasta]
	// inclusive y, si servicioID no es nil, por servicio. Mismo orden que FindAll.
	FindByPeriodoYServicio(desde, hasta time.Time, servicioID *int) ([]*entity.Movimiento, error)
}
