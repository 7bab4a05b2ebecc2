package reportes

import (
	"time"

	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
)

// UseCase consultas de movimientos por período y servicio para reportes.
// Devuelve listas ordenadas; el formato de salida queda fuera del núcleo.
type UseCase struct {
	movimientos repository.MovimientoRepository
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(movimientos repository.MovimientoRepository) *UseCase {
	return &UseCase{movimientos: movimientos}
}

// MovimientosPorPeriodoYServicio filtra por fecha calendario en
// [desde, hasta] inclusive y opcionalmente por servicio (nil = todos).
// Orden: más nuevo primero, desempate por ID descendente.
func (uc *UseCase) MovimientosPorPeriodoYServicio(desde, hasta time.Time, servicioID *int) ([]*entity.Movimiento, error) {
	if desde.IsZero() || hasta.IsZero() {
		return nil, domain.NuevaValidacion("las fechas son requeridas")
	}
	if hasta.Before(desde) {
		return nil, domain.NuevaValidacion("la fecha hasta debe ser posterior a la fecha desde")
	}
	if desde.After(time.Now()) {
		return nil, domain.NuevaValidacion("la fecha desde no puede ser futura")
	}
	return uc.movimientos.FindByPeriodoYServicio(desde, hasta, servicioID)
}

// MovimientosUltimoMes devuelve los movimientos del último mes para un servicio.
func (uc *UseCase) MovimientosUltimoMes(servicioID int) ([]*entity.Movimiento, error) {
	if servicioID <= 0 {
		return nil, domain.NuevaValidacion("el id de servicio debe ser positivo")
	}
	hasta := time.Now()
	desde := hasta.AddDate(0, -1, 0)
	return uc.MovimientosPorPeriodoYServicio(desde, hasta, &servicioID)
}

// MovimientosDelDia devuelve los movimientos del día actual, todos los servicios.
func (uc *UseCase) MovimientosDelDia() ([]*entity.Movimiento, error) {
	hoy := time.Now()
	return uc.MovimientosPorPeriodoYServicio(hoy, hoy, nil)
}

// MovimientosUltimaSemana devuelve los movimientos de la última semana.
func (uc *UseCase) MovimientosUltimaSemana() ([]*entity.Movimiento, error) {
	hasta := time.Now()
	desde := hasta.AddDate(0, 0, -7)
	return uc.MovimientosPorPeriodoYServicio(desde, hasta, nil)
}
