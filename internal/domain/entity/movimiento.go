package entity

import (
	"time"

	"github.com/clinica-horizonte/insumos/internal/domain"
)

// Tipos de movimiento de stock.
const (
	MovimientoIngreso = "INGRESO"
	MovimientoEgreso  = "EGRESO"
)

// Movimiento es un asiento inmutable del libro de movimientos. El ID y la
// fecha los asigna el ledger al insertar (borrador-y-commit, sin mutación
// oculta por reflection); el resto queda fijo desde la construcción.
// Regla de negocio: INGRESO sin servicio, EGRESO con servicio.
type Movimiento struct {
	ID       int64
	Tipo     string
	Fecha    time.Time
	Cantidad int
	Usuario  *Usuario
	Insumo   *Insumo
	Servicio *Servicio // nil si INGRESO
}

// NuevoMovimiento construye un borrador de movimiento (sin ID ni fecha)
// validando las reglas de consistencia.
func NuevoMovimiento(tipo string, cantidad int, usuario *Usuario, insumo *Insumo, servicio *Servicio) (*Movimiento, error) {
	m := &Movimiento{
		Tipo:     tipo,
		Cantidad: cantidad,
		Usuario:  usuario,
		Insumo:   insumo,
		Servicio: servicio,
	}
	if err := m.Validar(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validar comprueba las invariantes del asiento. La reutiliza el ledger
// antes de asignar ID.
func (m *Movimiento) Validar() error {
	if m.Tipo != MovimientoIngreso && m.Tipo != MovimientoEgreso {
		return domain.NuevaValidacion("tipo de movimiento inválido: %q", m.Tipo)
	}
	if m.Cantidad <= 0 {
		return domain.NuevaValidacion("la cantidad debe ser positiva")
	}
	if m.Usuario == nil {
		return domain.NuevaValidacion("el usuario es requerido")
	}
	if m.Insumo == nil {
		return domain.NuevaValidacion("el insumo es requerido")
	}
	if m.Tipo == MovimientoIngreso && m.Servicio != nil {
		return domain.NuevaValidacion("los movimientos de tipo INGRESO no pueden tener servicio")
	}
	if m.Tipo == MovimientoEgreso && m.Servicio == nil {
		return domain.NuevaValidacion("los movimientos de tipo EGRESO deben tener un servicio")
	}
	return nil
}

// EsEgreso indica si el asiento descuenta stock.
func (m *Movimiento) EsEgreso() bool {
	return m.Tipo == MovimientoEgreso
}
