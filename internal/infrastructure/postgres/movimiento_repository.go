package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clinica-horizonte/insumos/internal/domain/entity"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
// El ID lo asigna la secuencia de la tabla; acá nunca hay UPDATE ni DELETE.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Append valida el asiento, persiste y deja el ID asignado en el movimiento.
func (r *MovimientoRepo) Append(m *entity.Movimiento) error {
	if err := m.Validar(); err != nil {
		return err
	}
	if m.Fecha.IsZero() {
		m.Fecha = time.Now()
	}
	var servicioID *int
	if m.Servicio != nil {
		servicioID = &m.Servicio.ID
	}
	query := `
		INSERT INTO movimientos (tipo, fecha, cantidad, usuario_legajo, insumo_codigo, servicio_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		m.Tipo, m.Fecha, m.Cantidad, m.Usuario.Legajo, m.Insumo.Codigo, servicioID,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("asentar movimiento: %w", err)
	}
	return nil
}

const consultaMovimientos = `
	SELECT m.id, m.tipo, m.fecha, m.cantidad,
	       u.legajo, u.nombre, u.apellido, u.rol,
	       i.codigo, i.nombre, i.unidad, i.stock, i.stock_minimo, i.estado, i.fecha_vencimiento,
	       s.id, s.nombre
	FROM movimientos m
	JOIN usuarios u ON u.legajo = m.usuario_legajo
	JOIN insumos i ON i.codigo = m.insumo_codigo
	LEFT JOIN servicios s ON s.id = m.servicio_id`

func (r *MovimientoRepo) listar(query string, args ...any) ([]*entity.Movimiento, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movimiento
	for rows.Next() {
		var m entity.Movimiento
		var u entity.Usuario
		var i entity.Insumo
		var vencimiento *time.Time
		var servicioID *int
		var servicioNombre *string
		if err := rows.Scan(
			&m.ID, &m.Tipo, &m.Fecha, &m.Cantidad,
			&u.Legajo, &u.Nombre, &u.Apellido, &u.Rol,
			&i.Codigo, &i.Nombre, &i.Unidad, &i.Stock, &i.StockMinimo, &i.Estado, &vencimiento,
			&servicioID, &servicioNombre,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		i.FechaVencimiento = vencimiento
		m.Usuario = &u
		m.Insumo = &i
		if servicioID != nil {
			m.Servicio = &entity.Servicio{ID: *servicioID, Nombre: *servicioNombre}
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// FindAll devuelve todos los movimientos, más nuevo primero, desempate por ID.
func (r *MovimientoRepo) FindAll() ([]*entity.Movimiento, error) {
	return r.listar(consultaMovimientos + " ORDER BY m.fecha DESC, m.id DESC")
}

// FindByPeriodoYServicio filtra por fecha calendario en [desde, hasta]
// inclusive y, si servicioID no es nil, por servicio.
func (r *MovimientoRepo) FindByPeriodoYServicio(desde, hasta time.Time, servicioID *int) ([]*entity.Movimiento, error) {
	query := consultaMovimientos + `
	WHERE m.fecha::date BETWEEN $1::date AND $2::date`
	args := []any{desde, hasta}
	if servicioID != nil {
		query += " AND m.servicio_id = $3"
		args = append(args, *servicioID)
	}
	query += " ORDER BY m.fecha DESC, m.id DESC"
	return r.listar(query, args...)
}
