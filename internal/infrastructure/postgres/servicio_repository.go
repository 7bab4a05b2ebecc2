package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
)

var _ repository.ServicioRepository = (*ServicioRepo)(nil)

// ServicioRepo directorio de servicios sobre PostgreSQL.
type ServicioRepo struct {
	q Querier
}

// NewServicioRepository construye el adaptador de servicios.
func NewServicioRepository(q Querier) *ServicioRepo {
	return &ServicioRepo{q: q}
}

// FindByID obtiene un servicio por ID; (nil, nil) si no existe.
func (r *ServicioRepo) FindByID(id int) (*entity.Servicio, error) {
	var s entity.Servicio
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nombre FROM servicios WHERE id = $1`, id,
	).Scan(&s.ID, &s.Nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar servicio: %w", err)
	}
	return &s, nil
}

// FindByNombre busca por nombre exacto sin distinguir mayúsculas.
func (r *ServicioRepo) FindByNombre(nombre string) (*entity.Servicio, error) {
	var s entity.Servicio
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nombre FROM servicios WHERE lower(nombre) = lower(trim($1))`, nombre,
	).Scan(&s.ID, &s.Nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar servicio por nombre: %w", err)
	}
	return &s, nil
}

// FindAll lista los servicios ordenados por ID.
func (r *ServicioRepo) FindAll() ([]*entity.Servicio, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, nombre FROM servicios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listar servicios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Servicio
	for rows.Next() {
		var s entity.Servicio
		if err := rows.Scan(&s.ID, &s.Nombre); err != nil {
			return nil, fmt.Errorf("scan servicio: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Save inserta un servicio; ErrorDuplicado si el ID ya existe.
func (r *ServicioRepo) Save(servicio *entity.Servicio) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO servicios (id, nombre) VALUES ($1, $2)`, servicio.ID, servicio.Nombre,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ErrorDuplicado{Entidad: "servicio", ID: strconv.Itoa(servicio.ID)}
		}
		return fmt.Errorf("insertar servicio: %w", err)
	}
	return nil
}
