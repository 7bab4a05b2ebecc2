package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
)

var _ repository.InsumoRepository = (*InsumoRepo)(nil)

// InsumoRepo implementación de InsumoRepository sobre PostgreSQL (usable con
// pool o tx).
type InsumoRepo struct {
	q Querier
}

// NewInsumoRepository construye el adaptador de insumos. Pasar pool o tx (Querier).
func NewInsumoRepository(q Querier) *InsumoRepo {
	return &InsumoRepo{q: q}
}

const columnasInsumo = "codigo, nombre, unidad, stock, stock_minimo, estado, fecha_vencimiento"

func (r *InsumoRepo) buscarPorCodigo(codigo, sufijo string) (*entity.Insumo, error) {
	query := `
		SELECT ` + columnasInsumo + `
		FROM insumos WHERE codigo = $1` + sufijo
	var i entity.Insumo
	var vencimiento *time.Time
	err := r.q.QueryRow(context.Background(), query, entity.NormalizarCodigo(codigo)).Scan(
		&i.Codigo, &i.Nombre, &i.Unidad, &i.Stock, &i.StockMinimo, &i.Estado, &vencimiento,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar insumo: %w", err)
	}
	i.FechaVencimiento = vencimiento
	return &i, nil
}

// FindByCodigo obtiene un insumo por código; (nil, nil) si no existe.
func (r *InsumoRepo) FindByCodigo(codigo string) (*entity.Insumo, error) {
	return r.buscarPorCodigo(codigo, "")
}

// FindByCodigoForUpdate obtiene el insumo y bloquea la fila (SELECT FOR
// UPDATE) para que dos check-then-decrement sobre el mismo código no se
// intercalen.
func (r *InsumoRepo) FindByCodigoForUpdate(codigo string) (*entity.Insumo, error) {
	return r.buscarPorCodigo(codigo, " FOR UPDATE")
}

func (r *InsumoRepo) listar(query string, args ...any) ([]*entity.Insumo, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar insumos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Insumo
	for rows.Next() {
		var i entity.Insumo
		var vencimiento *time.Time
		if err := rows.Scan(&i.Codigo, &i.Nombre, &i.Unidad, &i.Stock, &i.StockMinimo, &i.Estado, &vencimiento); err != nil {
			return nil, fmt.Errorf("scan insumo: %w", err)
		}
		i.FechaVencimiento = vencimiento
		list = append(list, &i)
	}
	return list, rows.Err()
}

// SearchByNombre busca por coincidencia parcial de nombre, ordenado por nombre.
func (r *InsumoRepo) SearchByNombre(nombreParcial string) ([]*entity.Insumo, error) {
	query := `
		SELECT ` + columnasInsumo + `
		FROM insumos WHERE nombre ILIKE '%' || $1 || '%' ORDER BY nombre`
	return r.listar(query, nombreParcial)
}

// FindCriticos lista stock <= mínimo, más deficitario primero, desempate por código.
func (r *InsumoRepo) FindCriticos() ([]*entity.Insumo, error) {
	query := `
		SELECT ` + columnasInsumo + `
		FROM insumos WHERE stock <= stock_minimo
		ORDER BY stock - stock_minimo, codigo`
	return r.listar(query)
}

// FindAll lista todos los insumos ordenados por código.
func (r *InsumoRepo) FindAll() ([]*entity.Insumo, error) {
	query := `
		SELECT ` + columnasInsumo + `
		FROM insumos ORDER BY codigo`
	return r.listar(query)
}

// Save inserta un insumo nuevo; ErrorDuplicado si el código ya existe.
func (r *InsumoRepo) Save(insumo *entity.Insumo) error {
	query := `
		INSERT INTO insumos (codigo, nombre, unidad, stock, stock_minimo, estado, fecha_vencimiento)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		insumo.Codigo, insumo.Nombre, insumo.Unidad, insumo.Stock, insumo.StockMinimo,
		insumo.Estado, insumo.FechaVencimiento,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ErrorDuplicado{Entidad: "insumo", ID: insumo.Codigo}
		}
		return fmt.Errorf("insertar insumo: %w", err)
	}
	return nil
}

// Update reemplaza el registro almacenado para el código.
func (r *InsumoRepo) Update(insumo *entity.Insumo) error {
	query := `
		UPDATE insumos
		SET nombre = $2, unidad = $3, stock = $4, stock_minimo = $5, estado = $6, fecha_vencimiento = $7
		WHERE codigo = $1`
	tag, err := r.q.Exec(context.Background(), query,
		insumo.Codigo, insumo.Nombre, insumo.Unidad, insumo.Stock, insumo.StockMinimo,
		insumo.Estado, insumo.FechaVencimiento,
	)
	if err != nil {
		return fmt.Errorf("actualizar insumo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.ErrorNoEncontrado{Entidad: "insumo", ID: insumo.Codigo}
	}
	return nil
}
