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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo repositorio de usuarios sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de usuarios.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const columnasUsuario = "legajo, password, nombre, apellido, rol, activo, creado_en"

func (r *UsuarioRepo) escanearUno(query string, args ...any) (*entity.Usuario, error) {
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&u.Legajo, &u.Password, &u.Nombre, &u.Apellido, &u.Rol, &u.Activo, &u.CreadoEn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	return &u, nil
}

// FindByLegajo obtiene un usuario por legajo; (nil, nil) si no existe.
func (r *UsuarioRepo) FindByLegajo(legajo int) (*entity.Usuario, error) {
	return r.escanearUno(`SELECT `+columnasUsuario+` FROM usuarios WHERE legajo = $1`, legajo)
}

// FindByLegajoYPassword resuelve credenciales contra usuarios activos.
// La comparación en texto plano es el contrato legado; un backend con hash
// reemplaza esta consulta sin tocar el puerto.
func (r *UsuarioRepo) FindByLegajoYPassword(legajo int, password string) (*entity.Usuario, error) {
	return r.escanearUno(
		`SELECT `+columnasUsuario+` FROM usuarios WHERE legajo = $1 AND password = $2 AND activo = TRUE`,
		legajo, password,
	)
}

// FindAllActivos lista usuarios activos ordenados por legajo.
func (r *UsuarioRepo) FindAllActivos() ([]*entity.Usuario, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+columnasUsuario+` FROM usuarios WHERE activo = TRUE ORDER BY legajo`)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios activos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		var u entity.Usuario
		if err := rows.Scan(&u.Legajo, &u.Password, &u.Nombre, &u.Apellido, &u.Rol, &u.Activo, &u.CreadoEn); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Save inserta un usuario nuevo; ErrorDuplicado si el legajo ya existe.
func (r *UsuarioRepo) Save(usuario *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (legajo, password, nombre, apellido, rol, activo, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		usuario.Legajo, usuario.Password, usuario.Nombre, usuario.Apellido,
		usuario.Rol, usuario.Activo, usuario.CreadoEn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ErrorDuplicado{Entidad: "usuario", ID: strconv.Itoa(usuario.Legajo)}
		}
		return fmt.Errorf("insertar usuario: %w", err)
	}
	return nil
}

// Update reemplaza los datos editables; legajo y creado_en no cambian.
func (r *UsuarioRepo) Update(usuario *entity.Usuario) error {
	query := `
		UPDATE usuarios
		SET password = $2, nombre = $3, apellido = $4, rol = $5, activo = $6
		WHERE legajo = $1`
	tag, err := r.q.Exec(context.Background(), query,
		usuario.Legajo, usuario.Password, usuario.Nombre, usuario.Apellido,
		usuario.Rol, usuario.Activo,
	)
	if err != nil {
		return fmt.Errorf("actualizar usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.ErrorNoEncontrado{Entidad: "usuario", ID: strconv.Itoa(usuario.Legajo)}
	}
	return nil
}

// DeleteLogico marca el usuario como inactivo conservando el registro.
func (r *UsuarioRepo) DeleteLogico(legajo int) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE usuarios SET activo = FALSE WHERE legajo = $1`, legajo)
	if err != nil {
		return fmt.Errorf("baja lógica de usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.ErrorNoEncontrado{Entidad: "usuario", ID: strconv.Itoa(legajo)}
	}
	return nil
}
