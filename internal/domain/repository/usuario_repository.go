package repository

import "github.com/clinica-horizonte/insumos/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para usuarios.
type UsuarioRepository interface {
	FindByLegajo(legajo int) (*entity.Usuario, error)
	// FindByLegajoYPassword resuelve credenciales contra usuarios activos.
	// Devuelve (nil, nil) si no coinciden. La comparación vive detrás del
	// puerto: un backend con hash la reemplaza sin tocar a los consumidores.
	FindByLegajoYPassword(legajo int, password string) (*entity.Usuario, error)
	// FindAllActivos lista usuarios con activo=true ordenados por legajo.
	FindAllActivos() ([]*entity.Usuario, error)
	// Save falla con ErrorDuplicado si el legajo ya existe.
	Save(usuario *entity.Usuario) error
	Update(usuario *entity.Usuario) error
	// DeleteLogico marca inactivo; ErrorNoEncontrado si el legajo no existe.
	DeleteLogico(legajo int) error
}
