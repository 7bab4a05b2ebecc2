package usuarios

import (
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
)

// AltaInput datos para dar de alta un usuario.
type AltaInput struct {
	Legajo   int    `validate:"required,gt=0"`
	Password string `validate:"required,min=6"`
	Nombre   string `validate:"required"`
	Apellido string `validate:"required"`
	Rol      string `validate:"required,oneof=ADMIN AUXILIAR"`
}

// EdicionInput datos para editar un usuario existente. El legajo identifica
// al usuario y no puede cambiar; rol y estado activo sí.
type EdicionInput struct {
	Legajo   int    `validate:"required,gt=0"`
	Password string `validate:"required,min=6"`
	Nombre   string `validate:"required"`
	Apellido string `validate:"required"`
	Rol      string `validate:"required,oneof=ADMIN AUXILIAR"`
	Activo   bool
}

// UseCase administración de usuarios: alta, edición, baja lógica y listado.
type UseCase struct {
	usuarios repository.UsuarioRepository
	validate *validator.Validate
}

// NewUseCase construye el caso de uso de gestión de usuarios.
func NewUseCase(usuarios repository.UsuarioRepository) *UseCase {
	return &UseCase{
		usuarios: usuarios,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Alta valida los datos y crea el usuario. Falla con ErrorDuplicado si el
// legajo ya existe; nunca pisa un registro.
func (uc *UseCase) Alta(in AltaInput) (*entity.Usuario, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, domain.NuevaValidacion("datos de usuario inválidos: %v", err)
	}
	existente, err := uc.usuarios.FindByLegajo(in.Legajo)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, &domain.ErrorDuplicado{Entidad: "usuario", ID: strconv.Itoa(in.Legajo)}
	}
	u, err := entity.NuevoUsuario(in.Legajo, in.Password, in.Nombre, in.Apellido, in.Rol)
	if err != nil {
		return nil, err
	}
	if err := uc.usuarios.Save(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Editar valida los datos y reemplaza el registro; el legajo debe existir.
// CreadoEn se preserva del registro original.
func (uc *UseCase) Editar(in EdicionInput) (*entity.Usuario, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, domain.NuevaValidacion("datos de usuario inválidos: %v", err)
	}
	existente, err := uc.usuarios.FindByLegajo(in.Legajo)
	if err != nil {
		return nil, err
	}
	if existente == nil {
		return nil, &domain.ErrorNoEncontrado{Entidad: "usuario", ID: strconv.Itoa(in.Legajo)}
	}
	actualizado := *existente
	actualizado.Password = in.Password
	actualizado.Nombre = in.Nombre
	actualizado.Apellido = in.Apellido
	actualizado.Rol = in.Rol
	actualizado.Activo = in.Activo
	if err := uc.usuarios.Update(&actualizado); err != nil {
		return nil, err
	}
	return &actualizado, nil
}

// BajaLogica marca el usuario como inactivo conservando el registro.
// Un usuario no puede darse de baja a sí mismo.
func (uc *UseCase) BajaLogica(legajo int, actor *entity.Usuario) error {
	if legajo <= 0 {
		return domain.NuevaValidacion("el legajo debe ser positivo")
	}
	if actor != nil && actor.Legajo == legajo {
		return domain.NuevaValidacion("un usuario no puede darse de baja a sí mismo")
	}
	return uc.usuarios.DeleteLogico(legajo)
}

// ListarActivos devuelve los usuarios con activo=true.
func (uc *UseCase) ListarActivos() ([]*entity.Usuario, error) {
	return uc.usuarios.FindAllActivos()
}
