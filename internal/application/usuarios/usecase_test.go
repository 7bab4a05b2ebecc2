package usuarios_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinica-horizonte/insumos/internal/application/usuarios"
	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
	"github.com/clinica-horizonte/insumos/internal/infrastructure/memory"
)

func nuevoUseCase(t *testing.T) (*usuarios.UseCase, repository.UsuarioRepository) {
	t.Helper()
	repo := memory.NewUsuarioRepository(memory.NewStore())
	return usuarios.NewUseCase(repo), repo
}

func altaValida() usuarios.AltaInput {
	return usuarios.AltaInput{
		Legajo:   1000,
		Password: "admin123",
		Nombre:   "Marta",
		Apellido: "Acosta",
		Rol:      entity.RolAdmin,
	}
}

func TestAlta(t *testing.T) {
	uc, repo := nuevoUseCase(t)

	u, err := uc.Alta(altaValida())
	require.NoError(t, err)
	assert.Equal(t, 1000, u.Legajo)
	assert.True(t, u.Activo)
	assert.False(t, u.CreadoEn.IsZero())

	guardado, err := repo.FindByLegajo(1000)
	require.NoError(t, err)
	require.NotNil(t, guardado)
	assert.Equal(t, "Marta Acosta", guardado.NombreCompleto())
}

// El legajo es único: un alta repetida falla y nunca pisa el registro original.
func TestAltaLegajoDuplicado(t *testing.T) {
	uc, repo := nuevoUseCase(t)

	_, err := uc.Alta(altaValida())
	require.NoError(t, err)

	repetida := altaValida()
	repetida.Nombre = "Otra"
	repetida.Apellido = "Persona"
	_, err = uc.Alta(repetida)
	assert.ErrorIs(t, err, domain.ErrDuplicado)

	guardado, err := repo.FindByLegajo(1000)
	require.NoError(t, err)
	assert.Equal(t, "Marta Acosta", guardado.NombreCompleto(), "el registro original debe quedar intacto")
}

func TestAltaInvalida(t *testing.T) {
	uc, _ := nuevoUseCase(t)

	casos := []struct {
		nombre string
		mutar  func(*usuarios.AltaInput)
	}{
		{"legajo cero", func(in *usuarios.AltaInput) { in.Legajo = 0 }},
		{"contraseña corta", func(in *usuarios.AltaInput) { in.Password = "abc" }},
		{"nombre vacío", func(in *usuarios.AltaInput) { in.Nombre = "" }},
		{"apellido vacío", func(in *usuarios.AltaInput) { in.Apellido = "" }},
		{"rol desconocido", func(in *usuarios.AltaInput) { in.Rol = "GERENTE" }},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			in := altaValida()
			c.mutar(&in)
			_, err := uc.Alta(in)
			assert.ErrorIs(t, err, domain.ErrValidacion)
		})
	}
}

func TestEditar(t *testing.T) {
	uc, repo := nuevoUseCase(t)

	creado, err := uc.Alta(altaValida())
	require.NoError(t, err)

	editado, err := uc.Editar(usuarios.EdicionInput{
		Legajo:   1000,
		Password: "nueva1234",
		Nombre:   "Marta",
		Apellido: "Acosta de Pérez",
		Rol:      entity.RolAuxiliar,
		Activo:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RolAuxiliar, editado.Rol)
	assert.Equal(t, creado.CreadoEn, editado.CreadoEn, "la fecha de alta nunca se altera")

	guardado, err := repo.FindByLegajo(1000)
	require.NoError(t, err)
	assert.Equal(t, "nueva1234", guardado.Password)
}

func TestEditarInexistente(t *testing.T) {
	uc, _ := nuevoUseCase(t)

	_, err := uc.Editar(usuarios.EdicionInput{
		Legajo:   9999,
		Password: "clave123",
		Nombre:   "Nadie",
		Apellido: "Nunca",
		Rol:      entity.RolAuxiliar,
	})
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

// La baja es lógica: el usuario desaparece del listado de activos pero el
// registro se conserva.
func TestBajaLogica(t *testing.T) {
	uc, repo := nuevoUseCase(t)

	admin, err := uc.Alta(altaValida())
	require.NoError(t, err)
	_, err = uc.Alta(usuarios.AltaInput{
		Legajo: 2000, Password: "auxi456", Nombre: "Diego", Apellido: "Ferreyra", Rol: entity.RolAuxiliar,
	})
	require.NoError(t, err)

	require.NoError(t, uc.BajaLogica(2000, admin))

	activos, err := uc.ListarActivos()
	require.NoError(t, err)
	require.Len(t, activos, 1)
	assert.Equal(t, 1000, activos[0].Legajo)

	conservado, err := repo.FindByLegajo(2000)
	require.NoError(t, err)
	require.NotNil(t, conservado, "la baja lógica conserva el registro")
	assert.False(t, conservado.Activo)
}

func TestBajaLogicaPropiaProhibida(t *testing.T) {
	uc, _ := nuevoUseCase(t)

	admin, err := uc.Alta(altaValida())
	require.NoError(t, err)

	err = uc.BajaLogica(admin.Legajo, admin)
	assert.ErrorIs(t, err, domain.ErrValidacion, "un usuario no puede darse de baja a sí mismo")
}

func TestBajaLogicaInexistente(t *testing.T) {
	uc, _ := nuevoUseCase(t)

	admin, err := uc.Alta(altaValida())
	require.NoError(t, err)

	err = uc.BajaLogica(9999, admin)
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}
