package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinica-horizonte/insumos/internal/application/auth"
	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
	"github.com/clinica-horizonte/insumos/internal/infrastructure/memory"
	"github.com/clinica-horizonte/insumos/pkg/logger"
)

// nuevoUseCase arma el caso de uso con el usuario 1000/admin123 registrado.
func nuevoUseCase(t *testing.T) *auth.UseCase {
	t.Helper()
	repo := memory.NewUsuarioRepository(memory.NewStore())
	u, err := entity.NuevoUsuario(1000, "admin123", "Marta", "Acosta", entity.RolAdmin)
	require.NoError(t, err)
	require.NoError(t, repo.Save(u))
	return auth.NewUseCase(repo, logger.Nop())
}

func TestLoginExitoso(t *testing.T) {
	uc := nuevoUseCase(t)

	u, err := uc.Login(1000, "admin123")
	require.NoError(t, err)
	assert.Equal(t, 1000, u.Legajo)
	assert.True(t, u.EsAdmin())
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	uc := nuevoUseCase(t)

	_, err := uc.Login(1000, "incorrecta")
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)

	// Legajo inexistente recibe el mismo error que contraseña incorrecta.
	_, err = uc.Login(9999, "admin123")
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
}

func TestLoginValidaciones(t *testing.T) {
	uc := nuevoUseCase(t)

	_, err := uc.Login(0, "admin123")
	assert.ErrorIs(t, err, domain.ErrValidacion)

	_, err = uc.Login(1000, "   ")
	assert.ErrorIs(t, err, domain.ErrValidacion)
}

// Tres fallos consecutivos bloquean el legajo; a partir de ahí el bloqueo tiene
// precedencia incluso sobre la contraseña correcta, hasta el desbloqueo.
func TestBloqueoTrasTresFallos(t *testing.T) {
	uc := nuevoUseCase(t)

	for i := 0; i < auth.MaxIntentosFallidos; i++ {
		_, err := uc.Login(1000, "incorrecta")
		require.ErrorIs(t, err, domain.ErrCredencialesInvalidas, "intento %d", i+1)
	}
	assert.True(t, uc.EstaBloqueado(1000))

	_, err := uc.Login(1000, "admin123")
	assert.ErrorIs(t, err, domain.ErrCuentaBloqueada, "bloqueado aunque la contraseña sea correcta")

	uc.Desbloquear(1000)
	assert.False(t, uc.EstaBloqueado(1000))

	u, err := uc.Login(1000, "admin123")
	require.NoError(t, err)
	assert.Equal(t, 1000, u.Legajo)
}

// Un login exitoso antes del tercer fallo reinicia el contador.
func TestLoginExitosoReiniciaContador(t *testing.T) {
	uc := nuevoUseCase(t)

	_, err := uc.Login(1000, "incorrecta")
	require.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
	_, err = uc.Login(1000, "incorrecta")
	require.ErrorIs(t, err, domain.ErrCredencialesInvalidas)

	_, err = uc.Login(1000, "admin123")
	require.NoError(t, err)

	// El contador volvió a cero: dos fallos más no bloquean.
	_, _ = uc.Login(1000, "incorrecta")
	_, _ = uc.Login(1000, "incorrecta")
	assert.False(t, uc.EstaBloqueado(1000))
}

// El contador es por legajo: los fallos de uno no afectan a otro.
func TestBloqueoPorLegajo(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewUsuarioRepository(store)
	for _, datos := range []struct {
		legajo   int
		password string
	}{{1000, "admin123"}, {2000, "auxi456"}} {
		u, err := entity.NuevoUsuario(datos.legajo, datos.password, "Usuario", "Prueba", entity.RolAuxiliar)
		require.NoError(t, err)
		require.NoError(t, repo.Save(u))
	}
	uc := auth.NewUseCase(repo, logger.Nop())

	for i := 0; i < auth.MaxIntentosFallidos; i++ {
		_, _ = uc.Login(1000, "incorrecta")
	}
	assert.True(t, uc.EstaBloqueado(1000))
	assert.False(t, uc.EstaBloqueado(2000))

	u, err := uc.Login(2000, "auxi456")
	require.NoError(t, err)
	assert.Equal(t, 2000, u.Legajo)
}

// Un usuario dado de baja no puede autenticarse aunque la contraseña coincida.
func TestLoginUsuarioInactivo(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewUsuarioRepository(store)
	u, err := entity.NuevoUsuario(3000, "clave789", "Laura", "Gómez", entity.RolAuxiliar)
	require.NoError(t, err)
	require.NoError(t, repo.Save(u))
	require.NoError(t, repo.DeleteLogico(3000))

	uc := auth.NewUseCase(repo, logger.Nop())
	_, err = uc.Login(3000, "clave789")
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
}
