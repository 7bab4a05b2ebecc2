package auth

import (
	"fmt"
	"strings"

	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
	"github.com/clinica-horizonte/insumos/pkg/logger"
)

// UseCase autenticación con política de bloqueo: tres fallos consecutivos
// bloquean el legajo hasta un desbloqueo explícito o el reinicio del proceso.
type UseCase struct {
	usuarios repository.UsuarioRepository
	lockout  *lockoutTracker
	log      *logger.Logger
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(usuarios repository.UsuarioRepository, log *logger.Logger) *UseCase {
	return &UseCase{usuarios: usuarios, lockout: newLockoutTracker(), log: log}
}

// Login verifica credenciales. El estado bloqueado tiene precedencia: un
// legajo bloqueado falla con ErrCuentaBloqueada aunque la contraseña sea
// correcta. Un login exitoso estando desbloqueado reinicia el contador.
func (uc *UseCase) Login(legajo int, password string) (*entity.Usuario, error) {
	if legajo <= 0 {
		return nil, domain.NuevaValidacion("el legajo debe ser positivo")
	}
	if strings.TrimSpace(password) == "" {
		return nil, domain.NuevaValidacion("la contraseña no puede estar vacía")
	}

	if uc.lockout.bloqueado(legajo) {
		return nil, domain.ErrCuentaBloqueada
	}

	usuario, err := uc.usuarios.FindByLegajoYPassword(legajo, password)
	if err != nil {
		return nil, fmt.Errorf("verificar credenciales: %w", err)
	}
	if usuario == nil {
		fallos := uc.lockout.registrarFallo(legajo)
		uc.log.Debug().Int("legajo", legajo).Int("fallos", fallos).Msg("login fallido")
		return nil, domain.ErrCredencialesInvalidas
	}

	uc.lockout.reiniciar(legajo)
	uc.log.Info().Int("legajo", legajo).Str("rol", usuario.Rol).Msg("login exitoso")
	return usuario, nil
}

// Desbloquear reinicia el contador del legajo incondicionalmente.
func (uc *UseCase) Desbloquear(legajo int) {
	uc.lockout.reiniciar(legajo)
}

// EstaBloqueado consulta el estado de bloqueo del legajo.
func (uc *UseCase) EstaBloqueado(legajo int) bool {
	return uc.lockout.bloqueado(legajo)
}
