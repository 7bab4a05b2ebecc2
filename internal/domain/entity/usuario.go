package entity

import (
	"strings"
	"time"

	"github.com/clinica-horizonte/insumos/internal/domain"
)

// Roles válidos para Usuario.
const (
	RolAdmin    = "ADMIN"
	RolAuxiliar = "AUXILIAR"
)

// MinLargoPassword largo mínimo admitido para contraseñas.
const MinLargoPassword = 6

// Usuario representa un usuario del sistema. El legajo es la clave primaria,
// único e inmutable. La contraseña se guarda en texto plano: contrato legado
// del sistema original, la comparación queda detrás del puerto de persistencia
// para poder reemplazarla por un hash sin tocar el dominio.
type Usuario struct {
	Legajo   int
	Password string
	Nombre   string
	Apellido string
	Rol      string
	Activo   bool
	CreadoEn time.Time // se fija una vez al construir, nunca se altera
}

// NuevoUsuario valida y construye un usuario activo.
func NuevoUsuario(legajo int, password, nombre, apellido, rol string) (*Usuario, error) {
	if legajo <= 0 {
		return nil, domain.NuevaValidacion("el legajo debe ser positivo")
	}
	if len(password) < MinLargoPassword {
		return nil, domain.NuevaValidacion("la contraseña debe tener al menos %d caracteres", MinLargoPassword)
	}
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, domain.NuevaValidacion("el nombre es requerido")
	}
	apellido = strings.TrimSpace(apellido)
	if apellido == "" {
		return nil, domain.NuevaValidacion("el apellido es requerido")
	}
	if rol != RolAdmin && rol != RolAuxiliar {
		return nil, domain.NuevaValidacion("rol inválido: %q", rol)
	}
	return &Usuario{
		Legajo:   legajo,
		Password: password,
		Nombre:   nombre,
		Apellido: apellido,
		Rol:      rol,
		Activo:   true,
		CreadoEn: time.Now(),
	}, nil
}

// NombreCompleto devuelve "Nombre Apellido".
func (u *Usuario) NombreCompleto() string {
	return u.Nombre + " " + u.Apellido
}

// EsAdmin indica si el usuario tiene rol de administrador.
func (u *Usuario) EsAdmin() bool {
	return u.Rol == RolAdmin
}

// Desactivar marca la baja lógica; el registro se conserva.
func (u *Usuario) Desactivar() { u.Activo = false }

// Activar revierte la baja lógica.
func (u *Usuario) Activar() { u.Activo = true }
