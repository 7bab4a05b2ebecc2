package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los tipos con datos
// adicionales implementan Is contra su centinela, así el caller puede usar
// errors.Is para la clase y errors.As para el detalle.
var (
	ErrValidacion            = errors.New("entrada inválida")
	ErrNoEncontrado          = errors.New("recurso no encontrado")
	ErrStockInsuficiente     = errors.New("stock insuficiente")
	ErrDuplicado             = errors.New("recurso duplicado")
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
	ErrCuentaBloqueada       = errors.New("cuenta bloqueada por intentos fallidos")
)

// ErrorValidacion indica una entrada malformada; se detecta antes de
// cualquier lookup y nunca deja estado parcial.
type ErrorValidacion struct {
	Motivo string
}

func (e *ErrorValidacion) Error() string {
	return "entrada inválida: " + e.Motivo
}

func (e *ErrorValidacion) Is(target error) bool { return target == ErrValidacion }

// NuevaValidacion arma un ErrorValidacion con formato.
func NuevaValidacion(formato string, args ...any) error {
	return &ErrorValidacion{Motivo: fmt.Sprintf(formato, args...)}
}

// ErrorNoEncontrado indica que una entidad referenciada no existe.
// Lleva el identificador buscado.
type ErrorNoEncontrado struct {
	Entidad string
	ID      string
}

func (e *ErrorNoEncontrado) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Entidad, e.ID)
}

func (e *ErrorNoEncontrado) Is(target error) bool { return target == ErrNoEncontrado }

// ErrorStockInsuficiente indica un egreso mayor al stock disponible.
// Garantiza que no hubo mutación alguna.
type ErrorStockInsuficiente struct {
	Codigo     string
	Solicitado int
	Disponible int
}

func (e *ErrorStockInsuficiente) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d",
		e.Codigo, e.Solicitado, e.Disponible)
}

func (e *ErrorStockInsuficiente) Is(target error) bool { return target == ErrStockInsuficiente }

// ErrorDuplicado indica un alta con identificador ya existente.
type ErrorDuplicado struct {
	Entidad string
	ID      string
}

func (e *ErrorDuplicado) Error() string {
	return fmt.Sprintf("ya existe %s con identificador %s", e.Entidad, e.ID)
}

func (e *ErrorDuplicado) Is(target error) bool { return target == ErrDuplicado }
