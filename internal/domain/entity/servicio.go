package entity

import (
	"strings"

	"github.com/clinica-horizonte/insumos/internal/domain"
)

// Servicio es un destino de egreso (sala, guardia, quirófano). Datos de
// referencia inmutables.
type Servicio struct {
	ID     int
	Nombre string
}

// NuevoServicio valida y construye un servicio.
func NuevoServicio(id int, nombre string) (*Servicio, error) {
	if id <= 0 {
		return nil, domain.NuevaValidacion("el id de servicio debe ser positivo")
	}
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, domain.NuevaValidacion("el nombre del servicio no puede estar vacío")
	}
	return &Servicio{ID: id, Nombre: nombre}, nil
}
