package repository

import "github.com/clinica-horizonte/insumos/internal/domain/entity"

// ServicioRepository define el puerto para los destinos de egreso.
// Datos de referencia, mayormente de lectura.
type ServicioRepository interface {
	FindByID(id int) (*entity.Servicio, error)
	// FindByNombre compara exacto, sin distinguir mayúsculas.
	FindByNombre(nombre string) (*entity.Servicio, error)
	// FindAll lista ordenado por ID.
	FindAll() ([]*entity.Servicio, error)
	// Save falla con ErrorDuplicado si el ID ya existe.
	Save(servicio *entity.Servicio) error
}
