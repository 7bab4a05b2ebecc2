package repository

import "github.com/clinica-horizonte/insumos/internal/domain/entity"

// InsumoRepository define el puerto de persistencia para insumos. No contiene
// lógica de mutación: almacena lo que recibe. Los lookups devuelven (nil, nil)
// cuando el insumo no existe; el caso de uso decide el error.
type InsumoRepository interface {
	FindByCodigo(codigo string) (*entity.Insumo, error)
	// FindByCodigoForUpdate bloquea el registro para actualización dentro de
	// una transacción (SELECT FOR UPDATE en PostgreSQL; en memoria equivale a
	// FindByCodigo bajo el lock del store).
	FindByCodigoForUpdate(codigo string) (*entity.Insumo, error)
	SearchByNombre(nombreParcial string) ([]*entity.Insumo, error)
	// FindCriticos lista stock <= mínimo, ordenado por déficit ascendente
	// (más deficitario primero), desempate por código.
	FindCriticos() ([]*entity.Insumo, error)
	// FindAll lista todos los insumos ordenados por código.
	FindAll() ([]*entity.Insumo, error)
	// Save falla con ErrorDuplicado si el código ya existe.
	Save(insumo *entity.Insumo) error
	// Update reemplaza el registro almacenado para ese código.
	Update(insumo *entity.Insumo) error
}
