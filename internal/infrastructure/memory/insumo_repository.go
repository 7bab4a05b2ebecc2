package memory

import (
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
)

var _ repository.InsumoRepository = (*InsumoRepo)(nil)

// InsumoRepo repositorio de insumos sobre el store en memoria.
type InsumoRepo struct {
	s *Store
}

// NewInsumoRepository construye el repositorio de insumos.
func NewInsumoRepository(s *Store) *InsumoRepo {
	return &InsumoRepo{s: s}
}

// FindByCodigo busca un insumo; (nil, nil) si no existe.
func (r *InsumoRepo) FindByCodigo(codigo string) (*entity.Insumo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.buscarInsumo(codigo), nil
}

// FindByCodigoForUpdate en memoria equivale a FindByCodigo: la serialización
// por código la da el lock del store durante la transacción.
func (r *InsumoRepo) FindByCodigoForUpdate(codigo string) (*entity.Insumo, error) {
	return r.FindByCodigo(codigo)
}

// SearchByNombre busca por coincidencia parcial de nombre, sin distinguir
// mayúsculas, ordenado por nombre.
func (r *InsumoRepo) SearchByNombre(nombreParcial string) ([]*entity.Insumo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.buscarInsumosPorNombre(nombreParcial), nil
}

// FindCriticos lista stock <= mínimo, más deficitario primero.
func (r *InsumoRepo) FindCriticos() ([]*entity.Insumo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insumosCriticos(), nil
}

// FindAll lista todos los insumos por código.
func (r *InsumoRepo) FindAll() ([]*entity.Insumo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.todosLosInsumos(), nil
}

// Save agrega un insumo nuevo; ErrorDuplicado si el código existe.
func (r *InsumoRepo) Save(insumo *entity.Insumo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.guardarInsumo(insumo)
}

// Update reemplaza el registro del código.
func (r *InsumoRepo) Update(insumo *entity.Insumo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.actualizarInsumo(insumo)
}

// txInsumoRepo variante sin lock para usar dentro de TxRunner.Run, que ya
// sostiene el mutex del store.
type txInsumoRepo struct {
	s *Store
}

var _ repository.InsumoRepository = (*txInsumoRepo)(nil)

func (r *txInsumoRepo) FindByCodigo(codigo string) (*entity.Insumo, error) {
	return r.s.buscarInsumo(codigo), nil
}

func (r *txInsumoRepo) FindByCodigoForUpdate(codigo string) (*entity.Insumo, error) {
	return r.s.buscarInsumo(codigo), nil
}

func (r *txInsumoRepo) SearchByNombre(nombreParcial string) ([]*entity.Insumo, error) {
	return r.s.buscarInsumosPorNombre(nombreParcial), nil
}

func (r *txInsumoRepo) FindCriticos() ([]*entity.Insumo, error) {
	return r.s.insumosCriticos(), nil
}

func (r *txInsumoRepo) FindAll() ([]*entity.Insumo, error) {
	return r.s.todosLosInsumos(), nil
}

func (r *txInsumoRepo) Save(insumo *entity.Insumo) error {
	return r.s.guardarInsumo(insumo)
}

func (r *txInsumoRepo) Update(insumo *entity.Insumo) error {
	return r.s.actualizarInsumo(insumo)
}
