package memory

import (
	"sort"
	"strconv"

	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo repositorio de usuarios sobre el store en memoria.
type UsuarioRepo struct {
	s *Store
}

// NewUsuarioRepository construye el repositorio de usuarios.
func NewUsuarioRepository(s *Store) *UsuarioRepo {
	return &UsuarioRepo{s: s}
}

func clonarUsuario(u *entity.Usuario) *entity.Usuario {
	c := *u
	return &c
}

// FindByLegajo busca un usuario; (nil, nil) si no existe.
func (r *UsuarioRepo) FindByLegajo(legajo int) (*entity.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.usuarios[legajo]; ok {
		return clonarUsuario(u), nil
	}
	return nil, nil
}

// FindByLegajoYPassword resuelve credenciales contra usuarios activos.
func (r *UsuarioRepo) FindByLegajoYPassword(legajo int, password string) (*entity.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.usuarios[legajo]
	if !ok || !u.Activo || u.Password != password {
		return nil, nil
	}
	return clonarUsuario(u), nil
}

// FindAllActivos lista usuarios activos ordenados por legajo.
func (r *UsuarioRepo) FindAllActivos() ([]*entity.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Usuario
	for _, u := range r.s.usuarios {
		if u.Activo {
			out = append(out, clonarUsuario(u))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Legajo < out[b].Legajo })
	return out, nil
}

// Save agrega un usuario; ErrorDuplicado si el legajo existe.
func (r *UsuarioRepo) Save(usuario *entity.Usuario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.usuarios[usuario.Legajo]; ok {
		return &domain.ErrorDuplicado{Entidad: "usuario", ID: strconv.Itoa(usuario.Legajo)}
	}
	r.s.usuarios[usuario.Legajo] = clonarUsuario(usuario)
	return nil
}

// Update reemplaza el registro del legajo.
func (r *UsuarioRepo) Update(usuario *entity.Usuario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.usuarios[usuario.Legajo]; !ok {
		return &domain.ErrorNoEncontrado{Entidad: "usuario", ID: strconv.Itoa(usuario.Legajo)}
	}
	r.s.usuarios[usuario.Legajo] = clonarUsuario(usuario)
	return nil
}

// DeleteLogico marca el usuario como inactivo; el registro se conserva.
func (r *UsuarioRepo) DeleteLogico(legajo int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.usuarios[legajo]
	if !ok {
		return &domain.ErrorNoEncontrado{Entidad: "usuario", ID: strconv.Itoa(legajo)}
	}
	c := clonarUsuario(u)
	c.Desactivar()
	r.s.usuarios[legajo] = c
	return nil
}
