package memory

import (
	"sort"
	"strconv"
	"strings"

	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
)

var _ repository.ServicioRepository = (*ServicioRepo)(nil)

// ServicioRepo directorio de servicios sobre el store en memoria.
type ServicioRepo struct {
	s *Store
}

// NewServicioRepository construye el directorio de servicios.
func NewServicioRepository(s *Store) *ServicioRepo {
	return &ServicioRepo{s: s}
}

// FindByID busca un servicio; (nil, nil) si no existe.
func (r *ServicioRepo) FindByID(id int) (*entity.Servicio, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if srv, ok := r.s.servicios[id]; ok {
		c := *srv
		return &c, nil
	}
	return nil, nil
}

// FindByNombre busca por nombre exacto sin distinguir mayúsculas.
func (r *ServicioRepo) FindByNombre(nombre string) (*entity.Servicio, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, srv := range r.s.servicios {
		if strings.EqualFold(srv.Nombre, strings.TrimSpace(nombre)) {
			c := *srv
			return &c, nil
		}
	}
	return nil, nil
}

// FindAll lista los servicios ordenados por ID.
func (r *ServicioRepo) FindAll() ([]*entity.Servicio, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Servicio, 0, len(r.s.servicios))
	for _, srv := range r.s.servicios {
		c := *srv
		out = append(out, &c)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

// Save agrega un servicio; ErrorDuplicado si el ID existe.
func (r *ServicioRepo) Save(servicio *entity.Servicio) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.servicios[servicio.ID]; ok {
		return &domain.ErrorDuplicado{Entidad: "servicio", ID: strconv.Itoa(servicio.ID)}
	}
	c := *servicio
	r.s.servicios[servicio.ID] = &c
	return nil
}
