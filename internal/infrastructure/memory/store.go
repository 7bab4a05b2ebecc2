// Package memory implementa los puertos de persistencia sobre estructuras en
// proceso. Cumple el mismo contrato que el backend PostgreSQL, incluida la
// atomicidad: el TxRunner toma una instantánea del estado afectado y lo
// restaura si la función de la transacción falla.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
)

// Store es el almacenamiento en memoria compartido por los repositorios.
// Los punteros guardados nunca se comparten con los callers: toda lectura
// devuelve copias y toda escritura guarda copias, así la instantánea de la
// transacción puede ser superficial.
type Store struct {
	mu          sync.Mutex
	insumos     map[string]*entity.Insumo
	movimientos []*entity.Movimiento
	secuencia   int64
	servicios   map[int]*entity.Servicio
	usuarios    map[int]*entity.Usuario
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		insumos:   make(map[string]*entity.Insumo),
		servicios: make(map[int]*entity.Servicio),
		usuarios:  make(map[int]*entity.Usuario),
	}
}

// instantanea captura el estado que una transacción puede tocar: el mapa de
// insumos (los registros en sí son inmutables una vez guardados) y el largo
// del libro de movimientos con su secuencia.
type instantanea struct {
	insumos      map[string]*entity.Insumo
	nMovimientos int
	secuencia    int64
}

func (s *Store) tomarInstantanea() instantanea {
	copia := make(map[string]*entity.Insumo, len(s.insumos))
	for k, v := range s.insumos {
		copia[k] = v
	}
	return instantanea{
		insumos:      copia,
		nMovimientos: len(s.movimientos),
		secuencia:    s.secuencia,
	}
}

func (s *Store) restaurar(snap instantanea) {
	s.insumos = snap.insumos
	s.movimientos = s.movimientos[:snap.nMovimientos]
	s.secuencia = snap.secuencia
}

// ── operaciones sin lock: las usan los repos públicos (que toman s.mu) y los
// repos transaccionales (el TxRunner ya sostiene s.mu) ──

func clonarInsumo(i *entity.Insumo) *entity.Insumo {
	c := *i
	if i.FechaVencimiento != nil {
		f := *i.FechaVencimiento
		c.FechaVencimiento = &f
	}
	return &c
}

func (s *Store) buscarInsumo(codigo string) *entity.Insumo {
	if ins, ok := s.insumos[entity.NormalizarCodigo(codigo)]; ok {
		return clonarInsumo(ins)
	}
	return nil
}

func (s *Store) buscarInsumosPorNombre(nombreParcial string) []*entity.Insumo {
	parcial := strings.ToLower(strings.TrimSpace(nombreParcial))
	var out []*entity.Insumo
	for _, ins := range s.insumos {
		if strings.Contains(strings.ToLower(ins.Nombre), parcial) {
			out = append(out, clonarInsumo(ins))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Nombre < out[b].Nombre })
	return out
}

func (s *Store) insumosCriticos() []*entity.Insumo {
	var out []*entity.Insumo
	for _, ins := range s.insumos {
		if ins.EsCritico() {
			out = append(out, clonarInsumo(ins))
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Deficit() != out[b].Deficit() {
			return out[a].Deficit() < out[b].Deficit()
		}
		return out[a].Codigo < out[b].Codigo
	})
	return out
}

func (s *Store) todosLosInsumos() []*entity.Insumo {
	out := make([]*entity.Insumo, 0, len(s.insumos))
	for _, ins := range s.insumos {
		out = append(out, clonarInsumo(ins))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Codigo < out[b].Codigo })
	return out
}

func (s *Store) guardarInsumo(ins *entity.Insumo) error {
	if _, ok := s.insumos[ins.Codigo]; ok {
		return &domain.ErrorDuplicado{Entidad: "insumo", ID: ins.Codigo}
	}
	s.insumos[ins.Codigo] = clonarInsumo(ins)
	return nil
}

func (s *Store) actualizarInsumo(ins *entity.Insumo) error {
	if _, ok := s.insumos[ins.Codigo]; !ok {
		return &domain.ErrorNoEncontrado{Entidad: "insumo", ID: ins.Codigo}
	}
	s.insumos[ins.Codigo] = clonarInsumo(ins)
	return nil
}

func clonarMovimiento(m *entity.Movimiento) *entity.Movimiento {
	c := *m
	if m.Insumo != nil {
		c.Insumo = clonarInsumo(m.Insumo)
	}
	if m.Usuario != nil {
		u := *m.Usuario
		c.Usuario = &u
	}
	if m.Servicio != nil {
		srv := *m.Servicio
		c.Servicio = &srv
	}
	return &c
}

func (s *Store) asentarMovimiento(m *entity.Movimiento) error {
	if m == nil {
		return domain.NuevaValidacion("el movimiento no puede ser nulo")
	}
	if err := m.Validar(); err != nil {
		return err
	}
	if m.ID != 0 {
		return domain.NuevaValidacion("el movimiento ya tiene ID asignado")
	}
	s.secuencia++
	m.ID = s.secuencia
	if m.Fecha.IsZero() {
		m.Fecha = time.Now()
	}
	s.movimientos = append(s.movimientos, clonarMovimiento(m))
	return nil
}

func ordenarMovimientos(ms []*entity.Movimiento) {
	sort.Slice(ms, func(a, b int) bool {
		if !ms[a].Fecha.Equal(ms[b].Fecha) {
			return ms[a].Fecha.After(ms[b].Fecha)
		}
		return ms[a].ID > ms[b].ID
	})
}

func (s *Store) todosLosMovimientos() []*entity.Movimiento {
	out := make([]*entity.Movimiento, 0, len(s.movimientos))
	for _, m := range s.movimientos {
		out = append(out, clonarMovimiento(m))
	}
	ordenarMovimientos(out)
	return out
}

func soloFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *Store) movimientosPorPeriodoYServicio(desde, hasta time.Time, servicioID *int) []*entity.Movimiento {
	d, h := soloFecha(desde), soloFecha(hasta)
	var out []*entity.Movimiento
	for _, m := range s.movimientos {
		fecha := soloFecha(m.Fecha)
		if fecha.Before(d) || fecha.After(h) {
			continue
		}
		if servicioID != nil && (m.Servicio == nil || m.Servicio.ID != *servicioID) {
			continue
		}
		out = append(out, clonarMovimiento(m))
	}
	ordenarMovimientos(out)
	return out
}
