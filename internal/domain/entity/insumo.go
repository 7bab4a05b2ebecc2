package entity

import (
	"strings"
	"time"

	"github.com/clinica-horizonte/insumos/internal/domain"
)

// Estados de ciclo de vida de un insumo.
const (
	EstadoActivo   = "ACTIVO"
	EstadoInactivo = "INACTIVO"
)

// Insumo representa un insumo médico con stock actual y umbral mínimo.
// El código se normaliza (trim + mayúsculas) y es la clave del registro.
type Insumo struct {
	Codigo           string
	Nombre           string
	Unidad           string
	Stock            int
	StockMinimo      int
	Estado           string
	FechaVencimiento *time.Time // opcional
}

// NuevoInsumo valida y construye un insumo. Stock y stock mínimo nunca negativos.
func NuevoInsumo(codigo, nombre, unidad string, stock, stockMinimo int, fechaVencimiento *time.Time) (*Insumo, error) {
	codigo = NormalizarCodigo(codigo)
	if codigo == "" {
		return nil, domain.NuevaValidacion("el código no puede estar vacío")
	}
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, domain.NuevaValidacion("el nombre no puede estar vacío")
	}
	unidad = strings.TrimSpace(unidad)
	if unidad == "" {
		return nil, domain.NuevaValidacion("la unidad no puede estar vacía")
	}
	if stock < 0 {
		return nil, domain.NuevaValidacion("el stock no puede ser negativo")
	}
	if stockMinimo < 0 {
		return nil, domain.NuevaValidacion("el stock mínimo no puede ser negativo")
	}
	return &Insumo{
		Codigo:           codigo,
		Nombre:           nombre,
		Unidad:           unidad,
		Stock:            stock,
		StockMinimo:      stockMinimo,
		Estado:           EstadoActivo,
		FechaVencimiento: fechaVencimiento,
	}, nil
}

// NormalizarCodigo aplica la normalización canónica de códigos de insumo.
func NormalizarCodigo(codigo string) string {
	return strings.ToUpper(strings.TrimSpace(codigo))
}

// Aumentar suma cantidad al stock. La cantidad debe ser positiva.
func (i *Insumo) Aumentar(cantidad int) error {
	if cantidad <= 0 {
		return domain.NuevaValidacion("la cantidad a aumentar debe ser positiva")
	}
	i.Stock += cantidad
	return nil
}

// Disminuir resta cantidad del stock. Falla si excede el disponible,
// sin mutar nada: el stock nunca queda negativo.
func (i *Insumo) Disminuir(cantidad int) error {
	if cantidad <= 0 {
		return domain.NuevaValidacion("la cantidad a disminuir debe ser positiva")
	}
	if cantidad > i.Stock {
		return &domain.ErrorStockInsuficiente{
			Codigo:     i.Codigo,
			Solicitado: cantidad,
			Disponible: i.Stock,
		}
	}
	i.Stock -= cantidad
	return nil
}

// EsCritico indica stock en o por debajo del mínimo. Propiedad derivada,
// nunca almacenada.
func (i *Insumo) EsCritico() bool {
	return i.Stock <= i.StockMinimo
}

// Deficit devuelve stock - mínimo; negativo cuanto más deficitario.
func (i *Insumo) Deficit() int {
	return i.Stock - i.StockMinimo
}

// EstaVencido indica si la fecha de vencimiento ya pasó.
func (i *Insumo) EstaVencido() bool {
	return i.FechaVencimiento != nil && i.FechaVencimiento.Before(hoy())
}

// TieneStock indica si hay alguna unidad disponible.
func (i *Insumo) TieneStock() bool {
	return i.Stock > 0
}

func hoy() time.Time {
	ahora := time.Now()
	return time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())
}
