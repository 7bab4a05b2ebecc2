package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
)

func TestNuevoInsumo(t *testing.T) {
	ins, err := entity.NuevoInsumo("  gas-01 ", "Gasas estériles", "caja", 50, 10, nil)
	require.NoError(t, err)

	assert.Equal(t, "GAS-01", ins.Codigo, "el código debe normalizarse a mayúsculas sin espacios")
	assert.Equal(t, entity.EstadoActivo, ins.Estado)
	assert.Equal(t, 50, ins.Stock)
	assert.Equal(t, 10, ins.StockMinimo)
	assert.Nil(t, ins.FechaVencimiento)
}

func TestNuevoInsumoInvalido(t *testing.T) {
	casos := []struct {
		nombre string
		crear  func() (*entity.Insumo, error)
	}{
		{"código vacío", func() (*entity.Insumo, error) {
			return entity.NuevoInsumo("   ", "Gasas", "caja", 10, 5, nil)
		}},
		{"nombre vacío", func() (*entity.Insumo, error) {
			return entity.NuevoInsumo("GAS-01", "", "caja", 10, 5, nil)
		}},
		{"unidad vacía", func() (*entity.Insumo, error) {
			return entity.NuevoInsumo("GAS-01", "Gasas", " ", 10, 5, nil)
		}},
		{"stock negativo", func() (*entity.Insumo, error) {
			return entity.NuevoInsumo("GAS-01", "Gasas", "caja", -1, 5, nil)
		}},
		{"mínimo negativo", func() (*entity.Insumo, error) {
			return entity.NuevoInsumo("GAS-01", "Gasas", "caja", 10, -5, nil)
		}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			ins, err := c.crear()
			assert.Nil(t, ins)
			assert.ErrorIs(t, err, domain.ErrValidacion)
		})
	}
}

func TestAumentarYDisminuir(t *testing.T) {
	ins, err := entity.NuevoInsumo("GAS-01", "Gasas", "caja", 50, 10, nil)
	require.NoError(t, err)

	require.NoError(t, ins.Aumentar(25))
	assert.Equal(t, 75, ins.Stock)

	require.NoError(t, ins.Disminuir(70))
	assert.Equal(t, 5, ins.Stock)

	// Cantidades no positivas son error de validación, no un no-op.
	assert.ErrorIs(t, ins.Aumentar(0), domain.ErrValidacion)
	assert.ErrorIs(t, ins.Disminuir(-3), domain.ErrValidacion)
	assert.Equal(t, 5, ins.Stock, "un error no debe mutar el stock")
}

func TestDisminuirStockInsuficiente(t *testing.T) {
	ins, err := entity.NuevoInsumo("GAS-01", "Gasas", "caja", 5, 10, nil)
	require.NoError(t, err)

	err = ins.Disminuir(6)
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)

	var detalle *domain.ErrorStockInsuficiente
	require.True(t, errors.As(err, &detalle))
	assert.Equal(t, "GAS-01", detalle.Codigo)
	assert.Equal(t, 6, detalle.Solicitado)
	assert.Equal(t, 5, detalle.Disponible, "el error debe informar el stock disponible")
	assert.Equal(t, 5, ins.Stock, "el stock no debe cambiar ante un egreso rechazado")
}

func TestEsCriticoYDeficit(t *testing.T) {
	ins, err := entity.NuevoInsumo("GAS-01", "Gasas", "caja", 11, 10, nil)
	require.NoError(t, err)
	assert.False(t, ins.EsCritico())

	require.NoError(t, ins.Disminuir(1))
	assert.True(t, ins.EsCritico(), "stock igual al mínimo ya es crítico")
	assert.Equal(t, 0, ins.Deficit())

	require.NoError(t, ins.Disminuir(7))
	assert.True(t, ins.EsCritico())
	assert.Equal(t, -7, ins.Deficit())
}

func TestEstaVencido(t *testing.T) {
	ayer := time.Now().AddDate(0, 0, -1)
	manana := time.Now().AddDate(0, 0, 1)

	vencido, err := entity.NuevoInsumo("ALC-96", "Alcohol", "litro", 3, 1, &ayer)
	require.NoError(t, err)
	assert.True(t, vencido.EstaVencido())

	vigente, err := entity.NuevoInsumo("ALC-70", "Alcohol 70", "litro", 3, 1, &manana)
	require.NoError(t, err)
	assert.False(t, vigente.EstaVencido())

	sinFecha, err := entity.NuevoInsumo("GAS-01", "Gasas", "caja", 3, 1, nil)
	require.NoError(t, err)
	assert.False(t, sinFecha.EstaVencido(), "sin fecha de vencimiento nunca está vencido")
}
