package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
	"github.com/clinica-horizonte/insumos/internal/infrastructure/memory"
)

func usuarioDePrueba(t *testing.T) *entity.Usuario {
	t.Helper()
	u, err := entity.NuevoUsuario(1000, "admin123", "Marta", "Acosta", entity.RolAdmin)
	require.NoError(t, err)
	return u
}

func insumoDePrueba(t *testing.T, codigo string, stock int) *entity.Insumo {
	t.Helper()
	ins, err := entity.NuevoInsumo(codigo, "Insumo "+codigo, "unidad", stock, 10, nil)
	require.NoError(t, err)
	return ins
}

func movimientoDePrueba(t *testing.T, ins *entity.Insumo) *entity.Movimiento {
	t.Helper()
	m, err := entity.NuevoMovimiento(entity.MovimientoIngreso, 5, usuarioDePrueba(t), ins, nil)
	require.NoError(t, err)
	return m
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger: IDs secuenciales, append-only, orden
// ──────────────────────────────────────────────────────────────────────────────

func TestAppendAsignaIDsSecuenciales(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewMovimientoRepository(store)
	ins := insumoDePrueba(t, "GAS-01", 50)

	for esperado := int64(1); esperado <= 3; esperado++ {
		m := movimientoDePrueba(t, ins)
		require.NoError(t, repo.Append(m))
		assert.Equal(t, esperado, m.ID)
		assert.False(t, m.Fecha.IsZero(), "el asiento recibe fecha al asentarse")
	}
}

func TestAppendRechazaIDPreasignado(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewMovimientoRepository(store)

	m := movimientoDePrueba(t, insumoDePrueba(t, "GAS-01", 50))
	m.ID = 7
	assert.ErrorIs(t, repo.Append(m), domain.ErrValidacion)

	movs, err := repo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestAppendRespetaFechaExplicita(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewMovimientoRepository(store)

	m := movimientoDePrueba(t, insumoDePrueba(t, "GAS-01", 50))
	fecha := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.Local)
	m.Fecha = fecha
	require.NoError(t, repo.Append(m))

	movs, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.True(t, movs[0].Fecha.Equal(fecha))
}

func TestFindAllOrdenaPorFechaYLuegoID(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewMovimientoRepository(store)
	ins := insumoDePrueba(t, "GAS-01", 50)

	misma := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.Local)
	vieja := misma.AddDate(0, 0, -3)

	primero := movimientoDePrueba(t, ins)
	primero.Fecha = misma
	segundo := movimientoDePrueba(t, ins)
	segundo.Fecha = vieja
	tercero := movimientoDePrueba(t, ins)
	tercero.Fecha = misma
	for _, m := range []*entity.Movimiento{primero, segundo, tercero} {
		require.NoError(t, repo.Append(m))
	}

	movs, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, movs, 3)
	// Misma fecha: gana el ID más alto; la fecha vieja va al final.
	assert.Equal(t, int64(3), movs[0].ID)
	assert.Equal(t, int64(1), movs[1].ID)
	assert.Equal(t, int64(2), movs[2].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Insumos: duplicados y aislamiento de copias
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveInsumoDuplicado(t *testing.T) {
	repo := memory.NewInsumoRepository(memory.NewStore())

	require.NoError(t, repo.Save(insumoDePrueba(t, "GAS-01", 50)))
	err := repo.Save(insumoDePrueba(t, "GAS-01", 99))
	assert.ErrorIs(t, err, domain.ErrDuplicado)

	guardado, err := repo.FindByCodigo("GAS-01")
	require.NoError(t, err)
	assert.Equal(t, 50, guardado.Stock, "el duplicado no debe pisar el registro original")
}

func TestLecturasDevuelvenCopias(t *testing.T) {
	repo := memory.NewInsumoRepository(memory.NewStore())
	require.NoError(t, repo.Save(insumoDePrueba(t, "GAS-01", 50)))

	leido, err := repo.FindByCodigo("GAS-01")
	require.NoError(t, err)
	leido.Stock = 999

	releido, err := repo.FindByCodigo("GAS-01")
	require.NoError(t, err)
	assert.Equal(t, 50, releido.Stock, "mutar lo leído no debe afectar lo almacenado")
}

func TestUpdateInsumoInexistente(t *testing.T) {
	repo := memory.NewInsumoRepository(memory.NewStore())
	err := repo.Update(insumoDePrueba(t, "NO-EXISTE", 1))
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner: commit y rollback
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunnerCommit(t *testing.T) {
	store := memory.NewStore()
	insumos := memory.NewInsumoRepository(store)
	movimientos := memory.NewMovimientoRepository(store)
	runner := memory.NewTxRunner(store)
	require.NoError(t, insumos.Save(insumoDePrueba(t, "GAS-01", 50)))

	err := runner.Run(context.Background(), func(ins repository.InsumoRepository, movs repository.MovimientoRepository) error {
		registro, err := ins.FindByCodigoForUpdate("GAS-01")
		if err != nil {
			return err
		}
		if err := registro.Aumentar(10); err != nil {
			return err
		}
		if err := ins.Update(registro); err != nil {
			return err
		}
		return movs.Append(movimientoDePrueba(t, registro))
	})
	require.NoError(t, err)

	guardado, err := insumos.FindByCodigo("GAS-01")
	require.NoError(t, err)
	assert.Equal(t, 60, guardado.Stock)
	asientos, err := movimientos.FindAll()
	require.NoError(t, err)
	assert.Len(t, asientos, 1)
}

// Si la función de la transacción falla después de escribir, todo se revierte:
// el stock vuelve al valor anterior y el ledger (incluida su secuencia de IDs)
// queda como estaba.
func TestTxRunnerRollback(t *testing.T) {
	store := memory.NewStore()
	insumos := memory.NewInsumoRepository(store)
	movimientos := memory.NewMovimientoRepository(store)
	runner := memory.NewTxRunner(store)
	require.NoError(t, insumos.Save(insumoDePrueba(t, "GAS-01", 50)))

	fallo := errors.New("fallo simulado")
	err := runner.Run(context.Background(), func(ins repository.InsumoRepository, movs repository.MovimientoRepository) error {
		registro, err := ins.FindByCodigoForUpdate("GAS-01")
		if err != nil {
			return err
		}
		if err := registro.Aumentar(10); err != nil {
			return err
		}
		if err := ins.Update(registro); err != nil {
			return err
		}
		if err := movs.Append(movimientoDePrueba(t, registro)); err != nil {
			return err
		}
		return fallo
	})
	require.ErrorIs(t, err, fallo)

	guardado, err := insumos.FindByCodigo("GAS-01")
	require.NoError(t, err)
	assert.Equal(t, 50, guardado.Stock)
	asientos, err := movimientos.FindAll()
	require.NoError(t, err)
	assert.Empty(t, asientos)

	// La secuencia también se revierte: el siguiente asiento recibe el ID 1.
	m := movimientoDePrueba(t, guardado)
	require.NoError(t, movimientos.Append(m))
	assert.Equal(t, int64(1), m.ID)
}

func TestTxRunnerContextoCancelado(t *testing.T) {
	runner := memory.NewTxRunner(memory.NewStore())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runner.Run(ctx, func(repository.InsumoRepository, repository.MovimientoRepository) error {
		t.Fatal("la función no debe ejecutarse con el contexto cancelado")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios y servicios
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteLogicoConservaElRegistro(t *testing.T) {
	repo := memory.NewUsuarioRepository(memory.NewStore())
	require.NoError(t, repo.Save(usuarioDePrueba(t)))

	require.NoError(t, repo.DeleteLogico(1000))

	u, err := repo.FindByLegajo(1000)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.False(t, u.Activo)

	activos, err := repo.FindAllActivos()
	require.NoError(t, err)
	assert.Empty(t, activos)

	credenciales, err := repo.FindByLegajoYPassword(1000, "admin123")
	require.NoError(t, err)
	assert.Nil(t, credenciales, "un usuario inactivo no resuelve credenciales")
}

func TestServicioFindByNombre(t *testing.T) {
	repo := memory.NewServicioRepository(memory.NewStore())
	srv, err := entity.NuevoServicio(2, "Quirófano")
	require.NoError(t, err)
	require.NoError(t, repo.Save(srv))

	encontrado, err := repo.FindByNombre("  quirófano ")
	require.NoError(t, err)
	require.NotNil(t, encontrado)
	assert.Equal(t, 2, encontrado.ID)

	ausente, err := repo.FindByNombre("Guardia")
	require.NoError(t, err)
	assert.Nil(t, ausente)
}
