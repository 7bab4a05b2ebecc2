package stock

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
	"github.com/clinica-horizonte/insumos/pkg/logger"
)

// UseCase es el único lugar donde el stock y el libro de movimientos se
// mantienen consistentes: resolución del insumo, mutación de stock y asiento
// del movimiento corren dentro de una misma transacción, con el registro del
// insumo bloqueado para serializar operaciones concurrentes sobre el mismo
// código.
type UseCase struct {
	txRunner  TxRunner
	insumos   repository.InsumoRepository
	servicios repository.ServicioRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de stock.
func NewUseCase(txRunner TxRunner, insumos repository.InsumoRepository, servicios repository.ServicioRepository, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, insumos: insumos, servicios: servicios, log: log}
}

// RegistrarIngreso suma cantidad al stock del insumo y asienta un movimiento
// INGRESO (sin servicio) como una sola unidad atómica. Devuelve el movimiento
// con su ID asignado por el ledger.
func (uc *UseCase) RegistrarIngreso(ctx context.Context, codigo string, cantidad int, actor *entity.Usuario) (*entity.Movimiento, error) {
	codigo = entity.NormalizarCodigo(codigo)
	if err := validarOperacion(codigo, cantidad, actor); err != nil {
		return nil, err
	}

	opID := uuid.New().String()
	var mov *entity.Movimiento
	err := uc.txRunner.Run(ctx, func(insumos repository.InsumoRepository, movimientos repository.MovimientoRepository) error {
		ins, err := insumos.FindByCodigoForUpdate(codigo)
		if err != nil {
			return err
		}
		if ins == nil {
			return &domain.ErrorNoEncontrado{Entidad: "insumo", ID: codigo}
		}
		if err := ins.Aumentar(cantidad); err != nil {
			return err
		}
		if err := insumos.Update(ins); err != nil {
			return err
		}
		mov, err = entity.NuevoMovimiento(entity.MovimientoIngreso, cantidad, actor, ins, nil)
		if err != nil {
			return err
		}
		return movimientos.Append(mov)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("op_id", opID).
		Str("codigo", codigo).
		Int("cantidad", cantidad).
		Int("legajo", actor.Legajo).
		Int64("movimiento_id", mov.ID).
		Msg("ingreso registrado")
	return mov, nil
}

// RegistrarEgreso descuenta cantidad del stock y asienta un movimiento EGRESO
// hacia el servicio indicado, como una sola unidad atómica. Con stock
// insuficiente falla sin mutar nada. Si el insumo queda en nivel crítico se
// emite una alerta por log después del commit; es consultiva y no afecta el
// resultado de la operación.
func (uc *UseCase) RegistrarEgreso(ctx context.Context, codigo string, cantidad int, servicioID int, actor *entity.Usuario) (*entity.Movimiento, error) {
	codigo = entity.NormalizarCodigo(codigo)
	if err := validarOperacion(codigo, cantidad, actor); err != nil {
		return nil, err
	}

	srv, err := uc.servicios.FindByID(servicioID)
	if err != nil {
		return nil, err
	}
	if srv == nil {
		return nil, &domain.ErrorNoEncontrado{Entidad: "servicio", ID: strconv.Itoa(servicioID)}
	}

	opID := uuid.New().String()
	var mov *entity.Movimiento
	var critico bool
	var nombreInsumo string
	var stockRestante int
	err = uc.txRunner.Run(ctx, func(insumos repository.InsumoRepository, movimientos repository.MovimientoRepository) error {
		ins, err := insumos.FindByCodigoForUpdate(codigo)
		if err != nil {
			return err
		}
		if ins == nil {
			return &domain.ErrorNoEncontrado{Entidad: "insumo", ID: codigo}
		}
		if err := ins.Disminuir(cantidad); err != nil {
			return err
		}
		if err := insumos.Update(ins); err != nil {
			return err
		}
		mov, err = entity.NuevoMovimiento(entity.MovimientoEgreso, cantidad, actor, ins, srv)
		if err != nil {
			return err
		}
		if err := movimientos.Append(mov); err != nil {
			return err
		}
		critico = ins.EsCritico()
		nombreInsumo = ins.Nombre
		stockRestante = ins.Stock
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("op_id", opID).
		Str("codigo", codigo).
		Int("cantidad", cantidad).
		Int("servicio_id", servicioID).
		Int("legajo", actor.Legajo).
		Int64("movimiento_id", mov.ID).
		Msg("egreso registrado")
	if critico {
		uc.log.Warn().
			Str("op_id", opID).
			Str("codigo", codigo).
			Str("nombre", nombreInsumo).
			Int("stock", stockRestante).
			Msg("stock crítico")
	}
	return mov, nil
}

// InsumosCriticos lista los insumos con stock en o por debajo del mínimo,
// recalculado, más deficitario primero.
func (uc *UseCase) InsumosCriticos() ([]*entity.Insumo, error) {
	return uc.insumos.FindCriticos()
}

// InsumosProximosAVencer lista insumos con vencimiento no pasado que cae
// dentro de los próximos diasAlerta días.
func (uc *UseCase) InsumosProximosAVencer(diasAlerta int) ([]*entity.Insumo, error) {
	if diasAlerta <= 0 {
		return nil, domain.NuevaValidacion("los días de alerta deben ser positivos")
	}
	todos, err := uc.insumos.FindAll()
	if err != nil {
		return nil, err
	}
	limite := time.Now().AddDate(0, 0, diasAlerta)
	var proximos []*entity.Insumo
	for _, ins := range todos {
		if ins.FechaVencimiento != nil && !ins.EstaVencido() && ins.FechaVencimiento.Before(limite) {
			proximos = append(proximos, ins)
		}
	}
	return proximos, nil
}

// TodosLosInsumos lista todos los insumos registrados, ordenados por código.
func (uc *UseCase) TodosLosInsumos() ([]*entity.Insumo, error) {
	return uc.insumos.FindAll()
}

// BuscarPorNombre busca insumos por coincidencia parcial de nombre.
func (uc *UseCase) BuscarPorNombre(nombreParcial string) ([]*entity.Insumo, error) {
	nombreParcial = strings.TrimSpace(nombreParcial)
	if nombreParcial == "" {
		return nil, domain.NuevaValidacion("el nombre a buscar no puede estar vacío")
	}
	return uc.insumos.SearchByNombre(nombreParcial)
}

// HayStockSuficiente consulta si el insumo cubre la cantidad pedida.
// Devuelve false si el insumo no existe.
func (uc *UseCase) HayStockSuficiente(codigo string, cantidad int) (bool, error) {
	ins, err := uc.insumos.FindByCodigo(entity.NormalizarCodigo(codigo))
	if err != nil {
		return false, err
	}
	if ins == nil {
		return false, nil
	}
	return ins.Stock >= cantidad, nil
}

// validarOperacion aplica las validaciones comunes de ingreso/egreso antes de
// cualquier lookup. La cantidad debe ser estrictamente positiva: cero o
// negativa es error de validación, no un no-op.
func validarOperacion(codigo string, cantidad int, actor *entity.Usuario) error {
	if codigo == "" {
		return domain.NuevaValidacion("el código no puede estar vacío")
	}
	if cantidad <= 0 {
		return domain.NuevaValidacion("la cantidad debe ser positiva")
	}
	if actor == nil {
		return domain.NuevaValidacion("el usuario es requerido")
	}
	return nil
}

