package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/clinica-horizonte/insumos/internal/application/auth"
	"github.com/clinica-horizonte/insumos/internal/application/reportes"
	"github.com/clinica-horizonte/insumos/internal/application/stock"
	"github.com/clinica-horizonte/insumos/internal/application/usuarios"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
	"github.com/clinica-horizonte/insumos/internal/infrastructure/memory"
	"github.com/clinica-horizonte/insumos/internal/infrastructure/postgres"
	"github.com/clinica-horizonte/insumos/internal/interfaces/cli"
	"github.com/clinica-horizonte/insumos/pkg/config"
	"github.com/clinica-horizonte/insumos/pkg/logger"
)

func main() {
	_ = godotenv.Load() // .env opcional

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Debug().
		Str("env", cfg.App.Env).
		Str("backend", cfg.Storage.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		insumosRepo     repository.InsumoRepository
		movimientosRepo repository.MovimientoRepository
		serviciosRepo   repository.ServicioRepository
		usuariosRepo    repository.UsuarioRepository
		txRunner        stock.TxRunner
	)

	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		insumosRepo = postgres.NewInsumoRepository(pool)
		movimientosRepo = postgres.NewMovimientoRepository(pool)
		serviciosRepo = postgres.NewServicioRepository(pool)
		usuariosRepo = postgres.NewUsuarioRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	default:
		store := memory.NewStore()
		insumosRepo = memory.NewInsumoRepository(store)
		movimientosRepo = memory.NewMovimientoRepository(store)
		serviciosRepo = memory.NewServicioRepository(store)
		usuariosRepo = memory.NewUsuarioRepository(store)
		txRunner = memory.NewTxRunner(store)
	}

	deps := &cli.Deps{
		Auth:      auth.NewUseCase(usuariosRepo, log),
		Stock:     stock.NewUseCase(txRunner, insumosRepo, serviciosRepo, log),
		Usuarios:  usuarios.NewUseCase(usuariosRepo),
		Reportes:  reportes.NewUseCase(movimientosRepo),
		Insumos:   insumosRepo,
		Servicios: serviciosRepo,

		DiasAlertaVencimiento: cfg.Stock.DiasAlertaVencimiento,

		Log: log,
	}

	root := cli.NewRootCommand(deps)
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
