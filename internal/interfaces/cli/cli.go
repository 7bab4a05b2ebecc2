// Package cli expone la aplicación por consola: comandos directos para cada
// operación y un menú interactivo equivalente al flujo original de la clínica.
package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clinica-horizonte/insumos/internal/application/auth"
	"github.com/clinica-horizonte/insumos/internal/application/reportes"
	"github.com/clinica-horizonte/insumos/internal/application/stock"
	"github.com/clinica-horizonte/insumos/internal/application/usuarios"
	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
	"github.com/clinica-horizonte/insumos/internal/domain/repository"
	"github.com/clinica-horizonte/insumos/pkg/logger"
)

// Deps dependencias de la capa de consola.
type Deps struct {
	Auth     *auth.UseCase
	Stock    *stock.UseCase
	Usuarios *usuarios.UseCase
	Reportes *reportes.UseCase

	// Repos usados solo por seed, que carga datos de referencia directamente.
	Insumos   repository.InsumoRepository
	Servicios repository.ServicioRepository

	// Anticipación por defecto del reporte de vencimientos.
	DiasAlertaVencimiento int

	Log *logger.Logger
}

// NewRootCommand arma el árbol de comandos de la aplicación.
func NewRootCommand(deps *Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "insumos",
		Short:         "Gestión de stock de insumos - Clínica Horizonte",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().Int("legajo", 0, "legajo del usuario que opera")
	root.PersistentFlags().String("password", "", "contraseña del usuario que opera")

	root.AddCommand(
		nuevoMenuCommand(deps),
		nuevoIngresoCommand(deps),
		nuevoEgresoCommand(deps),
		nuevoInsumosCommand(deps),
		nuevoReporteCommand(deps),
		nuevoUsuariosCommand(deps),
		nuevoSeedCommand(deps),
	)
	return root
}

// autenticar resuelve el actor desde los flags persistentes.
func (d *Deps) autenticar(cmd *cobra.Command) (*entity.Usuario, error) {
	legajo, _ := cmd.Flags().GetInt("legajo")
	password, _ := cmd.Flags().GetString("password")
	return d.Auth.Login(legajo, password)
}

// soloAdmin corta la operación si el actor no es administrador.
func soloAdmin(actor *entity.Usuario) error {
	if !actor.EsAdmin() {
		return domain.NuevaValidacion("acceso denegado: requiere rol ADMIN")
	}
	return nil
}

func imprimirInsumos(w io.Writer, lista []*entity.Insumo) {
	if len(lista) == 0 {
		fmt.Fprintln(w, "Sin insumos para mostrar.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CÓDIGO\tNOMBRE\tUNIDAD\tSTOCK\tMÍNIMO\tESTADO\tVENCIMIENTO")
	for _, i := range lista {
		venc := "-"
		if i.FechaVencimiento != nil {
			venc = i.FechaVencimiento.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			i.Codigo, i.Nombre, i.Unidad, i.Stock, i.StockMinimo, i.Estado, venc)
	}
	tw.Flush()
}

func imprimirMovimientos(w io.Writer, lista []*entity.Movimiento) {
	if len(lista) == 0 {
		fmt.Fprintln(w, "Sin movimientos en el período.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFECHA\tTIPO\tINSUMO\tCANTIDAD\tSERVICIO\tUSUARIO")
	for _, m := range lista {
		servicio := "-"
		if m.Servicio != nil {
			servicio = m.Servicio.Nombre
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			m.ID, m.Fecha.Format("2006-01-02 15:04"), m.Tipo, m.Insumo.Codigo,
			m.Cantidad, servicio, m.Usuario.NombreCompleto())
	}
	tw.Flush()
}

func imprimirUsuarios(w io.Writer, lista []*entity.Usuario) {
	if len(lista) == 0 {
		fmt.Fprintln(w, "No hay usuarios activos.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEGAJO\tNOMBRE\tROL")
	for _, u := range lista {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", u.Legajo, u.NombreCompleto(), u.Rol)
	}
	tw.Flush()
}
