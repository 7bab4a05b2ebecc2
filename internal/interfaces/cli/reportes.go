package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
)

const formatoFecha = "2006-01-02"

func nuevoReporteCommand(d *Deps) *cobra.Command {
	var desdeStr, hastaStr string
	var servicioID int
	cmd := &cobra.Command{
		Use:   "reporte",
		Short: "Movimientos por período y servicio (el más nuevo primero)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := d.autenticar(cmd); err != nil {
				return err
			}
			var lista []*entity.Movimiento
			var err error
			switch {
			case desdeStr == "" && hastaStr == "":
				// Sin período: movimientos del día, como el reporte rápido original.
				lista, err = d.Reportes.MovimientosDelDia()
			default:
				desde, perr := time.Parse(formatoFecha, desdeStr)
				if perr != nil {
					return domain.NuevaValidacion("fecha desde inválida: %q", desdeStr)
				}
				hasta, perr := time.Parse(formatoFecha, hastaStr)
				if perr != nil {
					return domain.NuevaValidacion("fecha hasta inválida: %q", hastaStr)
				}
				var filtro *int
				if servicioID > 0 {
					filtro = &servicioID
				}
				lista, err = d.Reportes.MovimientosPorPeriodoYServicio(desde, hasta, filtro)
			}
			if err != nil {
				return err
			}
			imprimirMovimientos(cmd.OutOrStdout(), lista)
			return nil
		},
	}
	cmd.Flags().StringVar(&desdeStr, "desde", "", "fecha inicio (YYYY-MM-DD)")
	cmd.Flags().StringVar(&hastaStr, "hasta", "", "fecha fin (YYYY-MM-DD)")
	cmd.Flags().IntVar(&servicioID, "servicio", 0, "filtrar por id de servicio (0 = todos)")
	return cmd
}
