package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func nuevoIngresoCommand(d *Deps) *cobra.Command {
	var codigo string
	var cantidad int
	cmd := &cobra.Command{
		Use:   "ingreso",
		Short: "Registra el ingreso de un insumo al stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := d.autenticar(cmd)
			if err != nil {
				return err
			}
			mov, err := d.Stock.RegistrarIngreso(cmd.Context(), codigo, cantidad, actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ingreso registrado (movimiento #%d): %s +%d, stock actual %d\n",
				mov.ID, mov.Insumo.Codigo, mov.Cantidad, mov.Insumo.Stock)
			return nil
		},
	}
	cmd.Flags().StringVar(&codigo, "codigo", "", "código del insumo")
	cmd.Flags().IntVar(&cantidad, "cantidad", 0, "cantidad a ingresar")
	return cmd
}

func nuevoEgresoCommand(d *Deps) *cobra.Command {
	var codigo string
	var cantidad, servicioID int
	cmd := &cobra.Command{
		Use:   "egreso",
		Short: "Registra el egreso de un insumo hacia un servicio",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := d.autenticar(cmd)
			if err != nil {
				return err
			}
			mov, err := d.Stock.RegistrarEgreso(cmd.Context(), codigo, cantidad, servicioID, actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Egreso registrado (movimiento #%d): %s -%d hacia %s, stock actual %d\n",
				mov.ID, mov.Insumo.Codigo, mov.Cantidad, mov.Servicio.Nombre, mov.Insumo.Stock)
			if mov.Insumo.EsCritico() {
				fmt.Fprintf(cmd.OutOrStdout(), "¡ALERTA! Stock crítico en %s\n", mov.Insumo.Nombre)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&codigo, "codigo", "", "código del insumo")
	cmd.Flags().IntVar(&cantidad, "cantidad", 0, "cantidad a egresar")
	cmd.Flags().IntVar(&servicioID, "servicio", 0, "id del servicio de destino")
	return cmd
}

func nuevoInsumosCommand(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insumos",
		Short: "Consultas sobre el catálogo de insumos",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "listar",
		Short: "Lista todos los insumos",
		RunE: func(cmd *cobra.Command, args []string) error {
			lista, err := d.Stock.TodosLosInsumos()
			if err != nil {
				return err
			}
			imprimirInsumos(cmd.OutOrStdout(), lista)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "criticos",
		Short: "Lista insumos con stock en o por debajo del mínimo",
		RunE: func(cmd *cobra.Command, args []string) error {
			lista, err := d.Stock.InsumosCriticos()
			if err != nil {
				return err
			}
			imprimirInsumos(cmd.OutOrStdout(), lista)
			return nil
		},
	})

	var dias int
	vencimientos := &cobra.Command{
		Use:   "vencimientos",
		Short: "Lista insumos próximos a vencer",
		RunE: func(cmd *cobra.Command, args []string) error {
			lista, err := d.Stock.InsumosProximosAVencer(dias)
			if err != nil {
				return err
			}
			imprimirInsumos(cmd.OutOrStdout(), lista)
			return nil
		},
	}
	vencimientos.Flags().IntVar(&dias, "dias", d.DiasAlertaVencimiento, "días de anticipación")
	cmd.AddCommand(vencimientos)

	cmd.AddCommand(&cobra.Command{
		Use:   "buscar <nombre>",
		Short: "Busca insumos por nombre parcial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lista, err := d.Stock.BuscarPorNombre(args[0])
			if err != nil {
				return err
			}
			imprimirInsumos(cmd.OutOrStdout(), lista)
			return nil
		},
	})

	return cmd
}
