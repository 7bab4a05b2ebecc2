package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinica-horizonte/insumos/internal/application/usuarios"
	"github.com/clinica-horizonte/insumos/internal/domain"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
)

// nuevoSeedCommand carga datos de demostración: servicios de referencia, un
// administrador inicial y un catálogo mínimo de insumos. Idempotente: los
// duplicados se saltean.
func nuevoSeedCommand(d *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Carga datos de demostración",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			servicios := []struct {
				id     int
				nombre string
			}{
				{1, "Guardia"},
				{2, "Quirófano"},
				{3, "Terapia Intensiva"},
				{4, "Enfermería"},
			}
			for _, s := range servicios {
				srv, err := entity.NuevoServicio(s.id, s.nombre)
				if err != nil {
					return err
				}
				if err := d.Servicios.Save(srv); err != nil && !errors.Is(err, domain.ErrDuplicado) {
					return err
				}
			}

			cuentas := []usuarios.AltaInput{
				{Legajo: 1000, Password: "admin123", Nombre: "Marta", Apellido: "Acosta", Rol: entity.RolAdmin},
				{Legajo: 2000, Password: "auxi456", Nombre: "Diego", Apellido: "Ferreyra", Rol: entity.RolAuxiliar},
			}
			for _, in := range cuentas {
				if _, err := d.Usuarios.Alta(in); err != nil && !errors.Is(err, domain.ErrDuplicado) {
					return err
				}
			}

			vencimiento := time.Now().AddDate(0, 6, 0)
			catalogo := []struct {
				codigo, nombre, unidad string
				stock, minimo          int
				vence                  *time.Time
			}{
				{"GAS-01", "Gasas estériles 10x10", "paquete", 50, 10, nil},
				{"JER-05", "Jeringas 5ml", "unidad", 200, 50, nil},
				{"ALC-96", "Alcohol 96°", "litro", 30, 5, &vencimiento},
				{"GUA-LT", "Guantes de látex talle M", "caja", 40, 15, nil},
			}
			for _, c := range catalogo {
				ins, err := entity.NuevoInsumo(c.codigo, c.nombre, c.unidad, c.stock, c.minimo, c.vence)
				if err != nil {
					return err
				}
				if err := d.Insumos.Save(ins); err != nil && !errors.Is(err, domain.ErrDuplicado) {
					return err
				}
			}

			fmt.Fprintln(out, "Datos de demostración cargados.")
			return nil
		},
	}
}
