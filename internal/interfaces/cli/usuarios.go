package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clinica-horizonte/insumos/internal/application/usuarios"
)

func nuevoUsuariosCommand(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usuarios",
		Short: "Administración de usuarios (requiere rol ADMIN)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "listar",
		Short: "Lista los usuarios activos",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := d.autenticar(cmd)
			if err != nil {
				return err
			}
			if err := soloAdmin(actor); err != nil {
				return err
			}
			lista, err := d.Usuarios.ListarActivos()
			if err != nil {
				return err
			}
			imprimirUsuarios(cmd.OutOrStdout(), lista)
			return nil
		},
	})

	var alta usuarios.AltaInput
	altaCmd := &cobra.Command{
		Use:   "alta",
		Short: "Da de alta un usuario nuevo",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := d.autenticar(cmd)
			if err != nil {
				return err
			}
			if err := soloAdmin(actor); err != nil {
				return err
			}
			u, err := d.Usuarios.Alta(alta)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Usuario %d (%s) creado con rol %s\n",
				u.Legajo, u.NombreCompleto(), u.Rol)
			return nil
		},
	}
	altaCmd.Flags().IntVar(&alta.Legajo, "nuevo-legajo", 0, "legajo del usuario nuevo")
	altaCmd.Flags().StringVar(&alta.Password, "nueva-password", "", "contraseña (mínimo 6 caracteres)")
	altaCmd.Flags().StringVar(&alta.Nombre, "nombre", "", "nombre")
	altaCmd.Flags().StringVar(&alta.Apellido, "apellido", "", "apellido")
	altaCmd.Flags().StringVar(&alta.Rol, "rol", "", "rol (ADMIN/AUXILIAR)")
	cmd.AddCommand(altaCmd)

	var legajoBaja int
	bajaCmd := &cobra.Command{
		Use:   "baja",
		Short: "Baja lógica de un usuario (el registro se conserva)",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := d.autenticar(cmd)
			if err != nil {
				return err
			}
			if err := soloAdmin(actor); err != nil {
				return err
			}
			if err := d.Usuarios.BajaLogica(legajoBaja, actor); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Usuario %d dado de baja\n", legajoBaja)
			return nil
		},
	}
	bajaCmd.Flags().IntVar(&legajoBaja, "baja-legajo", 0, "legajo del usuario a dar de baja")
	cmd.AddCommand(bajaCmd)

	var legajoDesbloqueo int
	desbloquearCmd := &cobra.Command{
		Use:   "desbloquear",
		Short: "Desbloquea un legajo bloqueado por intentos fallidos",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := d.autenticar(cmd)
			if err != nil {
				return err
			}
			if err := soloAdmin(actor); err != nil {
				return err
			}
			d.Auth.Desbloquear(legajoDesbloqueo)
			fmt.Fprintf(cmd.OutOrStdout(), "Legajo %d desbloqueado\n", legajoDesbloqueo)
			return nil
		},
	}
	desbloquearCmd.Flags().IntVar(&legajoDesbloqueo, "legajo-objetivo", 0, "legajo a desbloquear")
	cmd.AddCommand(desbloquearCmd)

	return cmd
}
