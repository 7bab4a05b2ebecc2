package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinica-horizonte/insumos/internal/application/usuarios"
	"github.com/clinica-horizonte/insumos/internal/domain/entity"
)

const textoMenu = `
=== Clínica Horizonte - Gestión de Stock ===
 1. Listar usuarios activos
 2. Alta de usuario
 3. Modificar usuario
 4. Baja de usuario
 5. Ingreso de insumo
 6. Egreso de insumo
 7. Listar insumos
 8. Insumos críticos
 9. Reporte de movimientos
10. Cerrar sesión
 0. Salir`

// Señales de control del loop del menú; no son errores de negocio.
var (
	errSalir        = errors.New("salir")
	errCerrarSesion = errors.New("cerrar sesión")
)

func nuevoMenuCommand(d *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Menú interactivo por consola",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ejecutarMenu(cmd.Context(), d, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// consola agrupa la lectura con prompts sobre el scanner de entrada.
type consola struct {
	in  *bufio.Scanner
	out io.Writer
}

func (c *consola) leerString(prompt string) string {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

// leerEntero lee un entero con reintentos, como la consola original.
// Devuelve 0 si la entrada se agota.
func (c *consola) leerEntero(prompt string) int {
	for {
		s := c.leerString(prompt)
		if s == "" {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err == nil {
			return n
		}
		fmt.Fprintln(c.out, "Número inválido, intente nuevamente.")
	}
}

func ejecutarMenu(ctx context.Context, d *Deps, in io.Reader, out io.Writer) error {
	c := &consola{in: bufio.NewScanner(in), out: out}
	var sesion *entity.Usuario

	for {
		if sesion == nil {
			fmt.Fprintln(out, "\n== Login ==")
			legajo := c.leerEntero("Legajo: ")
			if legajo == 0 {
				return nil // entrada agotada
			}
			password := c.leerString("Password: ")
			u, err := d.Auth.Login(legajo, password)
			if err != nil {
				fmt.Fprintln(out, "Error:", err)
				continue
			}
			sesion = u
			fmt.Fprintf(out, "Bienvenido %s [%s]\n", u.NombreCompleto(), u.Rol)
			continue
		}

		fmt.Fprintln(out, textoMenu)
		opcion := c.leerEntero("Opción: ")
		err := despacharOpcion(ctx, d, c, sesion, opcion)
		switch {
		case errors.Is(err, errSalir):
			fmt.Fprintln(out, "Fin de la aplicación.")
			return nil
		case errors.Is(err, errCerrarSesion):
			sesion = nil
			fmt.Fprintln(out, "Sesión cerrada.")
		case err != nil:
			// Errores de negocio: se informan y el menú continúa.
			fmt.Fprintln(out, "Error:", err)
		}
	}
}

func despacharOpcion(ctx context.Context, d *Deps, c *consola, sesion *entity.Usuario, opcion int) error {
	switch opcion {
	case 1:
		if err := soloAdmin(sesion); err != nil {
			return err
		}
		lista, err := d.Usuarios.ListarActivos()
		if err != nil {
			return err
		}
		imprimirUsuarios(c.out, lista)
	case 2:
		if err := soloAdmin(sesion); err != nil {
			return err
		}
		in := usuarios.AltaInput{
			Legajo:   c.leerEntero("Legajo: "),
			Nombre:   c.leerString("Nombre: "),
			Apellido: c.leerString("Apellido: "),
			Password: c.leerString("Password: "),
			Rol:      strings.ToUpper(c.leerString("Rol (ADMIN/AUXILIAR): ")),
		}
		u, err := d.Usuarios.Alta(in)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Usuario %d creado exitosamente.\n", u.Legajo)
	case 3:
		if err := soloAdmin(sesion); err != nil {
			return err
		}
		in := usuarios.EdicionInput{
			Legajo:   c.leerEntero("Legajo a modificar: "),
			Nombre:   c.leerString("Nombre: "),
			Apellido: c.leerString("Apellido: "),
			Password: c.leerString("Password: "),
			Rol:      strings.ToUpper(c.leerString("Rol (ADMIN/AUXILIAR): ")),
			Activo:   !strings.EqualFold(c.leerString("Activo (s/n): "), "n"),
		}
		if _, err := d.Usuarios.Editar(in); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Usuario modificado exitosamente.")
	case 4:
		if err := soloAdmin(sesion); err != nil {
			return err
		}
		legajo := c.leerEntero("Legajo a dar de baja: ")
		if err := d.Usuarios.BajaLogica(legajo, sesion); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Usuario dado de baja.")
	case 5:
		codigo := c.leerString("Código del insumo: ")
		cantidad := c.leerEntero("Cantidad: ")
		mov, err := d.Stock.RegistrarIngreso(ctx, codigo, cantidad, sesion)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Ingreso registrado. Stock actual de %s: %d\n", mov.Insumo.Codigo, mov.Insumo.Stock)
	case 6:
		codigo := c.leerString("Código del insumo: ")
		cantidad := c.leerEntero("Cantidad: ")
		servicioID := c.leerEntero("ID de servicio destino: ")
		mov, err := d.Stock.RegistrarEgreso(ctx, codigo, cantidad, servicioID, sesion)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Egreso registrado. Stock actual de %s: %d\n", mov.Insumo.Codigo, mov.Insumo.Stock)
		if mov.Insumo.EsCritico() {
			fmt.Fprintf(c.out, "¡ALERTA! Stock crítico en %s\n", mov.Insumo.Nombre)
		}
	case 7:
		lista, err := d.Stock.TodosLosInsumos()
		if err != nil {
			return err
		}
		imprimirInsumos(c.out, lista)
	case 8:
		lista, err := d.Stock.InsumosCriticos()
		if err != nil {
			return err
		}
		imprimirInsumos(c.out, lista)
	case 9:
		dias := c.leerEntero("Días hacia atrás (ej. 30): ")
		if dias <= 0 {
			dias = 30
		}
		hasta := time.Now()
		desde := hasta.AddDate(0, 0, -dias)
		var filtro *int
		if id := c.leerEntero("ID de servicio (0 = todos): "); id > 0 {
			filtro = &id
		}
		lista, err := d.Reportes.MovimientosPorPeriodoYServicio(desde, hasta, filtro)
		if err != nil {
			return err
		}
		imprimirMovimientos(c.out, lista)
	case 10:
		return errCerrarSesion
	case 0:
		return errSalir
	default:
		fmt.Fprintln(c.out, "Opción inválida. Intente nuevamente.")
	}
	return nil
}
