package main

import (
	"errors"
	"fmt"

	"github.com/HarryYanarico/my-proyect/internal/infra"
	"github.com/HarryYanarico/my-proyect/internal/model"
	"github.com/HarryYanarico/my-proyect/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Crea un empleado, un cliente y lotes disponibles de demostración",
	Long: `Crea (o reactiva) el empleado indicado con su contraseña hasheada con bcrypt,
un cliente de prueba y la cantidad pedida de lotes disponibles.`,
	Example: `  ledgerctl seed --email admin@lotes.local --password 1234 --rol administrador --lotes 5`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("email", "admin@lotes.local", "Email del empleado")
	seedCmd.Flags().String("password", "1234", "Contraseña del empleado")
	seedCmd.Flags().String("nombre", "Admin", "Nombre del empleado")
	seedCmd.Flags().String("rol", model.RolAdministrador, "vendedor | administrador")
	seedCmd.Flags().Int("lotes", 3, "Lotes disponibles a crear")
	seedCmd.Flags().String("precio", "25000.00", "Precio de cada lote")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	log := infra.WithComponent("seed")
	ctx := cmd.Context()

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	nombre, _ := cmd.Flags().GetString("nombre")
	rol, _ := cmd.Flags().GetString("rol")
	nLotes, _ := cmd.Flags().GetInt("lotes")
	precioStr, _ := cmd.Flags().GetString("precio")

	if rol != model.RolVendedor && rol != model.RolAdministrador {
		return fmt.Errorf("rol inválido: %s", rol)
	}
	precio, err := decimal.NewFromString(precioStr)
	if err != nil || !precio.IsPositive() {
		return fmt.Errorf("precio inválido: %s", precioStr)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}

	empleados := repository.NewEmpleadoRepository(db)
	emp, err := empleados.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		emp = &model.Empleado{Nombre: nombre, Email: email, Rol: rol, Activo: true, PasswordHash: string(hash)}
		if err := empleados.Create(ctx, emp); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		err := db.WithContext(ctx).Model(emp).Updates(map[string]interface{}{
			"password_hash": string(hash),
			"rol":           rol,
			"activo":        true,
		}).Error
		if err != nil {
			return err
		}
	}

	cliente := &model.Cliente{Nombre: "Cliente", Apellido: "Demo", CINit: "1234567"}
	if err := repository.NewClienteRepository(db).Create(ctx, cliente); err != nil {
		return err
	}

	lotes := repository.NewLoteRepository(db)
	for i := 1; i <= nLotes; i++ {
		l := &model.Lote{
			Nombre: fmt.Sprintf("Lote %03d", i),
			Area:   decimal.NewFromInt(300),
			Precio: precio,
			Estado: model.LoteDisponible,
		}
		if err := lotes.Create(ctx, l); err != nil {
			return err
		}
		fmt.Printf("lote     %s  %s\n", l.ID, l.Nombre)
	}

	log.Info().Str("empleado_id", emp.ID.String()).Str("cliente_id", cliente.ID.String()).Int("lotes", nLotes).Msg("seed completed")
	fmt.Printf("empleado %s  %s (%s)\n", emp.ID, emp.Email, rol)
	fmt.Printf("cliente  %s  %s\n", cliente.ID, cliente.NombreCompleto())
	return nil
}
