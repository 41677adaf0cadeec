package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/HarryYanarico/my-proyect/internal/infra"
	"github.com/HarryYanarico/my-proyect/internal/middleware"
	"github.com/HarryYanarico/my-proyect/internal/repository"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var tokenCmd = &cobra.Command{
	Use:     "token [email]",
	Short:   "Emite un token JWT para un empleado activo",
	Example: `  ledgerctl token admin@lotes.local --horas 24`,
	Args:    cobra.ExactArgs(1),
	RunE:    runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().Int("horas", 0, "Vigencia en horas (default JWT_EXPIRATION_HOURS)")
}

func runToken(cmd *cobra.Command, args []string) error {
	horas, _ := cmd.Flags().GetInt("horas")
	if horas <= 0 {
		horas = cfg.JWTExpirationHours
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET no configurado")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	emp, err := repository.NewEmpleadoRepository(db).FindByEmail(cmd.Context(), args[0])
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("empleado %s no existe", args[0])
	}
	if err != nil {
		return err
	}
	if !emp.Activo {
		return fmt.Errorf("empleado %s inactivo", args[0])
	}

	token, err := middleware.GenerarToken(cfg.JWTSecret, emp.ID, emp.Email, emp.Rol, time.Duration(horas)*time.Hour)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
