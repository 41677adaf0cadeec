package main

import (
	"fmt"
	"os"

	"github.com/HarryYanarico/my-proyect/internal/config"
	"github.com/HarryYanarico/my-proyect/internal/infra"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Herramientas de desarrollo para la API de lotes",
	Long: `ledgerctl carga datos de demostración y emite tokens de acceso
para probar la API de ventas de lotes en desarrollo.

Lee la misma configuración que el servidor (variables de entorno o .env).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		return infra.SetupLogger(cfg.LogLevel, cfg.Env)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := infra.WithComponent("ledgerctl")
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
